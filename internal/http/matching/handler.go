package matching

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
	"github.com/newgestao/drivercontrol/internal/matching"
)

type Handler struct {
	svc       *matching.Service
	platforms *catalog.Service
}

func NewHandler(svc *matching.Service, platforms *catalog.Service) *Handler {
	return &Handler{svc: svc, platforms: platforms}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
	r.Delete("/{id}", h.forget)
}

type aliasResponse struct {
	ID         uuid.UUID `json:"id"`
	RawPattern string    `json:"raw_pattern"`
	PlatformID uuid.UUID `json:"platform_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	resp := make([]aliasResponse, len(aliases))
	for i, a := range aliases {
		resp[i] = aliasResponse{ID: a.ID, RawPattern: a.RawPattern, PlatformID: a.PlatformID, CreatedAt: a.CreatedAt}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type suggestResponse struct {
	Raw        string     `json:"raw"`
	PlatformID *uuid.UUID `json:"platform_id"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw")
	if raw == "" {
		http.Error(w, "raw query parameter is required", http.StatusBadRequest)
		return
	}

	id, ok, err := h.svc.Suggest(r.Context(), auth.UserID(r.Context()), raw)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	resp := suggestResponse{Raw: raw}
	if ok {
		resp.PlatformID = &id
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	RawPattern string    `json:"raw_pattern"`
	PlatformID uuid.UUID `json:"platform_id"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := auth.UserID(r.Context())

	if _, err := h.platforms.GetPlatform(r.Context(), userID, req.PlatformID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "platform not found", http.StatusUnprocessableEntity)
			return
		}

		respond.Internal(w, r, err)

		return
	}

	if err := h.svc.Learn(r.Context(), userID, req.RawPattern, req.PlatformID); err != nil {
		if errors.Is(err, matching.ErrEmptyPattern) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		respond.Internal(w, r, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) forget(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Forget(r.Context(), auth.UserID(r.Context()), id); err != nil {
		if errors.Is(err, matching.ErrNotFound) {
			http.Error(w, "alias not found", http.StatusNotFound)
			return
		}

		respond.Internal(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
