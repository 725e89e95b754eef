package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/platforms", h.listPlatforms)
	r.Post("/platforms", h.createPlatform)
	r.Get("/categories", h.listCategories)
	r.Post("/categories", h.createCategory)
}

type platformResponse struct {
	ID    uuid.UUID    `json:"id"`
	Kind  catalog.Kind `json:"kind"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
}

type categoryResponse struct {
	ID   uuid.UUID    `json:"id"`
	Kind catalog.Kind `json:"kind"`
	Name string       `json:"name"`
	Icon *string      `json:"icon,omitempty"`
}

func toPlatformResponse(p *catalog.Platform) platformResponse {
	return platformResponse{ID: p.ID, Kind: p.Kind, Name: p.Name, Color: p.Color}
}

func toCategoryResponse(c *catalog.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Kind: c.Kind, Name: c.Name, Icon: c.Icon}
}

func (h *Handler) listPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.svc.ListPlatforms(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	resp := make([]platformResponse, len(platforms))
	for i, p := range platforms {
		resp[i] = toPlatformResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createPlatformRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *Handler) createPlatform(w http.ResponseWriter, r *http.Request) {
	var req createPlatformRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreatePlatform(r.Context(), auth.UserID(r.Context()), req.Name, req.Color)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPlatformResponse(p))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), auth.UserID(r.Context()), req.Name, req.Icon)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrInvalidName) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	respond.Internal(w, r, err)
}
