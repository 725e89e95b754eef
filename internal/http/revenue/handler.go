package revenue

import (
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

type Handler struct {
	svc *revenue.Service
}

func NewHandler(svc *revenue.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createRevenueRequest struct {
	Date       civil.Date      `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	PlatformID *uuid.UUID      `json:"platform_id,omitempty"`
	Trips      int             `json:"trips"`
	Hours      decimal.Decimal `json:"hours"`
	Kilometers decimal.Decimal `json:"kilometers"`
	Notes      string          `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRevenueRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Create(r.Context(), revenue.CreateParams{
		UserID:     auth.UserID(r.Context()),
		Date:       req.Date,
		Amount:     req.Amount,
		PlatformID: req.PlatformID,
		Trips:      req.Trips,
		Hours:      req.Hours,
		Kilometers: req.Kilometers,
		Notes:      req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := revenue.ListFilter{UserID: auth.UserID(r.Context())}

	var err error

	if filter.StartDate, err = respond.DateQuery(r, "start"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if filter.EndDate, err = respond.DateQuery(r, "end"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if filter.PlatformID, err = respond.UUIDQuery(r, "platform_id"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(records))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}

type updateRevenueRequest struct {
	Date       *civil.Date      `json:"date,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	PlatformID *uuid.UUID       `json:"platform_id,omitempty"`
	Trips      *int             `json:"trips,omitempty"`
	Hours      *decimal.Decimal `json:"hours,omitempty"`
	Kilometers *decimal.Decimal `json:"kilometers,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRevenueRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if req.Date != nil {
		rec.Date = *req.Date
	}

	if req.Amount != nil {
		rec.Amount = *req.Amount
	}

	if req.PlatformID != nil {
		rec.PlatformID = req.PlatformID
		rec.Platform = nil
	}

	if req.Trips != nil {
		rec.Trips = *req.Trips
	}

	if req.Hours != nil {
		rec.Hours = *req.Hours
	}

	if req.Kilometers != nil {
		rec.Kilometers = *req.Kilometers
	}

	if req.Notes != nil {
		rec.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), rec); err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, revenue.ErrNotFound):
		http.Error(w, "revenue not found", http.StatusNotFound)
	case errors.Is(err, revenue.ErrInvalidAmount), errors.Is(err, revenue.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		respond.Internal(w, r, err)
	}
}
