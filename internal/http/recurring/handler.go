package recurring

import (
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
	"github.com/newgestao/drivercontrol/internal/recurring"
)

type Handler struct {
	svc *recurring.Service
}

func NewHandler(svc *recurring.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/deactivate", h.deactivate)
	r.Delete("/{id}", h.delete)
}

type recurringResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	DailyAmount   decimal.Decimal `json:"daily_amount"`
	StartDate     civil.Date      `json:"start_date"`
	EndDate       *civil.Date     `json:"end_date,omitempty"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(e *recurring.Expense) recurringResponse {
	return recurringResponse{
		ID:            e.ID,
		Name:          e.Name,
		MonthlyAmount: e.MonthlyAmount,
		DailyAmount:   e.MonthlyAmount.DivRound(decimal.NewFromInt(recurring.AmortizationDays), 2),
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		Active:        e.Active,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

type createRecurringRequest struct {
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	StartDate     civil.Date      `json:"start_date"`
	EndDate       *civil.Date     `json:"end_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRecurringRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), recurring.CreateParams{
		UserID:        auth.UserID(r.Context()),
		Name:          req.Name,
		MonthlyAmount: req.MonthlyAmount,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	resp := make([]recurringResponse, len(list))
	for i, e := range list {
		resp[i] = toResponse(e)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

type updateRecurringRequest struct {
	Name          *string          `json:"name,omitempty"`
	MonthlyAmount *decimal.Decimal `json:"monthly_amount,omitempty"`
	StartDate     *civil.Date      `json:"start_date,omitempty"`
	EndDate       *civil.Date      `json:"end_date,omitempty"`
	ClearEndDate  bool             `json:"clear_end_date,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRecurringRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if req.Name != nil {
		e.Name = *req.Name
	}

	if req.MonthlyAmount != nil {
		e.MonthlyAmount = *req.MonthlyAmount
	}

	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		e.EndDate = req.EndDate
	}

	if req.ClearEndDate {
		e.EndDate = nil
	}

	if req.Active != nil {
		e.Active = *req.Active
	}

	if err := h.svc.Update(r.Context(), e); err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Deactivate(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
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
	case errors.Is(err, recurring.ErrNotFound):
		http.Error(w, "recurring expense not found", http.StatusNotFound)
	case errors.Is(err, recurring.ErrInvalidAmount), errors.Is(err, recurring.ErrInvalidWindow):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		respond.Internal(w, r, err)
	}
}
