package expense

import (
	"errors"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/expense"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
	"github.com/newgestao/drivercontrol/internal/period"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/installments", h.createInstallments)
	r.Get("/consumption", h.consumption)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Date          civil.Date            `json:"date"`
	Amount        decimal.Decimal       `json:"amount"`
	CategoryID    *uuid.UUID            `json:"category_id,omitempty"`
	PaymentMethod expense.PaymentMethod `json:"payment_method"`
	Description   string                `json:"description"`
	FuelLog       *fuelLogDTO           `json:"fuel_log,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Create(r.Context(), expense.CreateParams{
		UserID:        auth.UserID(r.Context()),
		Date:          req.Date,
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		FuelLog:       req.FuelLog.toFuelLog(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

type installmentsRequest struct {
	FirstDate     civil.Date            `json:"first_date"`
	Total         decimal.Decimal       `json:"total"`
	Count         int                   `json:"count"`
	CategoryID    *uuid.UUID            `json:"category_id,omitempty"`
	PaymentMethod expense.PaymentMethod `json:"payment_method"`
	Description   string                `json:"description"`
}

func (h *Handler) createInstallments(w http.ResponseWriter, r *http.Request) {
	var req installmentsRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.svc.CreateInstallments(r.Context(), expense.InstallmentParams{
		UserID:        auth.UserID(r.Context()),
		FirstDate:     req.FirstDate,
		Total:         req.Total,
		Count:         req.Count,
		CategoryID:    req.CategoryID,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponseList(records))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := expense.ListFilter{UserID: auth.UserID(r.Context())}

	var err error

	if filter.StartDate, err = respond.DateQuery(r, "start"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if filter.EndDate, err = respond.DateQuery(r, "end"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if filter.CategoryID, err = respond.UUIDQuery(r, "category_id"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s := r.URL.Query().Get("fuel"); s != "" {
		if filter.FuelOnly, err = strconv.ParseBool(s); err != nil {
			http.Error(w, "invalid fuel flag", http.StatusBadRequest)
			return
		}
	}

	records, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(records))
}

// consumption covers the whole history unless both start and end are given.
func (h *Handler) consumption(w http.ResponseWriter, r *http.Request) {
	start, err := respond.DateQuery(r, "start")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	end, err := respond.DateQuery(r, "end")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var rng *period.Range
	if start != nil && end != nil {
		rng = new(period.NewRange(*start, *end))
	}

	list, err := h.svc.Consumption(r.Context(), auth.UserID(r.Context()), rng)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toConsumptionResponse(list))
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

type updateExpenseRequest struct {
	Date          *civil.Date            `json:"date,omitempty"`
	Amount        *decimal.Decimal       `json:"amount,omitempty"`
	CategoryID    *uuid.UUID             `json:"category_id,omitempty"`
	PaymentMethod *expense.PaymentMethod `json:"payment_method,omitempty"`
	Description   *string                `json:"description,omitempty"`
	FuelLog       *fuelLogDTO            `json:"fuel_log,omitempty"`
	RemoveFuelLog bool                   `json:"remove_fuel_log,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
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

	if req.CategoryID != nil {
		rec.CategoryID = req.CategoryID
		rec.Category = nil
	}

	if req.PaymentMethod != nil {
		rec.PaymentMethod = *req.PaymentMethod
	}

	if req.Description != nil {
		rec.Description = *req.Description
	}

	switch {
	case req.RemoveFuelLog:
		rec.FuelLog = nil
	case req.FuelLog != nil:
		f := req.FuelLog.toFuelLog()
		if rec.FuelLog != nil {
			f.ID = rec.FuelLog.ID
		}

		f.ExpenseID = rec.ID
		rec.FuelLog = f
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

var validationErrors = []error{
	expense.ErrInvalidAmount,
	expense.ErrInvalidDate,
	expense.ErrInvalidPayment,
	expense.ErrInvalidInstallments,
	expense.ErrInvalidFuelLog,
	expense.ErrInvalidEnergy,
	expense.ErrInstallmentAndFuel,
	expense.ErrInstallmentPosition,
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, expense.ErrNotFound) {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	respond.Internal(w, r, err)
}
