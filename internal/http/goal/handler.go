package goal

import (
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/goal"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
	"github.com/newgestao/drivercontrol/internal/period"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/", h.upsertRange)
	r.Get("/{date}", h.get)
	r.Put("/{date}", h.upsert)
	r.Delete("/{date}", h.delete)
}

type goalResponse struct {
	Date      civil.Date      `json:"date"`
	Target    decimal.Decimal `json:"target"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toResponse(g *goal.DailyGoal) goalResponse {
	return goalResponse{Date: g.Date, Target: g.Target, UpdatedAt: g.UpdatedAt}
}

func toResponseList(goals []*goal.DailyGoal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}

func dateParam(r *http.Request) (civil.Date, error) {
	return civil.ParseDate(chi.URLParam(r, "date"))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
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

	if start == nil || end == nil {
		http.Error(w, "start and end are required", http.StatusBadRequest)
		return
	}

	goals, err := h.svc.List(r.Context(), auth.UserID(r.Context()), period.NewRange(*start, *end))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(goals))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

type upsertRequest struct {
	Target decimal.Decimal `json:"target"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	var req upsertRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Upsert(r.Context(), auth.UserID(r.Context()), date, req.Target)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

type upsertRangeRequest struct {
	Start  civil.Date      `json:"start"`
	End    civil.Date      `json:"end"`
	Target decimal.Decimal `json:"target"`
}

// maxRangeDays bounds a bulk goal write to roughly one year.
const maxRangeDays = 366

func (h *Handler) upsertRange(w http.ResponseWriter, r *http.Request) {
	var req upsertRangeRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Start == (civil.Date{}) || req.End == (civil.Date{}) {
		http.Error(w, "start and end are required", http.StatusBadRequest)
		return
	}

	rng := period.NewRange(req.Start, req.End)
	if rng.Days() > maxRangeDays {
		http.Error(w, "range too long", http.StatusBadRequest)
		return
	}

	goals, err := h.svc.UpsertRange(r.Context(), auth.UserID(r.Context()), rng, req.Target)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(goals))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), date); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, goal.ErrNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, goal.ErrInvalidTarget), errors.Is(err, goal.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		respond.Internal(w, r, err)
	}
}
