package dashboard

import (
	"archive/zip"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
	"github.com/newgestao/drivercontrol/internal/period"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.report)
	r.Get("/export", h.export)
}

// resolve turns the query string into a range, writing a 400 on bad input.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (period.Mode, period.Range, bool) {
	mode, sel, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", period.Range{}, false
	}

	rng, err := h.svc.Resolve(mode, sel)
	if err != nil {
		if errors.Is(err, period.ErrInvalidMode) || errors.Is(err, period.ErrInvalidPreset) || errors.Is(err, period.ErrInvalidMonth) ||
			errors.Is(err, period.ErrRangeTooLong) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return "", period.Range{}, false
		}

		respond.Internal(w, r, err)

		return "", period.Range{}, false
	}

	return mode, rng, true
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	mode, rng, ok := h.resolve(w, r)
	if !ok {
		return
	}

	rep, err := h.svc.Report(r.Context(), auth.UserID(r.Context()), mode, rng)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReportResponse(rep))
}

// export streams a zip holding the per-day CSV and the text summary.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	mode, rng, ok := h.resolve(w, r)
	if !ok {
		return
	}

	file, err := h.svc.Export(r.Context(), auth.UserID(r.Context()), mode, rng)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name+".zip"))

	zw := zip.NewWriter(w)

	entries := []struct {
		name string
		data []byte
	}{
		{file.Name + ".csv", file.CSV},
		{"resumo.txt", []byte(file.Summary)},
	}

	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to create zip entry", "entry", e.name, "error", err)
			return
		}

		if _, err := f.Write(e.data); err != nil {
			slog.ErrorContext(r.Context(), "failed to write zip entry", "entry", e.name, "error", err)
			return
		}
	}

	if err := zw.Close(); err != nil {
		slog.ErrorContext(r.Context(), "failed to finish zip", "error", err)
	}
}
