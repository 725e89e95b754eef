package importcsv

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/respond"
	"github.com/newgestao/drivercontrol/internal/importer"
	"github.com/newgestao/drivercontrol/internal/importer/statement"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc  *importer.Service
	revenueSvc *revenue.Service
}

func NewHandler(importSvc *importer.Service, revenueSvc *revenue.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		revenueSvc: revenueSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
	r.Post("/preview", h.preview)
	r.Post("/confirm", h.confirmImport)
}

type revenueResponse struct {
	ID         uuid.UUID       `json:"id"`
	Date       civil.Date      `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	PlatformID *uuid.UUID      `json:"platform_id,omitempty"`
	Trips      int             `json:"trips"`
	CreatedAt  time.Time       `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Revenues []revenueResponse `json:"revenues"`
}

type createParamsDTO struct {
	Date       civil.Date      `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	PlatformID *uuid.UUID      `json:"platform_id"`
	Trips      int             `json:"trips"`
	Hours      decimal.Decimal `json:"hours"`
	Kilometers decimal.Decimal `json:"kilometers"`
	Notes      string          `json:"notes"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing revenueResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type previewResponse struct {
	Profile    string            `json:"profile"`
	Charset    string            `json:"charset"`
	Lines      int               `json:"lines"`
	Revenues   []createParamsDTO `json:"revenues"`
	Unresolved []string          `json:"unresolved_platforms"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	file, ok := uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	p, err := h.importSvc.Preview(r.Context(), auth.UserID(r.Context()), file)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPreviewResponse(p))
}

// importStatement answers 201 when every line was stored, 409 with the split
// between new lines and duplicates when some already exist, and 422 with the
// preview when platform labels still need an alias.
func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	file, ok := uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	outcome, err := h.importSvc.Import(r.Context(), auth.UserID(r.Context()), file)
	if errors.Is(err, importer.ErrUnresolvedPlatforms) {
		respond.JSON(w, http.StatusUnprocessableEntity, toPreviewResponse(outcome.Preview))
		return
	}

	if err != nil {
		h.fail(w, r, err)
		return
	}

	result := outcome.Result

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toRevenueResponse(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

// confirmImport stores the lines the user chose to keep after a conflict.
func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := auth.UserID(r.Context())

	params := make([]revenue.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, revenue.CreateParams{
			UserID:     userID,
			Date:       p.Date,
			Amount:     p.Amount,
			PlatformID: p.PlatformID,
			Trips:      p.Trips,
			Hours:      p.Hours,
			Kilometers: p.Kilometers,
			Notes:      p.Notes,
		})
	}

	records, err := h.revenueSvc.CreateBatch(r.Context(), userID, params)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(records))
}

func uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return nil, false
	}

	return file, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, statement.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, revenue.ErrInvalidAmount), errors.Is(err, revenue.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		respond.Internal(w, r, err)
	}
}

func toSuccessResponse(records []*revenue.Record) importSuccessResponse {
	responses := make([]revenueResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRevenueResponse(rec))
	}

	return importSuccessResponse{
		Imported: len(records),
		Revenues: responses,
	}
}

func toRevenueResponse(rec *revenue.Record) revenueResponse {
	return revenueResponse{
		ID:         rec.ID,
		Date:       rec.Date,
		Amount:     rec.Amount,
		PlatformID: rec.PlatformID,
		Trips:      rec.Trips,
		CreatedAt:  rec.CreatedAt,
	}
}

func toParamsDTO(p revenue.CreateParams) createParamsDTO {
	return createParamsDTO{
		Date:       p.Date,
		Amount:     p.Amount,
		PlatformID: p.PlatformID,
		Trips:      p.Trips,
		Hours:      p.Hours,
		Kilometers: p.Kilometers,
		Notes:      p.Notes,
	}
}

func toPreviewResponse(p *importer.Preview) previewResponse {
	resp := previewResponse{
		Profile:    p.Profile,
		Charset:    p.Charset,
		Lines:      p.Lines,
		Revenues:   make([]createParamsDTO, 0, len(p.Revenues)),
		Unresolved: p.Unresolved,
	}

	if resp.Unresolved == nil {
		resp.Unresolved = []string{}
	}

	for _, params := range p.Revenues {
		resp.Revenues = append(resp.Revenues, toParamsDTO(params))
	}

	return resp
}
