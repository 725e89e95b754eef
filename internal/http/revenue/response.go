package revenue

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/revenue"
)

type revenueResponse struct {
	ID         uuid.UUID         `json:"id"`
	Date       civil.Date        `json:"date"`
	Amount     decimal.Decimal   `json:"amount"`
	PlatformID *uuid.UUID        `json:"platform_id,omitempty"`
	Platform   *platformResponse `json:"platform,omitempty"`
	Trips      int               `json:"trips"`
	Hours      decimal.Decimal   `json:"hours"`
	Kilometers decimal.Decimal   `json:"kilometers"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`
}

type platformResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

func toResponse(r *revenue.Record) revenueResponse {
	resp := revenueResponse{
		ID:         r.ID,
		Date:       r.Date,
		Amount:     r.Amount,
		PlatformID: r.PlatformID,
		Trips:      r.Trips,
		Hours:      r.Hours,
		Kilometers: r.Kilometers,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}

	if r.Platform != nil {
		resp.Platform = &platformResponse{
			ID:    r.Platform.ID,
			Name:  r.Platform.Name,
			Color: r.Platform.Color,
		}
	}

	return resp
}

func toResponseList(records []*revenue.Record) []revenueResponse {
	resp := make([]revenueResponse, len(records))
	for i, r := range records {
		resp[i] = toResponse(r)
	}

	return resp
}
