package expense

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/expense"
)

type fuelLogDTO struct {
	Energy       expense.Energy  `json:"energy"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Odometer     int             `json:"odometer"`
	FullTank     bool            `json:"full_tank"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon *string   `json:"icon,omitempty"`
}

type expenseResponse struct {
	ID                uuid.UUID             `json:"id"`
	Date              civil.Date            `json:"date"`
	Amount            decimal.Decimal       `json:"amount"`
	CategoryID        *uuid.UUID            `json:"category_id,omitempty"`
	Category          *categoryResponse     `json:"category,omitempty"`
	PaymentMethod     expense.PaymentMethod `json:"payment_method,omitempty"`
	InstallmentNumber *int                  `json:"installment_number,omitempty"`
	InstallmentCount  *int                  `json:"installment_count,omitempty"`
	Description       string                `json:"description,omitempty"`
	FuelLog           *fuelLogDTO           `json:"fuel_log,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         *time.Time            `json:"updated_at,omitempty"`
}

type segmentResponse struct {
	From      civil.Date      `json:"from"`
	To        civil.Date      `json:"to"`
	Distance  int             `json:"distance_km"`
	Quantity  decimal.Decimal `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	KmPerUnit decimal.Decimal `json:"km_per_unit"`
	CostPerKm decimal.Decimal `json:"cost_per_km"`
}

type consumptionResponse struct {
	Energy    expense.Energy    `json:"energy"`
	Unit      string            `json:"unit"`
	Distance  int               `json:"distance_km"`
	Quantity  decimal.Decimal   `json:"quantity"`
	KmPerUnit decimal.Decimal   `json:"km_per_unit"`
	CostPerKm decimal.Decimal   `json:"cost_per_km"`
	Segments  []segmentResponse `json:"segments"`
}

func toResponse(r *expense.Record) expenseResponse {
	resp := expenseResponse{
		ID:                r.ID,
		Date:              r.Date,
		Amount:            r.Amount,
		CategoryID:        r.CategoryID,
		PaymentMethod:     r.PaymentMethod,
		InstallmentNumber: r.InstallmentNumber,
		InstallmentCount:  r.InstallmentCount,
		Description:       r.Description,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	if r.Category != nil {
		resp.Category = &categoryResponse{ID: r.Category.ID, Name: r.Category.Name, Icon: r.Category.Icon}
	}

	if f := r.FuelLog; f != nil {
		resp.FuelLog = &fuelLogDTO{
			Energy:       f.Energy,
			Quantity:     f.Quantity,
			PricePerUnit: f.PricePerUnit,
			Odometer:     f.Odometer,
			FullTank:     f.FullTank,
		}
	}

	return resp
}

func toResponseList(records []*expense.Record) []expenseResponse {
	resp := make([]expenseResponse, len(records))
	for i, r := range records {
		resp[i] = toResponse(r)
	}

	return resp
}

func toConsumptionResponse(list []expense.Consumption) []consumptionResponse {
	resp := make([]consumptionResponse, 0, len(list))

	for _, c := range list {
		item := consumptionResponse{
			Energy:    c.Energy,
			Unit:      c.Unit,
			Distance:  c.Distance,
			Quantity:  c.Quantity,
			KmPerUnit: c.KmPerUnit,
			CostPerKm: c.CostPerKm,
			Segments:  make([]segmentResponse, 0, len(c.Segments)),
		}

		for _, s := range c.Segments {
			item.Segments = append(item.Segments, segmentResponse(s))
		}

		resp = append(resp, item)
	}

	return resp
}

func (f *fuelLogDTO) toFuelLog() *expense.FuelLog {
	if f == nil {
		return nil
	}

	return &expense.FuelLog{
		Energy:       f.Energy,
		Quantity:     f.Quantity,
		PricePerUnit: f.PricePerUnit,
		Odometer:     f.Odometer,
		FullTank:     f.FullTank,
	}
}
