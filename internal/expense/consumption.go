package expense

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Segment is the stretch driven between two full-tank fills. Quantity is
// everything put in after the first fill up to and including the second.
type Segment struct {
	From      civil.Date
	To        civil.Date
	Distance  int
	Quantity  decimal.Decimal
	Cost      decimal.Decimal
	KmPerUnit decimal.Decimal
	CostPerKm decimal.Decimal
}

// Consumption summarizes the efficiency of one energy type.
type Consumption struct {
	Energy    Energy
	Unit      string
	Segments  []Segment
	Distance  int
	Quantity  decimal.Decimal
	KmPerUnit decimal.Decimal
	CostPerKm decimal.Decimal
}

// ComputeConsumption uses the full-tank method per energy type. Records
// without a fuel log or odometer reading are ignored, and energies with fewer
// than two full-tank fills yield no entry.
func ComputeConsumption(records []*Record) []Consumption {
	byEnergy := map[Energy][]*Record{}

	for _, r := range records {
		if r == nil || r.FuelLog == nil || r.FuelLog.Odometer <= 0 {
			continue
		}

		byEnergy[r.FuelLog.Energy] = append(byEnergy[r.FuelLog.Energy], r)
	}

	var out []Consumption

	for _, energy := range []Energy{EnergyFuel, EnergyElectric} {
		logs := byEnergy[energy]
		sort.SliceStable(logs, func(i, j int) bool {
			return logs[i].FuelLog.Odometer < logs[j].FuelLog.Odometer
		})

		segments := segmentsOf(logs)
		if len(segments) == 0 {
			continue
		}

		c := Consumption{Energy: energy, Unit: energy.Unit(), Segments: segments}
		cost := decimal.Zero

		for _, s := range segments {
			c.Distance += s.Distance
			c.Quantity = c.Quantity.Add(s.Quantity)
			cost = cost.Add(s.Cost)
		}

		c.KmPerUnit, c.CostPerKm = ratios(c.Distance, c.Quantity, cost)
		out = append(out, c)
	}

	return out
}

func segmentsOf(logs []*Record) []Segment {
	var segments []Segment

	anchor := -1
	quantity := decimal.Zero
	cost := decimal.Zero

	for i, r := range logs {
		if anchor >= 0 {
			quantity = quantity.Add(r.FuelLog.Quantity)
			cost = cost.Add(r.Amount)
		}

		if !r.FuelLog.FullTank {
			continue
		}

		if anchor >= 0 {
			start := logs[anchor]
			distance := r.FuelLog.Odometer - start.FuelLog.Odometer

			if distance > 0 && quantity.IsPositive() {
				s := Segment{
					From:     start.Date,
					To:       r.Date,
					Distance: distance,
					Quantity: quantity,
					Cost:     cost,
				}
				s.KmPerUnit, s.CostPerKm = ratios(distance, quantity, cost)
				segments = append(segments, s)
			}
		}

		anchor = i
		quantity = decimal.Zero
		cost = decimal.Zero
	}

	return segments
}

func ratios(distance int, quantity, cost decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if distance <= 0 || !quantity.IsPositive() {
		return decimal.Zero, decimal.Zero
	}

	km := decimal.NewFromInt(int64(distance))

	return km.DivRound(quantity, 2), cost.DivRound(km, 2)
}
