package dashboard_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/expense"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

func TestComputeBreakdown(t *testing.T) {
	uber := &catalog.Platform{ID: uuid.New(), Kind: catalog.KindSystem, Name: "Uber", Color: "#000000"}
	ifood := &catalog.Platform{ID: uuid.New(), Kind: catalog.KindSystem, Name: "iFood", Color: "#EA1D2C"}
	fuel := &catalog.Category{ID: uuid.New(), Kind: catalog.KindSystem, Name: "Combustível"}

	onPlatform := func(r *revenue.Record, p *catalog.Platform) *revenue.Record {
		r.PlatformID, r.Platform = &p.ID, p
		return r
	}

	revenues := []*revenue.Record{
		onPlatform(rev(march(1), "100"), ifood),
		onPlatform(rev(march(2), "250"), uber),
		onPlatform(rev(march(3), "50"), uber),
		rev(march(3), "100"),
		onPlatform(rev(march(20), "1000"), ifood),
	}

	fuelExpense := exp(march(2), "150")
	fuelExpense.CategoryID, fuelExpense.Category = &fuel.ID, fuel

	got := dashboard.ComputeBreakdown(period.NewRange(march(1), march(7)), revenues, []*expense.Record{fuelExpense, exp(march(4), "50")})

	require.Len(t, got.Platforms, 3)
	assert.Equal(t, "Uber", got.Platforms[0].Name)
	assert.Equal(t, "#000000", got.Platforms[0].Color)
	assertDec(t, "300", got.Platforms[0].Amount, "Uber amount")
	assertDec(t, "60", got.Platforms[0].Percent, "Uber percent")

	assert.Equal(t, "Sem plataforma", got.Platforms[1].Name)
	assert.Nil(t, got.Platforms[1].ID)
	assert.Equal(t, "iFood", got.Platforms[2].Name)
	assertDec(t, "100", got.Platforms[2].Amount, "iFood amount")

	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Combustível", got.Categories[0].Name)
	assertDec(t, "75", got.Categories[0].Percent, "fuel percent")
	assert.Equal(t, "Sem categoria", got.Categories[1].Name)
}

func TestComputeBreakdown_Empty(t *testing.T) {
	got := dashboard.ComputeBreakdown(period.Day(march(1)), nil, nil)
	assert.Empty(t, got.Platforms)
	assert.Empty(t, got.Categories)
}
