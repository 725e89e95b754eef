package statement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/newgestao/drivercontrol/internal/importer/statement"
)

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestParser_Ganhos(t *testing.T) {
	csv := `Relatório semanal
Motorista;João

Data;Plataforma;Valor;Corridas;Horas;Km
04/03/2024;Uber;R$ 1.234,50;18;9,5;210,4
05/03/2024;99;R$ 310,00;7;;
Total;;R$ 1.544,50;25;;
`

	res, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "ganhos", res.Profile)
	require.Len(t, res.Lines, 2)

	first := res.Lines[0]
	assert.Equal(t, date(2024, 3, 4), first.Date)
	assert.Equal(t, "Uber", first.Platform)
	assertAmount(t, "1234.50", first.Amount)
	assert.Equal(t, 18, first.Trips)
	assertAmount(t, "9.5", first.Hours)
	assertAmount(t, "210.4", first.Kilometers)
	assert.Equal(t, 4, first.Row, "blank lines are not counted")

	second := res.Lines[1]
	assert.Equal(t, "99", second.Platform)
	assertAmount(t, "310", second.Amount)
	assert.True(t, second.Hours.IsZero())
}

func TestParser_Repasse(t *testing.T) {
	csv := "Data;Plataforma;Valor bruto;Taxa\n" +
		"2024-03-04;iFood;150,00;-22,50\n" +
		"2024-03-05;iFood;80,00;12,00\n"

	res, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "repasse", res.Profile)
	require.Len(t, res.Lines, 2)
	assertAmount(t, "127.50", res.Lines[0].Amount)
	assertAmount(t, "68", res.Lines[1].Amount)
}

func TestParser_ViagensCommaDelimited(t *testing.T) {
	csv := "Data da viagem,Plataforma,Ganhos,Distância (km)\n" +
		"04/03/2024 08:15,Uber,23.40,12.5\n" +
		"04/03/2024 09:02,Uber,0.00,3.1\n" +
		"04-03-2024 10:40,Uber,18.90,8\n"

	res, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "viagens", res.Profile)
	require.Len(t, res.Lines, 2, "zero-amount trip is skipped")

	for _, l := range res.Lines {
		assert.Equal(t, date(2024, 3, 4), l.Date)
		assert.Equal(t, 1, l.Trips)
	}

	assertAmount(t, "23.40", res.Lines[0].Amount)
	assertAmount(t, "12.5", res.Lines[0].Kilometers)
}

func TestParser_EarningsLatin1(t *testing.T) {
	text := "Date;Platform;Amount;Trips\n2024-03-04;Táxi;90,00;2\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	res, err := statement.NewParser().Parse(bytes.NewReader(encoded))
	require.NoError(t, err)

	assert.Equal(t, "earnings", res.Profile)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Táxi", res.Lines[0].Platform)
	assert.Equal(t, 2, res.Lines[0].Trips)
}

func TestParser_MissingPlatform(t *testing.T) {
	csv := "Data;Plataforma;Valor\n04/03/2024;;50,00\n"

	_, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParser_UnknownFormat(t *testing.T) {
	_, err := statement.NewParser().Parse(strings.NewReader("foo;bar\n1;2\n"))
	assert.ErrorIs(t, err, statement.ErrUnknownFormat)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"-12,50", "-12.50"},
		{" 7 ", "7"},
		{"R$ 35,00", "35"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := statement.ParseAmount(tt.in)
			require.NoError(t, err)
			assertAmount(t, tt.want, got)
		})
	}
}
