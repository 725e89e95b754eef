package statement

// amountMode determines how the earned amount is read from a row.
type amountMode int

const (
	// amountNet is a single column holding what the driver received.
	amountNet amountMode = iota
	// amountGrossMinusFee derives the net from a gross column and a platform fee column.
	amountGrossMinusFee
)

// Profile describes the column layout of one earnings export. Optional
// columns are read when present and ignored otherwise.
type Profile struct {
	Name        string
	DateCol     string
	PlatformCol string
	AmountMode  amountMode
	AmountCol   string // amountNet
	GrossCol    string // amountGrossMinusFee
	FeeCol      string // amountGrossMinusFee
	TripsCol    string
	HoursCol    string
	KmCol       string
	// PerTrip marks exports with one row per trip; each row counts as one trip.
	PerTrip bool
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.PlatformCol}

	switch p.AmountMode {
	case amountNet:
		cols = append(cols, p.AmountCol)
	case amountGrossMinusFee:
		cols = append(cols, p.GrossCol, p.FeeCol)
	}

	return cols
}

// profiles is tried in order; layouts with more required columns come first.
var profiles = []Profile{
	{
		Name:        "repasse",
		DateCol:     "data",
		PlatformCol: "plataforma",
		AmountMode:  amountGrossMinusFee,
		GrossCol:    "valor bruto",
		FeeCol:      "taxa",
		TripsCol:    "corridas",
	},
	{
		Name:        "viagens",
		DateCol:     "data da viagem",
		PlatformCol: "plataforma",
		AmountMode:  amountNet,
		AmountCol:   "ganhos",
		KmCol:       "distância (km)",
		PerTrip:     true,
	},
	{
		Name:        "ganhos",
		DateCol:     "data",
		PlatformCol: "plataforma",
		AmountMode:  amountNet,
		AmountCol:   "valor",
		TripsCol:    "corridas",
		HoursCol:    "horas",
		KmCol:       "km",
	},
	{
		Name:        "earnings",
		DateCol:     "date",
		PlatformCol: "platform",
		AmountMode:  amountNet,
		AmountCol:   "amount",
		TripsCol:    "trips",
		HoursCol:    "hours",
		KmCol:       "km",
	},
}
