// Package statement parses the earnings exports drivers download from ride
// and delivery platforms.
package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	enc "github.com/newgestao/drivercontrol/internal/encoding"
)

var ErrUnknownFormat = errors.New("no matching statement format found")

// Line is one earnings row. Platform is the label as written in the file.
type Line struct {
	Row        int
	Date       civil.Date
	Platform   string
	Amount     decimal.Decimal
	Trips      int
	Hours      decimal.Decimal
	Kilometers decimal.Decimal
}

// Result is what a parse produced along with how the file was read.
type Result struct {
	Profile string
	Charset string
	Lines   []Line
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var delimiters = []rune{';', ','}

// Parse decodes the file to UTF-8, then tries each delimiter until a header
// row matches a known profile.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		lines, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		return &Result{Profile: profile.Name, Charset: charset, Lines: lines}, nil
	}

	return nil, ErrUnknownFormat
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lower-cased header names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	if idx, ok := c[name]; ok {
		return idx
	}

	return -1
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a readable date (totals, footers) and rows
// whose amount is not positive. headerRowNum is 0-based.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Line, error) {
	dateIdx := cols.get(p.DateCol)
	platformIdx := cols.get(p.PlatformCol)

	var lines []Line

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, ok := parseLineAmount(p, cols, row)
		if !ok || !amount.IsPositive() {
			continue
		}

		platform := cellValue(row, platformIdx)
		if platform == "" {
			return nil, fmt.Errorf("row %d: missing platform", rowNum)
		}

		line := Line{
			Row:        rowNum,
			Date:       date,
			Platform:   platform,
			Amount:     amount,
			Hours:      optionalDecimal(row, cols.get(p.HoursCol)),
			Kilometers: optionalDecimal(row, cols.get(p.KmCol)),
		}

		if p.PerTrip {
			line.Trips = 1
		} else if n, err := strconv.Atoi(cellValue(row, cols.get(p.TripsCol))); err == nil && n > 0 {
			line.Trips = n
		}

		lines = append(lines, line)
	}

	return lines, nil
}

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006", "02/01/06"}

func parseDate(s string) (civil.Date, bool) {
	if s == "" {
		return civil.Date{}, false
	}

	// Trip exports append the time of day ("05/03/2024 14:32").
	if fields := strings.Fields(s); len(fields) > 1 {
		s = fields[0]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), true
		}
	}

	return civil.Date{}, false
}

func parseLineAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool) {
	switch p.AmountMode {
	case amountNet:
		return amountCell(row, cols.get(p.AmountCol))
	case amountGrossMinusFee:
		gross, ok := amountCell(row, cols.get(p.GrossCol))
		if !ok {
			return decimal.Zero, false
		}

		fee, ok := amountCell(row, cols.get(p.FeeCol))
		if !ok {
			fee = decimal.Zero
		}

		return gross.Sub(fee.Abs()), true
	}

	return decimal.Zero, false
}

func amountCell(row []string, idx int) (decimal.Decimal, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

func optionalDecimal(row []string, idx int) decimal.Decimal {
	d, ok := amountCell(row, idx)
	if !ok || d.IsNegative() {
		return decimal.Zero
	}

	return d
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
