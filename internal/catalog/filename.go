package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rickgao/futures-data/internal/model"
)

// Year decoding windows.
const (
	QuikYearsBack    = 8 // Oldest QUIK year is refYear-8
	QuikYearsAhead   = 1 // Newest QUIK year is refYear+1
	DailyCenturyBase = 2000
)

// yearDigits is the number of year digits each source kind encodes.
var yearDigits = map[model.SourceKind]int{
	model.SourceQuik:  1,
	model.SourceDaily: 2,
}

// ParseFileName decodes a data file name found in symbolDir back into the
// request that names it.
func ParseFileName(kind model.SourceKind, symbolDir, name string, refYear int) (model.DataRequest, error) {
	digits, ok := yearDigits[kind]
	if !ok {
		return model.DataRequest{}, &model.UnregisteredSourceError{Kind: kind, Component: "file name"}
	}

	symbol, err := model.ParseInstrument(symbolDir)
	if err != nil {
		return model.DataRequest{}, err
	}

	stem, ok := strings.CutSuffix(name, ".csv")
	if !ok {
		return model.DataRequest{}, nameError(name, "missing .csv extension")
	}
	rest, ok := strings.CutPrefix(stem, symbol.String())
	if !ok {
		return model.DataRequest{}, nameError(name, fmt.Sprintf("does not start with symbol %s", symbol))
	}
	if len(rest) != 1+digits {
		return model.DataRequest{}, nameError(name, fmt.Sprintf("want month code and %d year digits", digits))
	}

	month, err := model.ParseDeliveryMonth(rest[:1])
	if err != nil {
		return model.DataRequest{}, err
	}
	yy, err := strconv.Atoi(rest[1:])
	if err != nil || strings.ContainsAny(rest[1:2], "+-") {
		return model.DataRequest{}, nameError(name, fmt.Sprintf("year digits %q are not numeric", rest[1:]))
	}

	var year int
	switch digits {
	case 1:
		year = quikYear(yy, refYear)
	default:
		year = DailyCenturyBase + yy
	}

	return model.NewDataRequest(kind, symbol, month, model.YearDate(year))
}

// quikYear returns the year in [refYear-8, refYear+1] ending in digit d.
func quikYear(d, refYear int) int {
	newest := refYear + QuikYearsAhead
	back := (newest%10 - d + 10) % 10
	return newest - back
}

func nameError(name, reason string) error {
	return &model.ValidationError{Field: "file_name", Reason: fmt.Sprintf("%s: %s", name, reason)}
}
