package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Year bounds accepted by NewDataRequest. File names encode the last one or
// two digits of a four-digit year.
const (
	MinYear = 1000
	MaxYear = 9999
)

// DataRequest identifies one futures contract file. It is immutable and
// comparable: requests with equal fields are == and usable as map keys.
type DataRequest struct {
	source SourceKind
	symbol Instrument
	month  DeliveryMonth
	year   int
}

// NewDataRequest validates each field against its closed set. year is a
// calendar date used only for its year component.
func NewDataRequest(source SourceKind, symbol Instrument, month DeliveryMonth, year time.Time) (DataRequest, error) {
	if !source.Valid() {
		return DataRequest{}, &ValidationError{
			Field:  "source_kind",
			Reason: fmt.Sprintf("%q is not a declared source kind", string(source)),
		}
	}
	if !symbol.Valid() {
		return DataRequest{}, &ValidationError{
			Field:  "instrument",
			Reason: fmt.Sprintf("%q is not a declared instrument", string(symbol)),
		}
	}
	if !month.Valid() {
		return DataRequest{}, &ValidationError{
			Field:  "delivery_month",
			Reason: fmt.Sprintf("%q is not a declared delivery month", string(month)),
		}
	}
	if year.IsZero() {
		return DataRequest{}, &ValidationError{Field: "year", Reason: "date is required"}
	}
	y := year.Year()
	if y < MinYear || y > MaxYear {
		return DataRequest{}, &ValidationError{
			Field:  "year",
			Reason: fmt.Sprintf("year %d outside %d..%d", y, MinYear, MaxYear),
		}
	}

	return DataRequest{source: source, symbol: symbol, month: month, year: y}, nil
}

// ParseDataRequest builds a request from raw literals, as read from flags or
// query strings. Bad literals fail with InvalidEnumError.
func ParseDataRequest(source, symbol, month string, year int) (DataRequest, error) {
	k, err := ParseSourceKind(source)
	if err != nil {
		return DataRequest{}, err
	}
	s, err := ParseInstrument(symbol)
	if err != nil {
		return DataRequest{}, err
	}
	m, err := ParseDeliveryMonth(month)
	if err != nil {
		return DataRequest{}, err
	}
	return NewDataRequest(k, s, m, YearDate(year))
}

// YearDate returns January 1st of year in UTC.
func YearDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (r DataRequest) Source() SourceKind   { return r.source }
func (r DataRequest) Symbol() Instrument   { return r.symbol }
func (r DataRequest) Month() DeliveryMonth { return r.month }
func (r DataRequest) Year() int            { return r.year }
func (r DataRequest) YearDate() time.Time  { return YearDate(r.year) }
func (r DataRequest) IsZero() bool         { return r == DataRequest{} }

// Contract returns the human-readable contract code (e.g., "RIH2024").
func (r DataRequest) Contract() string {
	return fmt.Sprintf("%s%s%d", r.symbol, r.month, r.year)
}

func (r DataRequest) String() string {
	return fmt.Sprintf("%s/%s", r.source, r.Contract())
}

// LogValue implements slog.LogValuer.
func (r DataRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("source", string(r.source)),
		slog.String("symbol", string(r.symbol)),
		slog.String("month", string(r.month)),
		slog.Int("year", r.year),
	)
}

type requestJSON struct {
	Source SourceKind    `json:"source"`
	Symbol Instrument    `json:"symbol"`
	Month  DeliveryMonth `json:"month"`
	Year   int           `json:"year"`
}

// MarshalJSON encodes the request with its literal strings.
func (r DataRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(requestJSON{Source: r.source, Symbol: r.symbol, Month: r.month, Year: r.year})
}

// UnmarshalJSON decodes and re-validates a request.
func (r *DataRequest) UnmarshalJSON(data []byte) error {
	var raw requestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	req, err := NewDataRequest(raw.Source, raw.Symbol, raw.Month, YearDate(raw.Year))
	if err != nil {
		return err
	}
	*r = req
	return nil
}
