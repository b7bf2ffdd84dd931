package model

import "slices"

// -----------------------------------------------------------------------------
// Source Kind
// -----------------------------------------------------------------------------

// SourceKind selects which strategy set (QUIK vs DAILY) applies to a request.
type SourceKind string

const (
	SourceQuik  SourceKind = "quik"  // Intraday export from the QUIK terminal
	SourceDaily SourceKind = "daily" // End-of-day exchange settlement export
)

var sourceKinds = []SourceKind{SourceQuik, SourceDaily}

// ParseSourceKind returns the SourceKind whose literal equals raw.
func ParseSourceKind(raw string) (SourceKind, error) {
	return parseEnum("source_kind", raw, sourceKinds)
}

// AllSourceKinds returns every declared source kind in declaration order.
func AllSourceKinds() []SourceKind { return slices.Clone(sourceKinds) }

func (k SourceKind) String() string { return string(k) }

// Valid reports whether k is one of the declared literals.
func (k SourceKind) Valid() bool { return slices.Contains(sourceKinds, k) }

func (k SourceKind) MarshalText() ([]byte, error) { return marshalEnum("source_kind", k, k.Valid()) }

func (k *SourceKind) UnmarshalText(text []byte) error { return unmarshalEnum(k, text, ParseSourceKind) }

// Set implements pflag.Value.
func (k *SourceKind) Set(raw string) error { return k.UnmarshalText([]byte(raw)) }

// Type implements pflag.Value.
func (k *SourceKind) Type() string { return "source" }

// -----------------------------------------------------------------------------
// Instrument Symbol
// -----------------------------------------------------------------------------

// Instrument is a two-letter futures contract code.
type Instrument string

const (
	InstrumentRI Instrument = "RI" // RTS Index
	InstrumentMX Instrument = "MX" // MOEX Index
	InstrumentSi Instrument = "Si" // USD/RUB
	InstrumentCR Instrument = "CR" // CNY/RUB
	InstrumentSF Instrument = "SF" // S&P 500
	InstrumentNA Instrument = "NA" // Nasdaq 100
	InstrumentBR Instrument = "BR" // Brent
	InstrumentNG Instrument = "NG" // Natural gas
	InstrumentGD Instrument = "GD" // Gold
	InstrumentSV Instrument = "SV" // Silver
	InstrumentSR Instrument = "SR" // Sberbank
	InstrumentGZ Instrument = "GZ" // Gazprom
	InstrumentLK Instrument = "LK" // Lukoil
)

var instruments = []Instrument{
	InstrumentRI, InstrumentMX, InstrumentSi, InstrumentCR, InstrumentSF, InstrumentNA, InstrumentBR,
	InstrumentNG, InstrumentGD, InstrumentSV, InstrumentSR, InstrumentGZ, InstrumentLK,
}

// ParseInstrument returns the Instrument whose literal equals raw. Matching is case-sensitive ("Si", not "SI").
func ParseInstrument(raw string) (Instrument, error) {
	return parseEnum("instrument", raw, instruments)
}

// AllInstruments returns every declared instrument in declaration order.
func AllInstruments() []Instrument { return slices.Clone(instruments) }

func (i Instrument) String() string { return string(i) }

// Valid reports whether i is one of the declared literals.
func (i Instrument) Valid() bool { return slices.Contains(instruments, i) }

func (i Instrument) MarshalText() ([]byte, error) { return marshalEnum("instrument", i, i.Valid()) }

func (i *Instrument) UnmarshalText(text []byte) error { return unmarshalEnum(i, text, ParseInstrument) }

// Set implements pflag.Value.
func (i *Instrument) Set(raw string) error { return i.UnmarshalText([]byte(raw)) }

// Type implements pflag.Value.
func (i *Instrument) Type() string { return "symbol" }

// -----------------------------------------------------------------------------
// Delivery Month
// -----------------------------------------------------------------------------

// DeliveryMonth is a standard futures month letter (F=Jan ... Z=Dec).
type DeliveryMonth string

const (
	MonthF DeliveryMonth = "F"
	MonthG DeliveryMonth = "G"
	MonthH DeliveryMonth = "H"
	MonthJ DeliveryMonth = "J"
	MonthK DeliveryMonth = "K"
	MonthM DeliveryMonth = "M"
	MonthN DeliveryMonth = "N"
	MonthQ DeliveryMonth = "Q"
	MonthU DeliveryMonth = "U"
	MonthV DeliveryMonth = "V"
	MonthX DeliveryMonth = "X"
	MonthZ DeliveryMonth = "Z"
)

var deliveryMonths = []DeliveryMonth{
	MonthF, MonthG, MonthH, MonthJ, MonthK, MonthM, MonthN, MonthQ, MonthU, MonthV, MonthX, MonthZ,
}

// ParseDeliveryMonth returns the DeliveryMonth whose literal equals raw.
func ParseDeliveryMonth(raw string) (DeliveryMonth, error) {
	return parseEnum("delivery_month", raw, deliveryMonths)
}

// AllDeliveryMonths returns every month code, January first.
func AllDeliveryMonths() []DeliveryMonth { return slices.Clone(deliveryMonths) }

func (m DeliveryMonth) String() string { return string(m) }

// Valid reports whether m is one of the declared literals.
func (m DeliveryMonth) Valid() bool { return slices.Contains(deliveryMonths, m) }

// Month returns the calendar month number (1-12), or 0 if m is invalid.
func (m DeliveryMonth) Month() int {
	return slices.Index(deliveryMonths, m) + 1
}

func (m DeliveryMonth) MarshalText() ([]byte, error) { return marshalEnum("delivery_month", m, m.Valid()) }

func (m *DeliveryMonth) UnmarshalText(text []byte) error {
	return unmarshalEnum(m, text, ParseDeliveryMonth)
}

// Set implements pflag.Value.
func (m *DeliveryMonth) Set(raw string) error { return m.UnmarshalText([]byte(raw)) }

// Type implements pflag.Value.
func (m *DeliveryMonth) Type() string { return "month" }

// -----------------------------------------------------------------------------
// Column Type Tag
// -----------------------------------------------------------------------------

// DType is the declared column type handed to the tabular reader.
type DType string

const (
	DTypeString   DType = "string"
	DTypeCategory DType = "category"
	DTypeInt64    DType = "int64"
	DTypeFloat64  DType = "float64"
)

var dtypes = []DType{DTypeString, DTypeCategory, DTypeInt64, DTypeFloat64}

// ParseDType returns the DType whose literal equals raw.
func ParseDType(raw string) (DType, error) {
	return parseEnum("dtype", raw, dtypes)
}

func (d DType) String() string { return string(d) }

// Valid reports whether d is one of the declared literals.
func (d DType) Valid() bool { return slices.Contains(dtypes, d) }

func (d DType) MarshalText() ([]byte, error) { return marshalEnum("dtype", d, d.Valid()) }

func (d *DType) UnmarshalText(text []byte) error { return unmarshalEnum(d, text, ParseDType) }

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func parseEnum[T ~string](enum, raw string, all []T) (T, error) {
	for _, v := range all {
		if string(v) == raw {
			return v, nil
		}
	}
	var zero T
	return zero, &InvalidEnumError{Enum: enum, Value: raw}
}

func marshalEnum[T ~string](enum string, v T, valid bool) ([]byte, error) {
	if !valid {
		return nil, &InvalidEnumError{Enum: enum, Value: string(v)}
	}
	return []byte(v), nil
}

func unmarshalEnum[T ~string](dst *T, text []byte, parse func(string) (T, error)) error {
	v, err := parse(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
