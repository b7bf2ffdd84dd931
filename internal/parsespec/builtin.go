package parsespec

import "github.com/rickgao/futures-data/internal/model"

// Timestamp layouts of the built-in sources.
const (
	QuikDatetimeLayout  = "20060102 150405" // YYYYMMDD HHMMSS
	DailyDatetimeLayout = "02.01.2006"      // DD.MM.YYYY
)

// DailyPreambleRows is the fixed preamble before the DAILY header row.
const DailyPreambleRows = 2

// Quik returns the intraday QUIK export layout.
func Quik() model.ParseSpec {
	return model.ParseSpec{
		Separator: ",",
		SkipRows:  nil,
		Header:    0,
		Columns: []string{
			model.ColTicker,
			model.ColPer,
			model.ColDate,
			model.ColTime,
			model.ColOpen,
			model.ColHigh,
			model.ColLow,
			model.ColClose,
			model.ColVolume,
		},
		DTypes: map[string]model.DType{
			model.ColTicker: model.DTypeCategory,
			model.ColPer:    model.DTypeInt64,
			model.ColDate:   model.DTypeString,
			model.ColTime:   model.DTypeString,
			model.ColOpen:   model.DTypeFloat64,
			model.ColHigh:   model.DTypeFloat64,
			model.ColLow:    model.DTypeFloat64,
			model.ColClose:  model.DTypeFloat64,
			model.ColVolume: model.DTypeInt64,
		},
		NAValues:        []string{""},
		DatetimeColumns: []string{model.ColDate, model.ColTime},
		DatetimeFormat:  QuikDatetimeLayout,
		Decimal:         ".",
	}
}

// Daily returns the end-of-day settlement export layout.
func Daily() model.ParseSpec {
	return model.ParseSpec{
		Separator: ",",
		SkipRows:  model.IntPtr(DailyPreambleRows),
		Header:    0,
		Columns: []string{
			model.ColBoardID,
			model.ColDate,
			model.ColTicker,
			model.ColOpen,
			model.ColLow,
			model.ColHigh,
			model.ColClose,
			model.ColOpenPositionValue,
			model.ColValue,
			model.ColVolume,
			model.ColOpenPosition,
			model.ColSettlePrice,
			model.ColWAPrice,
			model.ColSettlePriceDay,
			model.ColChange,
			model.ColQTY,
			model.ColNumTrades,
		},
		DTypes: map[string]model.DType{
			model.ColBoardID:           model.DTypeCategory,
			model.ColDate:              model.DTypeString,
			model.ColTicker:            model.DTypeCategory,
			model.ColOpen:              model.DTypeFloat64,
			model.ColLow:               model.DTypeFloat64,
			model.ColHigh:              model.DTypeFloat64,
			model.ColClose:             model.DTypeFloat64,
			model.ColOpenPositionValue: model.DTypeFloat64,
			model.ColValue:             model.DTypeFloat64,
			model.ColVolume:            model.DTypeInt64,
			model.ColOpenPosition:      model.DTypeInt64,
			model.ColSettlePrice:       model.DTypeFloat64,
			model.ColWAPrice:           model.DTypeFloat64,
			model.ColSettlePriceDay:    model.DTypeFloat64,
			model.ColChange:            model.DTypeFloat64,
			model.ColQTY:               model.DTypeInt64,
			model.ColNumTrades:         model.DTypeInt64,
		},
		NAValues:        []string{""},
		DatetimeColumns: []string{model.ColDate},
		DatetimeFormat:  DailyDatetimeLayout,
		Decimal:         ".",
	}
}
