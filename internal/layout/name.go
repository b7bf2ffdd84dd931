package layout

import (
	"fmt"

	"github.com/rickgao/futures-data/internal/model"
)

// NameFunc derives a file name from a request. It performs no I/O.
type NameFunc func(model.DataRequest) string

// QuikName returns {symbol}{month}{last digit of year}.csv, e.g. RIH4.csv.
func QuikName(req model.DataRequest) string {
	return fmt.Sprintf("%s%s%d.csv", req.Symbol(), req.Month(), req.Year()%10)
}

// DailyName returns {symbol}{month}{last two digits of year}.csv, e.g. SiZ23.csv.
func DailyName(req model.DataRequest) string {
	return fmt.Sprintf("%s%s%02d.csv", req.Symbol(), req.Month(), req.Year()%100)
}

// Namer dispatches file naming by source kind.
type Namer struct {
	funcs map[model.SourceKind]NameFunc
}

// NewNamer returns a Namer for the built-in source kinds.
func NewNamer() *Namer {
	return &Namer{funcs: map[model.SourceKind]NameFunc{
		model.SourceQuik:  QuikName,
		model.SourceDaily: DailyName,
	}}
}

// FileName returns the file name for req.
func (n *Namer) FileName(req model.DataRequest) (string, error) {
	f, ok := n.funcs[req.Source()]
	if !ok || f == nil {
		return "", &model.UnregisteredSourceError{Kind: req.Source(), Component: "file name"}
	}
	return f(req), nil
}
