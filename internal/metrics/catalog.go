package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog holds the catalog indexing metrics.
type Catalog struct {
	runs    *prometheus.CounterVec
	entries prometheus.Gauge
	written prometheus.Counter
}

// NewCatalog creates the catalog metrics and registers them on reg.
func NewCatalog(reg prometheus.Registerer) (*Catalog, error) {
	m := &Catalog{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_runs_total",
			Help:      "Catalog index runs by result.",
		}, []string{"result"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Contract files found by the last scan.",
		}),
		written: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_rows_written_total",
			Help:      "Catalog rows upserted into the database.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.runs, m.entries, m.written} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveScan records a scan and its entry count.
func (m *Catalog) ObserveScan(entries int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.runs.WithLabelValues("error").Inc()
		return
	}
	m.runs.WithLabelValues("ok").Inc()
	m.entries.Set(float64(entries))
}

// ObserveWritten records rows upserted.
func (m *Catalog) ObserveWritten(n int) {
	if m == nil {
		return
	}
	m.written.Add(float64(n))
}
