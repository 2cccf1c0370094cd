package encoder

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts selections and emitted code units.
type Metrics struct {
	selected *prometheus.CounterVec
	failures *prometheus.CounterVec
	units    prometheus.Counter
}

// NewMetrics creates the encoder collectors and registers them on reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		selected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dexasm_format_selected_total",
				Help: "Instructions encoded, by selected format.",
			},
			[]string{"format"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dexasm_selection_failures_total",
				Help: "Instructions no candidate format could represent, by opcode family.",
			},
			[]string{"family"},
		),
		units: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dexasm_code_units_total",
				Help: "Code units written.",
			},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.selected, m.failures, m.units} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(sel Selection) {
	if m == nil {
		return
	}
	m.selected.WithLabelValues(sel.Format().Name()).Inc()
	m.units.Add(float64(sel.Format().CodeSize()))
}

func (m *Metrics) fail(family string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(family).Inc()
}
