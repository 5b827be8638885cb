package notify

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/biblio/internal/models"
)

// PrometheusObserver counts published changes per library, type and domain.
type PrometheusObserver struct {
	changes *prometheus.CounterVec
}

// NewPrometheusObserver creates the observer and registers its counter on reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	changes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biblio",
		Name:      "changes_total",
		Help:      "Number of library changes published, by library, type and domain.",
	}, []string{"library", "type", "domain"})

	if err := reg.Register(changes); err != nil {
		return nil, err
	}
	return &PrometheusObserver{changes: changes}, nil
}

// OnChange implements Observer.
func (p *PrometheusObserver) OnChange(source string, change models.Change) error {
	p.changes.WithLabelValues(source, string(change.Type), string(change.Domain)).Inc()
	return nil
}

// Counter exposes the underlying vector, mainly for tests.
func (p *PrometheusObserver) Counter() *prometheus.CounterVec {
	return p.changes
}
