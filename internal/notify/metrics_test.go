package notify

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/biblio/internal/models"
	"github.com/mmynk/biblio/pkg/logging"
)

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewPrometheusObserver(reg)
	require.NoError(t, err)

	bus := NewBus(logging.Discard())
	bus.Subscribe(obs)

	bus.Publish("lib", models.Change{Type: models.ChangeAdd, Domain: models.DomainLoan})
	bus.Publish("lib", models.Change{Type: models.ChangeAdd, Domain: models.DomainLoan})
	bus.Publish("lib", models.Change{Type: models.ChangeRemove, Domain: models.DomainLoan})
	bus.Publish("other", models.Change{Type: models.ChangeAdd, Domain: models.DomainMember})

	assert.Equal(t, 2.0, testutil.ToFloat64(obs.Counter().WithLabelValues("lib", "ADD", "LOAN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.Counter().WithLabelValues("lib", "REMOVE", "LOAN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.Counter().WithLabelValues("other", "ADD", "MEMBER")))
	assert.Equal(t, 3, testutil.CollectAndCount(obs.Counter()))

	t.Run("registering twice fails", func(t *testing.T) {
		_, err := NewPrometheusObserver(reg)
		assert.Error(t, err)
	})
}
