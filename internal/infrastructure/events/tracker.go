package events

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/civicgate/email-validation/internal/core/ports"
)

var domainEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "domain_events_total",
		Help: "The total number of domain events emitted",
	},
	[]string{"event"},
)

func init() {
	prometheus.MustRegister(domainEventsTotal)
}

// Tracker records domain events to the structured log and a Prometheus
// counter. Track never returns and never blocks on downstream sinks, so
// a failed emit cannot fail the request that produced it.
type Tracker struct {
	logger *logrus.Logger
}

func NewTracker(logger *logrus.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// Ensure Tracker implements ports.EventTracker
var _ ports.EventTracker = (*Tracker)(nil)

func (t *Tracker) Track(eventName string, tags map[string]string) {
	domainEventsTotal.WithLabelValues(eventName).Inc()

	if t.logger == nil {
		return
	}
	fields := logrus.Fields{
		"event_id": uuid.New().String(),
		"event":    eventName,
	}
	for k, v := range tags {
		fields["tag_"+k] = v
	}
	t.logger.WithFields(fields).Info("domain event")
}
