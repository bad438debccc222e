package metrics

import "github.com/prometheus/client_golang/prometheus"

// DialogueMetrics exposes counters for the slot-filling dialogue.
type DialogueMetrics struct {
	turnsTotal         *prometheus.CounterVec
	availabilityTotal  *prometheus.CounterVec
	commitsTotal       *prometheus.CounterVec
	extractionFailures prometheus.Counter
}

func NewDialogueMetrics(reg prometheus.Registerer) *DialogueMetrics {
	m := &DialogueMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "dialogue",
			Name:      "turns_total",
			Help:      "Total processed chat turns by engine state",
		}, []string{"state"}),
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "dialogue",
			Name:      "availability_checks_total",
			Help:      "Total calendar availability checks",
		}, []string{"result"}),
		commitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "dialogue",
			Name:      "commits_total",
			Help:      "Total booking commit attempts",
		}, []string{"outcome"}),
		extractionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "dialogue",
			Name:      "extraction_empty_total",
			Help:      "Turns where the extractor yielded no usable fields",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.availabilityTotal, m.commitsTotal, m.extractionFailures)
	return m
}

func (m *DialogueMetrics) ObserveTurn(state string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(state).Inc()
}

func (m *DialogueMetrics) ObserveAvailability(available bool) {
	if m == nil {
		return
	}
	result := "busy"
	if available {
		result = "free"
	}
	m.availabilityTotal.WithLabelValues(result).Inc()
}

// ObserveCommit records a commit attempt. outcome is one of
// "booked", "calendar_failed", "partial".
func (m *DialogueMetrics) ObserveCommit(outcome string) {
	if m == nil {
		return
	}
	m.commitsTotal.WithLabelValues(outcome).Inc()
}

func (m *DialogueMetrics) ObserveEmptyExtraction() {
	if m == nil {
		return
	}
	m.extractionFailures.Inc()
}
