package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulerMetrics exposes counters for the appointment lifecycle and
// outbound notifications.
type SchedulerMetrics struct {
	scheduledTotal     prometheus.Counter
	cancelledTotal     prometheus.Counter
	firedTotal         *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
}

func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	m := &SchedulerMetrics{
		scheduledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "apptbot",
			Subsystem: "scheduler",
			Name:      "appointments_scheduled_total",
			Help:      "Total appointments accepted for scheduling",
		}),
		cancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "apptbot",
			Subsystem: "scheduler",
			Name:      "appointments_cancelled_total",
			Help:      "Total appointments cancelled before their pending job fired",
		}),
		firedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apptbot",
			Subsystem: "scheduler",
			Name:      "jobs_fired_total",
			Help:      "Total scheduled jobs fired, by kind",
		}, []string{"kind"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apptbot",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Total outbound notification attempts, by channel and outcome",
		}, []string{"channel", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.scheduledTotal, m.cancelledTotal, m.firedTotal, m.notificationsTotal)
	return m
}

func (m *SchedulerMetrics) ObserveScheduled() {
	if m == nil {
		return
	}
	m.scheduledTotal.Inc()
}

func (m *SchedulerMetrics) ObserveCancelled() {
	if m == nil {
		return
	}
	m.cancelledTotal.Inc()
}

func (m *SchedulerMetrics) ObserveFired(kind string) {
	if m == nil {
		return
	}
	m.firedTotal.WithLabelValues(kind).Inc()
}

func (m *SchedulerMetrics) ObserveNotification(channel string, ok bool) {
	if m == nil {
		return
	}
	status := "sent"
	if !ok {
		status = "failed"
	}
	m.notificationsTotal.WithLabelValues(channel, status).Inc()
}
