package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fest_registrations_total", Help: "Total successful student registrations"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fest_logins_total", Help: "Login attempts by role and result"},
		[]string{"role", "result"},
	)
	PaymentsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fest_payments_completed_total", Help: "Total simulated payments finalized"},
	)
	AmountCollected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fest_amount_collected_rupees_total", Help: "Rupees collected through finalized payments"},
	)
	RemindersSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fest_reminders_sent_total", Help: "Total reminder notifications logged"},
	)
	SaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fest_store_save_failures_total", Help: "Store writes that failed and were skipped"},
	)
)

func Register() {
	prometheus.MustRegister(Registrations, Logins, PaymentsCompleted, AmountCollected, RemindersSent, SaveFailures)
}
