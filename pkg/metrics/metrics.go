// Package metrics holds the application counters exposed next to the ginprom HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultNotFound = "not_found"
)

// AuthEvents counts account flow outcomes by flow (register, login, email_verify,
// code_verify, reset_password) and result.
var AuthEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "taskmanager",
		Name:      "auth_events_total",
		Help:      "Account flow outcomes",
	},
	[]string{"flow", "result"},
)

// GatewayRejections counts requests the auth gateway turned away.
var GatewayRejections = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "taskmanager",
		Name:      "auth_gateway_rejections_total",
		Help:      "Requests rejected for a missing or invalid token",
	},
)

// MailDeliveries counts verification email dispatches by driver and result.
var MailDeliveries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "taskmanager",
		Name:      "mail_deliveries_total",
		Help:      "Verification email dispatch attempts",
	},
	[]string{"driver", "result"},
)

// Register adds the package collectors to reg. Panics on duplicate registration.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(AuthEvents, GatewayRejections, MailDeliveries)
}

func RecordAuth(flow, result string) {
	AuthEvents.WithLabelValues(flow, result).Inc()
}

func RecordGatewayRejection() {
	GatewayRejections.Inc()
}

func RecordMail(driver string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	MailDeliveries.WithLabelValues(driver, result).Inc()
}
