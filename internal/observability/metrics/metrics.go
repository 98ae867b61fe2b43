package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_tokens_issued_total",
			Help: "Total number of tokens issued or refreshed.",
		},
		[]string{"flow", "result"},
	)

	RegistrationsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "college_registrations_submitted_total",
			Help: "College registration submissions.",
		},
		[]string{"result"},
	)

	RegistrationDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "college_registration_decisions_total",
			Help: "Review decisions applied to college registrations.",
		},
		[]string{"decision", "result"},
	)

	ProfilesProvisionedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_provisioned_total",
			Help: "Role profiles created by the provisioner.",
		},
		[]string{"role", "result"},
	)

	CompensatingDeletesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "provisioning_compensating_deletes_total",
			Help: "Users removed after their profile could not be provisioned.",
		},
	)

	PeerAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peer_assignments_total",
			Help: "Peer roster replacements.",
		},
		[]string{"result"},
	)

	AppointmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointments_total",
			Help: "Appointment scheduling and status updates.",
		},
		[]string{"action", "result"},
	)
)

// MustRegister exposes every collector on the default registry, labelled
// with the service name.
func MustRegister(serviceName string) {
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, prometheus.DefaultRegisterer)
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		LoginsTotal,
		TokensIssuedTotal,
		RegistrationsSubmittedTotal,
		RegistrationDecisionsTotal,
		ProfilesProvisionedTotal,
		CompensatingDeletesTotal,
		PeerAssignmentsTotal,
		AppointmentsTotal,
	)
}

func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
