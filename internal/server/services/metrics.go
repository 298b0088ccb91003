package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

// Metrics counts account operations by outcome and times authentication.
// A nil *Metrics records nothing.
type Metrics struct {
	operations   *prometheus.CounterVec
	authDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg, if not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accountkeeper",
			Name:      "account_operations_total",
			Help:      "Account operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		authDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "accountkeeper",
			Name:      "authenticate_duration_seconds",
			Help:      "Time spent authenticating a login and password.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.authDuration)
	}
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
}

func (m *Metrics) observeAuth(d time.Duration) {
	if m == nil {
		return
	}
	m.authDuration.Observe(d.Seconds())
}

// Outcome classifies err for metric labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrValidation):
		return "validation"
	case errors.Is(err, common.ErrStaleAccount):
		return "stale"
	case errors.Is(err, common.ErrConflict):
		return "conflict"
	case errors.Is(err, common.ErrorNotFound):
		return "not_found"
	case errors.Is(err, common.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, common.ErrAuthenticationFailed):
		return "authentication_failed"
	case errors.Is(err, common.ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, common.ErrAlreadyRevoked):
		return "already_revoked"
	case errors.Is(err, common.ErrInvalidToken):
		return "invalid_token"
	default:
		return "error"
	}
}
