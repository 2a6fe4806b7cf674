// Package metrics defines the custom Prometheus metrics of the portal API.
// HTTP request metrics come from the echoprometheus middleware; these cover
// the authentication and content flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login requests.
// Label:
//   - outcome: "success", "invalid_credentials", "unregistered", "inactive",
//     "invalid_request" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenVerificationsTotal counts bearer token checks made by the auth middleware.
// Label:
//   - result: "valid", "missing", "expired", "revoked", "invalid" or "error"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected by the access policy.
var AccessDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of authenticated requests denied by the access policy.",
	},
)

// ── Content ───────────────────────────────────────────────────────────────────

// SlidesCreatedTotal counts carousel slides added through the API.
var SlidesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carousel_slides_created_total",
		Help:      "Total number of carousel slides created.",
	},
)
