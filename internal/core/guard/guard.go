// Package guard decides how the web client handles navigation to a page,
// given what it knows about the current session.
package guard

import "github.com/intranet-portal/portal-api/internal/core/domain"

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Outcome is what the client does with a navigation.
type Outcome string

const (
	Render   Outcome = "render"
	Loading  Outcome = "loading"
	Redirect Outcome = "redirect"
)

// Session is the client's knowledge of the current credential.
type Session struct {
	// Pending is set while the stored credential is still being checked.
	Pending bool
	// Claim is nil when there is no valid credential.
	Claim *domain.Claim
}

// Route is a client page and its access rule.
type Route struct {
	Path      string
	Protected bool
	Require   domain.AccessRequirement
}

// Decision is the outcome for one navigation. From carries the requested
// path on a login redirect so the client can return there afterwards.
type Decision struct {
	Outcome  Outcome `json:"decision"`
	Location string  `json:"location,omitempty"`
	From     string  `json:"from,omitempty"`
}

// Decide evaluates a navigation to route. Public routes always render. A
// protected route waits while the session is pending, sends anonymous users
// to the login page and users without access back home.
func Decide(s Session, route Route) Decision {
	if !route.Protected {
		return Decision{Outcome: Render}
	}
	if s.Pending {
		return Decision{Outcome: Loading}
	}
	if s.Claim == nil {
		return Decision{Outcome: Redirect, Location: LoginPath, From: route.Path}
	}
	if !domain.Authorize(*s.Claim, route.Require) {
		return Decision{Outcome: Redirect, Location: HomePath}
	}
	return Decision{Outcome: Render}
}

// DefaultRoutes is the client route table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/"},
		{Path: "/documentos"},
		{Path: "/convenios"},
		{Path: "/login"},
		{Path: "/denuncias", Protected: true},
		{Path: "/vacantes", Protected: true},
	}
}
