package domain

import "time"

// Slide is a home page carousel entry.
type Slide struct {
	ID        int64
	Title     string
	Text      string
	Image     string
	CreatedAt time.Time
	Active    bool
}

// ResourceCategory groups downloadable documents shown on the resources page.
type ResourceCategory struct {
	Category string         `json:"categoria" yaml:"categoria"`
	Items    []ResourceItem `json:"items" yaml:"items"`
}

type ResourceItem struct {
	Name  string   `json:"nombre" yaml:"nombre"`
	URL   string   `json:"url" yaml:"url"`
	Roles []string `json:"roles" yaml:"roles"`
	Areas []string `json:"areas" yaml:"areas"`
}

// LoginOutcome labels an authentication attempt in the audit trail.
type LoginOutcome string

const (
	LoginSucceeded    LoginOutcome = "success"
	LoginRejected     LoginOutcome = "invalid_credentials"
	LoginUnregistered LoginOutcome = "unregistered"
	LoginInactive     LoginOutcome = "inactive"
	LoginFailed       LoginOutcome = "error"
)

// LoginAttempt is one audit record of a login request.
type LoginAttempt struct {
	Identity  string
	Outcome   LoginOutcome
	UserID    int64
	RemoteIP  string
	UserAgent string
	At        time.Time
}
