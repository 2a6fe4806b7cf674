package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

func TestNewLoginAttemptDoc(t *testing.T) {
	at := time.Date(2025, 5, 2, 10, 30, 0, 0, time.FixedZone("CST", -6*3600))
	doc := newLoginAttemptDoc(domain.LoginAttempt{
		Identity:  "jdoe",
		Outcome:   domain.LoginSucceeded,
		UserID:    7,
		RemoteIP:  "10.0.0.5",
		UserAgent: "curl/8",
		At:        at,
	})

	assert.True(t, doc.ID.IsZero())
	assert.Equal(t, "jdoe", doc.Identity)
	assert.Equal(t, "success", doc.Outcome)
	assert.Equal(t, int64(7), doc.UserID)
	assert.True(t, doc.At.Time().Equal(at))
}
