package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

type stubVerifier struct {
	token string
	claim domain.Claim
}

func (s stubVerifier) Verify(_ context.Context, token string) (domain.Claim, error) {
	switch token {
	case "":
		return domain.Claim{}, domain.ErrTokenMissing
	case s.token:
		return s.claim, nil
	default:
		return domain.Claim{}, domain.ErrTokenInvalid
	}
}

func newVerifier() stubVerifier {
	return stubVerifier{token: "good", claim: domain.Claim{UserID: 7, Role: "administrador", Area: "sistemas"}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(newVerifier())(func(c echo.Context) error {
		called = true
		claim, ok := c.Get(ClaimKey).(domain.Claim)
		if !ok || claim.UserID != 7 || claim.Role != "administrador" {
			t.Fatalf("claim not set: %+v", c.Get(ClaimKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"missing header", "", domain.ErrTokenMissing},
		{"other scheme", "Token good", domain.ErrTokenMissing},
		{"empty bearer", "Bearer ", domain.ErrTokenMissing},
		{"bad token", "Bearer not-a-token", domain.ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Auth(newVerifier())(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if err := handler(c); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(newVerifier())(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestOptionalAuth(t *testing.T) {
	for header, wantClaim := range map[string]bool{"": false, "Bearer good": true, "Bearer bad": false} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		handler := OptionalAuth(newVerifier())(func(c echo.Context) error {
			called = true
			_, ok := c.Get(ClaimKey).(domain.Claim)
			if ok != wantClaim {
				t.Fatalf("header %q: claim present = %v, want %v", header, ok, wantClaim)
			}
			return nil
		})
		if err := handler(c); err != nil {
			t.Fatalf("header %q: unexpected error %v", header, err)
		}
		if !called {
			t.Fatalf("header %q: next not called", header)
		}
	}
}
