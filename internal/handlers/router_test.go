package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifyErr  error
		disabled   bool
		wantStatus int
	}{
		{"Valid token", "Bearer good-token", nil, false, http.StatusOK},
		{"Missing header", "", nil, false, http.StatusUnauthorized},
		{"Not a bearer scheme", "Basic dXNlcjpwYXNz", nil, false, http.StatusUnauthorized},
		{"Rejected token", "Bearer expired", errors.New("token is expired"), false, http.StatusUnauthorized},
		{"Auth disabled", "", nil, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken string
			h := newTestHandler(t, Config{
				AuthDisabled: tt.disabled,
				Verifier: &MockVerifier{
					VerifyFunc: func(ctx context.Context, token string) error {
						gotToken = token
						return tt.verifyErr
					},
				},
				TeamStats: &MockTeamStats{},
			})
			req := httptest.NewRequest(http.MethodGet, "/api/teams/all", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := serve(h, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.name == "Valid token" && gotToken != "good-token" {
				t.Errorf("verifier saw %q, want the raw token", gotToken)
			}
		})
	}
}

func TestAuthSkippedOutsideAPI(t *testing.T) {
	h := newTestHandler(t, Config{
		Verifier: &MockVerifier{
			VerifyFunc: func(ctx context.Context, token string) error {
				return errors.New("should not be called")
			},
		},
	})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("health without token: status = %d, want 200", rr.Code)
	}
}

func TestPreflight(t *testing.T) {
	h := newTestHandler(t, Config{TeamStats: &MockTeamStats{}})

	req := httptest.NewRequest(http.MethodOptions, "/api/teams/all", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := serve(h, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestPreflightDisallowedOrigin(t *testing.T) {
	h := newTestHandler(t, Config{TeamStats: &MockTeamStats{}})

	req := httptest.NewRequest(http.MethodOptions, "/api/teams/all", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := serve(h, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin %q", got)
	}
}

func TestCORSHeadersOnGet(t *testing.T) {
	h := newTestHandler(t, Config{TeamStats: &MockTeamStats{}})

	req := httptest.NewRequest(http.MethodGet, "/api/teams/all", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := serve(h, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
