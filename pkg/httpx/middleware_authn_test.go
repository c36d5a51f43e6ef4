package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskboard/pkg/httpx"
	"github.com/aussiebroadwan/taskboard/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthnMiddleware(t *testing.T) {
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer: "taskboard-test",
		Secret: "authn-test-secret-0123456789",
	})
	require.NoError(t, err)

	var seen httpx.Caller
	h := httpx.AuthnMiddleware(km.Verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := httpx.CallerFromContext(r.Context())
		require.True(t, ok)
		seen = c
		w.WriteHeader(http.StatusNoContent)
	}))

	valid, _, err := km.Issue(17, "frank", time.Hour, time.Now())
	require.NoError(t, err)
	expired, _, err := km.Issue(17, "frank", time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	other, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer: "taskboard-test",
		Secret: "some-other-secret-0123456789",
	})
	require.NoError(t, err)
	foreign, _, err := other.Issue(17, "frank", time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
		msg    string
	}{
		{"missing header", "", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"basic scheme", "Basic Zm9vOmJhcg==", http.StatusForbidden, httpx.MsgTokenInvalid},
		{"valid token under other scheme", "Token " + valid, http.StatusForbidden, httpx.MsgTokenInvalid},
		{"other scheme without token", "Basic", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"scheme only", "Bearer", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"garbage token", "Bearer not-a-token", http.StatusForbidden, httpx.MsgTokenInvalid},
		{"expired token", "Bearer " + expired, http.StatusForbidden, httpx.MsgTokenInvalid},
		{"foreign secret", "Bearer " + foreign, http.StatusForbidden, httpx.MsgTokenInvalid},
		{"valid token", "Bearer " + valid, http.StatusNoContent, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = httpx.Caller{}
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			if tt.msg != "" {
				var body httpx.ErrorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Equal(t, tt.msg, body.Error)
				require.Zero(t, seen.UserID)
				return
			}
			require.Equal(t, httpx.Caller{UserID: 17, Username: "frank"}, seen)
		})
	}
}
