package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskboard/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(requestFrom("192.168.1.1:12345")))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})

	t.Run("falls back to raw RemoteAddr", func(t *testing.T) {
		require.Equal(t, "pipe", httpx.IPKeyExtractor(requestFrom("pipe")))
	})
}

func TestUserIDKeyExtractor(t *testing.T) {
	req := requestFrom("10.0.0.1:1")
	require.Empty(t, httpx.UserIDKeyExtractor(req))

	ctx := httpx.ContextWithCaller(req.Context(), httpx.Caller{UserID: 12, Username: "x"})
	require.Equal(t, "user:12", httpx.UserIDKeyExtractor(req.WithContext(ctx)))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over the burst", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		h := httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler())

		for i := range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), `"error":"Too many requests`)
	})

	t.Run("different keys are tracked separately", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler())

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom(addr))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(cfg, func(*http.Request) string { return "" })(okHandler())

		for range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestRateLimitByUser(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := httpx.RateLimitByUser(cfg)(okHandler())

	asUser := func(id int64) *http.Request {
		req := requestFrom("10.0.0.9:1")
		return req.WithContext(httpx.ContextWithCaller(req.Context(), httpx.Caller{UserID: id}))
	}

	// two users behind one address get their own buckets
	for _, id := range []int64{1, 2} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, asUser(id))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, asUser(1))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 5}

	t.Run("no env uses defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST_NONE", def))
	})

	t.Run("overrides every field", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_ALL_REQUESTS", "100")
		t.Setenv("RATELIMIT_TEST_ALL_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TEST_ALL_BURST", "50")

		got := httpx.ParseRateLimitFromEnv("TEST_ALL", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 100, Window: 30 * time.Second, Burst: 50}, got)
	})

	t.Run("invalid and zero values are ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_BAD_REQUESTS", "lots")
		t.Setenv("RATELIMIT_TEST_BAD_WINDOW_SEC", "0")
		t.Setenv("RATELIMIT_TEST_BAD_BURST", "-4")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST_BAD", def))
	})
}
