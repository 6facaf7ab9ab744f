package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rutsatz/algamoney-api/pkg/httpx"
	"github.com/stretchr/testify/require"
)

const allowedOrigin = "http://localhost:8000"

func TestCORSGate(t *testing.T) {
	// A downstream that would reject everything; reaching it is observable.
	var reached bool
	deny := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := httpx.CORSGate(httpx.DefaultCORSConfig(allowedOrigin))(deny)

	t.Run("preflight from allowed origin is answered", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodOptions, "/categorias", nil)
		req.Header.Set("Origin", allowedOrigin)
		rec := serve(h, req)

		require.False(t, reached, "preflight must not be forwarded")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Equal(t, "POST, GET, DELETE, PUT, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Authorization, Content-Type, Accept", rec.Header().Get("Access-Control-Allow-Headers"))
		require.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from other origin falls through", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodOptions, "/categorias", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := serve(h, req)

		require.True(t, reached)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("non-preflight always gets base headers", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/categorias", nil)
		req.Header.Set("Origin", allowedOrigin)
		rec := serve(h, req)

		require.True(t, reached)
		require.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Empty(t, rec.Header().Get("Access-Control-Max-Age"))
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mark("outer"), mark("middle"), mark("inner"))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "middle", "inner"}, order)
}

func TestTag(t *testing.T) {
	var got httpx.Operation
	var ok bool
	h := httpx.Tag("issue_token")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = httpx.OperationFrom(r.Context())
	}))
	serve(h, httptest.NewRequest(http.MethodPost, "/oauth/token", nil))

	require.True(t, ok)
	require.Equal(t, httpx.Operation("issue_token"), got)

	_, ok = httpx.OperationFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.False(t, ok)
}
