package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/authenticating"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthenticator aceita apenas o token "valido"
type fakeAuthenticator struct {
	authenticating.Authenticator
}

func (fakeAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	if token != "valido" {
		return nil, errors.New("token inválido")
	}
	return &domain.Claims{UserID: 42, Username: "ana"}, nil
}

func okHandler(t *testing.T, wantUser bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := UserFromContext(r.Context())
		assert.Equal(t, wantUser, ok)
		if wantUser {
			assert.Equal(t, 42, claims.UserID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name           string
		path           string
		header         string
		expectedStatus int
		wantUser       bool
	}{
		{name: "rota pública sem token", path: "/v1/login", expectedStatus: http.StatusNoContent},
		{name: "métricas sem token", path: "/metrics", expectedStatus: http.StatusNoContent},
		{name: "sem cabeçalho", path: "/v1/dashboard", expectedStatus: http.StatusUnauthorized},
		{name: "sem prefixo Bearer", path: "/v1/dashboard", header: "valido", expectedStatus: http.StatusUnauthorized},
		{name: "token inválido", path: "/v1/dashboard", header: "Bearer outro", expectedStatus: http.StatusUnauthorized},
		{name: "token válido", path: "/v1/dashboard", header: "Bearer valido", expectedStatus: http.StatusNoContent, wantUser: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(fakeAuthenticator{})(okHandler(t, tt.wantUser))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRequireUser(t *testing.T) {
	log.SetupTestLogger()

	t.Run("sem usuário no contexto", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireUser()(okHandler(t, false)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("com usuário no contexto", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
		req = req.WithContext(WithUser(req.Context(), &domain.Claims{UserID: 42}))
		rec := httptest.NewRecorder()

		RequireUser()(okHandler(t, true)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestCors(t *testing.T) {
	h := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("origem permitida recebe cabeçalhos", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("origem desconhecida não recebe cabeçalhos", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight responde sem chamar o handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/sales", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLoggingMiddleware_PropagaRequestID(t *testing.T) {
	log.SetupTestLogger()

	var seen string
	h := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, "abc123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "abc123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	h := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falhou")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}
