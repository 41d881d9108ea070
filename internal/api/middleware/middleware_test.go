package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

const (
	testSecret = "test-secret"
	testIssuer = "smc-auth"
)

func signedToken(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		Role:      "professional",
		ProfileID: 10,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

// actorEcho отдает 200 и записывает участника из контекста
func actorEcho(got *domain.Actor, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *found = GetActor(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator_Required(t *testing.T) {
	auth := NewAuthenticator(testSecret, testIssuer)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	foreignIssuer := validClaims()
	foreignIssuer.Issuer = "someone-else"

	badRole := validClaims()
	badRole.Role = "admin"

	noProfile := validClaims()
	noProfile.ProfileID = 0

	badSubject := validClaims()
	badSubject.Subject = "abc"

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantActor  domain.Actor
	}{
		{
			name:       "valid token",
			header:     "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, validClaims()),
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{UserID: 7, Role: domain.RoleProfessional, ID: 10},
		},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signedToken(t, jwt.SigningMethodHS256, "other", validClaims()), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, expired), wantStatus: http.StatusUnauthorized},
		{name: "foreign issuer", header: "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, foreignIssuer), wantStatus: http.StatusUnauthorized},
		{name: "unknown role", header: "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, badRole), wantStatus: http.StatusUnauthorized},
		{name: "missing profile", header: "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, noProfile), wantStatus: http.StatusUnauthorized},
		{name: "non numeric subject", header: "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, badSubject), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got   domain.Actor
				found bool
			)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth.Required(actorEcho(&got, &found)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, found)
				assert.Equal(t, tt.wantActor, got)
			} else {
				assert.False(t, found)
				assert.Contains(t, rec.Body.String(), `"code":401`)
			}
		})
	}
}

func TestAuthenticator_RejectsNoneAlgorithm(t *testing.T) {
	auth := NewAuthenticator(testSecret, testIssuer)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticator_EmptySecretRejectsEverything(t *testing.T) {
	auth := NewAuthenticator("", testIssuer)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.SigningMethodHS256, testSecret, validClaims()))
	rec := httptest.NewRecorder()

	auth.Required(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_Optional(t *testing.T) {
	auth := NewAuthenticator(testSecret, testIssuer)

	var (
		got   domain.Actor
		found bool
	)

	// Без токена запрос проходит без участника
	rec := httptest.NewRecorder()
	auth.Optional(actorEcho(&got, &found)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, found)

	// Невалидный токен игнорируется
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec = httptest.NewRecorder()
	auth.Optional(actorEcho(&got, &found)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, found)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.SigningMethodHS512, testSecret, validClaims()))
	rec = httptest.NewRecorder()
	auth.Optional(actorEcho(&got, &found)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, found)
	assert.Equal(t, int64(10), got.ID)
}

type recordedRequest struct {
	method string
	route  string
	status int
}

type recordingMetrics struct {
	requests []recordedRequest
}

func (m *recordingMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.requests = append(m.requests, recordedRequest{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &recordingMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/appointments/{appointmentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/appointments/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Len(t, m.requests, 2)
	assert.Equal(t, recordedRequest{method: http.MethodGet, route: "/api/v1/appointments/{appointmentId}", status: http.StatusNotFound}, m.requests[0])
	assert.Equal(t, recordedRequest{method: http.MethodGet, route: "/api/v1/health", status: http.StatusOK}, m.requests[1])
}

func TestRequestLogging_PassesThrough(t *testing.T) {
	handler := RequestLogging(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
