package tenant

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theroom/internal/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := newFixture(t)
	h := NewHandler(f.svc)
	r := gin.New()
	api := r.Group("/api")
	h.RegisterPublicRoutes(api)
	protected := api.Group("", middleware.JWTAuth(f.svc.jwt))
	h.RegisterProtectedRoutes(protected)
	return r, f
}

func doJSONRequest(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestAuthEndpoints_FullFlow(t *testing.T) {
	r, f := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Grand Otel", "adminEmail": "a@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	env := decode(t, rr)
	assert.True(t, env.Success)

	var registered struct {
		Hotel            View `json:"hotel"`
		VerificationSent bool `json:"verificationSent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "a@example.com", registered.Hotel.Email)
	assert.True(t, registered.VerificationSent)
	assert.NotContains(t, rr.Body.String(), "passwordHash")

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/login", map[string]any{
		"adminEmail": "a@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	token := tokenFromLink(t, f.mailer.last(t).HTML)
	rr = doJSONRequest(r, http.MethodGet, "/api/auth/verify?token="+url.QueryEscape(token), nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodGet, "/api/auth/verify?token="+url.QueryEscape(token), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"alreadyVerified":true`)

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/login", map[string]any{
		"adminEmail": "a@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &login))
	require.NotEmpty(t, login.Token)

	rr = doJSONRequest(r, http.MethodGet, "/api/auth/me", nil, login.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"a@example.com"`)

	rr = doJSONRequest(r, http.MethodPut, "/api/auth/update", map[string]any{
		"name":       "Yeni Otel",
		"details":    map[string]any{"address": "Izmir"},
		"facilities": []string{"pool"},
	}, login.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"name":"Yeni Otel"`)
	assert.Contains(t, rr.Body.String(), `"facilities":["pool"]`)

	rr = doJSONRequest(r, http.MethodPut, "/api/auth/update-site-settings", map[string]any{
		"siteSettings": map[string]any{"siteTitle": map[string]string{"tr": "Otel"}},
	}, login.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"siteTitle":{"tr":"Otel"}`)
}

func TestAuthEndpoints_Errors(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/auth/register", map[string]any{"name": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rr).Error.Code)

	body := map[string]any{"name": "A", "adminEmail": "a@example.com", "password": "secret1"}
	require.Equal(t, http.StatusCreated, doJSONRequest(r, http.MethodPost, "/api/auth/register", body, "").Code)
	rr = doJSONRequest(r, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "CONFLICT", decode(t, rr).Error.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/auth/verify", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/auth/verify?token=bogus", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/forgot-password", map[string]any{"email": "nobody@example.com"}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/reset-password", map[string]any{"token": "bogus", "newPassword": "secret2"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/verify/resend", map[string]any{"email": "nobody@example.com"}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestProtectedEndpoints_Unauthorized(t *testing.T) {
	r, _ := setupTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPut, "/api/auth/update"},
		{http.MethodPut, "/api/auth/update-site-settings"},
	}
	for _, tc := range cases {
		rr := doJSONRequest(r, tc.method, tc.path, map[string]any{}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
	}
}

func TestMe_UnknownTenant(t *testing.T) {
	r, f := setupTestRouter(t)
	token, err := f.svc.jwt.GenerateToken("missing", "missing", "x@example.com")
	require.NoError(t, err)

	rr := doJSONRequest(r, http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
