package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theroom/internal/app"
	"theroom/internal/config"
	"theroom/internal/database/dbtest"
	"theroom/internal/mail"
	"theroom/internal/observability"
)

type outbox struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (o *outbox) Send(_ context.Context, msg mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

func (o *outbox) lastToken(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent)
	m := regexp.MustCompile(`token=([A-Za-z0-9._\-%]+)`).FindStringSubmatch(o.sent[len(o.sent)-1].HTML)
	require.Len(t, m, 2, "no token link in mail")
	token, err := url.QueryUnescape(m[1])
	require.NoError(t, err)
	return token
}

type testSuite struct {
	router http.Handler
	app    *app.App
	mails  *outbox
}

func setupTestSuite(t *testing.T) *testSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:             "test",
		JWTSecret:          "e2e-secret",
		SessionTTL:         time.Hour,
		VerifyTokenTTL:     time.Hour,
		ResetTokenTTL:      time.Hour,
		TrialPeriod:        14 * 24 * time.Hour,
		ClientURL:          "http://localhost:3000",
		UploadDir:          t.TempDir(),
		UploadURLBase:      "/uploads",
		SupportedLanguages: []string{"tr", "en", "ru", "ar"},
		DefaultLanguage:    "tr",
		ReminderDaysBefore: 5,
		ReminderHour:       9,
		AuthRateLimit:      1000,
	}

	db := dbtest.Open(t, app.Models()...)
	mails := &outbox{}
	a, err := app.New(cfg, db, app.Options{Mailer: mails, Registry: observability.InitRegistry()})
	require.NoError(t, err)
	return &testSuite{router: a.Router(), app: a, mails: mails}
}

func (s *testSuite) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	contentType := "application/json"
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case url.Values:
		reader = bytes.NewReader([]byte(b.Encode()))
		contentType = "application/x-www-form-urlencoded"
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func dataOf(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	require.True(t, env.Success, rr.Body.String())
	return env.Data
}

func (s *testSuite) onboard(t *testing.T, email string) string {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Deniz Otel", "adminEmail": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = s.do(t, http.MethodGet, "/api/auth/verify?token="+url.QueryEscape(s.mails.lastToken(t)), "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"adminEmail": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	token, _ := dataOf(t, rr)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthAndMetrics(t *testing.T) {
	s := setupTestSuite(t)

	rr := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", dataOf(t, rr)["status"])

	rr = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "theroom_http_requests_total")
}

func TestHotelOnboardingFlow(t *testing.T) {
	s := setupTestSuite(t)
	token := s.onboard(t, "owner@example.com")

	rr := s.do(t, http.MethodGet, "/api/website-pages", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"slug":"/"`, "system pages are seeded at registration")

	rr = s.do(t, http.MethodGet, "/api/subscription/status", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	status := dataOf(t, rr)
	assert.Equal(t, "TRIAL", status["package"])
	assert.Equal(t, true, status["active"])

	rr = s.do(t, http.MethodPost, "/api/rooms", token, url.Values{
		"price": {"100"},
		"title": {`{"tr":"Deniz Manzaralı","en":"Sea View"}`},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	roomData := dataOf(t, rr)["room"].(map[string]any)
	roomID := roomData["id"].(string)
	assert.Equal(t, "Standart", roomData["type"])

	rr = s.do(t, http.MethodPut, "/api/rooms/"+roomID, token, url.Values{"price": {"150"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.EqualValues(t, 150, dataOf(t, rr)["room"].(map[string]any)["price"])

	rr = s.do(t, http.MethodPost, "/api/themes", token, map[string]any{"name": "Yaz"})
	require.Equal(t, http.StatusCreated, rr.Code)
	themeID := dataOf(t, rr)["theme"].(map[string]any)["id"].(string)
	rr = s.do(t, http.MethodPost, "/api/themes/"+themeID+"/activate", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/pages/kvkk", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"owner@example.com"`)
}

func TestTenantIsolationAcrossHotels(t *testing.T) {
	s := setupTestSuite(t)
	a := s.onboard(t, "a@example.com")
	b := s.onboard(t, "b@example.com")

	rr := s.do(t, http.MethodPost, "/api/rooms", a, url.Values{"price": {"80"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	roomID := dataOf(t, rr)["room"].(map[string]any)["id"].(string)

	rr = s.do(t, http.MethodGet, "/api/rooms/"+roomID, b, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/rooms", b, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, dataOf(t, rr)["rooms"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupTestSuite(t)
	for _, path := range []string{"/api/rooms", "/api/themes", "/api/website-pages", "/api/pages/types", "/api/uploads"} {
		rr := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
		assert.Contains(t, rr.Body.String(), "AUTH_HEADER_MISSING", path)
	}

	rr := s.do(t, http.MethodGet, "/api/payments/price", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
