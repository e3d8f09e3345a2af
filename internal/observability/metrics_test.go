package observability

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := InitRegistry()

	ObserveHTTP("/api/rooms", "GET", 200, 12*time.Millisecond)
	ObserveMail("verification", errors.New("smtp down"))
	ObserveMedia("image", nil)
	ObserveReminder("sent")

	rr := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	assert.Contains(t, out, "theroom_http_requests_total")
	assert.Contains(t, out, `theroom_mail_sent_total{kind="verification",outcome="error"}`)
	assert.Contains(t, out, `theroom_media_processed_total{kind="image",outcome="ok"}`)
	assert.Contains(t, out, `theroom_trial_reminders_total{outcome="sent"}`)
}

func TestServeDisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, Serve("", InitRegistry()))
}

func TestNewLogger_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("production", &buf)
	l.Info().Str("tenant", "t-1").Msg("hello")

	assert.Contains(t, buf.String(), `"tenant":"t-1"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
