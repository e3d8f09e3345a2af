package room

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theroom/internal/middleware"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupTestService(t)
	h := NewHandler(svc, "tr")
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if hotelID := c.GetHeader("X-Test-Hotel-ID"); hotelID != "" {
			c.Set(middleware.CtxHotelID, hotelID)
		}
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api"))
	return r
}

type multipartFile struct {
	field, name string
	data        []byte
}

func doMultipart(t *testing.T, r http.Handler, method, path, hotelID string, fields map[string]string, files ...multipartFile) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if hotelID != "" {
		req.Header.Set("X-Test-Hotel-ID", hotelID)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeRoom(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env struct {
		Data struct {
			Room map[string]any `json:"room"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env.Data.Room
}

func TestRoomEndpoints_CreateUpdateDelete(t *testing.T) {
	r := setupTestRouter(t)

	rr := doMultipart(t, r, http.MethodPost, "/api/rooms", "hotel-a", map[string]string{
		"title":    `{"tr":"Deluxe"}`,
		"price":    "1000",
		"features": "not json",
	}, multipartFile{"images", "a.png", pngData(t)})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeRoom(t, rr)
	id := created["id"].(string)
	assert.Equal(t, "not json", created["features"], "malformed nested field passes through raw")
	assert.Len(t, created["images"], 1)

	rr = doMultipart(t, r, http.MethodPut, "/api/rooms/"+id, "hotel-a", map[string]string{"capacity": "4"},
		multipartFile{"images", "b.png", pngData(t)})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decodeRoom(t, rr)
	assert.Equal(t, float64(4), updated["capacity"])
	assert.Equal(t, float64(1000), updated["price"])
	assert.Len(t, updated["images"], 2)

	first := updated["images"].([]any)[0].(string)
	req := httptest.NewRequest(http.MethodDelete, "/api/rooms/"+id+"/media?url="+first, nil)
	req.Header.Set("X-Test-Hotel-ID", "hotel-a")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decodeRoom(t, rec)["images"], 1)

	for i := 0; i < 2; i++ {
		req = httptest.NewRequest(http.MethodDelete, "/api/rooms/"+id, nil)
		req.Header.Set("X-Test-Hotel-ID", "hotel-a")
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRoomEndpoints_Validation(t *testing.T) {
	r := setupTestRouter(t)

	rr := doMultipart(t, r, http.MethodPost, "/api/rooms", "hotel-a", map[string]string{"title": `{"tr":"x"}`})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doMultipart(t, r, http.MethodPost, "/api/rooms", "hotel-a", map[string]string{"price": "abc"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	files := make([]multipartFile, MaxVideos+1)
	for i := range files {
		files[i] = multipartFile{"videos", "v.mp4", []byte("x")}
	}
	rr = doMultipart(t, r, http.MethodPost, "/api/rooms", "hotel-a", map[string]string{"price": "1"}, files...)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doMultipart(t, r, http.MethodPost, "/api/rooms", "hotel-a", map[string]string{"price": "1"},
		multipartFile{"images", "notes.txt", []byte("plain text")})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doMultipart(t, r, http.MethodPut, "/api/rooms/missing", "hotel-a", map[string]string{"price": "1"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRoomEndpoints_NonFinitePrice(t *testing.T) {
	r := setupTestRouter(t)

	for _, price := range []string{"NaN", "Inf", "+Inf"} {
		rr := doMultipart(t, r, http.MethodPost, "/api/rooms", "hotel-a", map[string]string{"price": price})
		assert.Equal(t, http.StatusBadRequest, rr.Code, price)
		assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR", price)
	}

	rr := doMultipart(t, r, http.MethodPost, "/api/rooms", "hotel-a", map[string]string{"price": "100", "size": "Inf"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.Header.Set("X-Test-Hotel-ID", "hotel-a")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rooms":[]`)
}

func TestRoomEndpoints_Unauthorized(t *testing.T) {
	r := setupTestRouter(t)
	rr := doMultipart(t, r, http.MethodPost, "/api/rooms", "", map[string]string{"price": "1"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
