package api

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"color-converter/internal/color"
	"color-converter/internal/config"
)

func newTestHandler(t *testing.T, mutate func(*config.Config)) *Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Env = &config.EnvConfig{Env: config.Development}
	cfg.RateLimitRPS = 1000
	cfg.RateLimitBurst = 1000
	if mutate != nil {
		mutate(cfg)
	}
	return NewHandler(cfg)
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) ConvertResponse {
	t.Helper()
	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestConvertHex(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := get(t, h, "/api/convert?hex=f00&offsets=-40,0,40", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	resp := decode(t, rec)
	assert.True(t, resp.Valid)
	assert.Equal(t, "text", string(resp.Source))
	assert.Equal(t, "#FF0000", resp.Hex)
	assert.Equal(t, "rgb(255, 0, 0)", resp.RGBString)
	assert.Equal(t, "hsl(0, 100%, 50%)", resp.HSLString)
	require.NotNil(t, resp.HSL)
	assert.Equal(t, 50, resp.HSL.L)

	require.Len(t, resp.Palette, 3)
	assert.Equal(t, "#330000", resp.Palette[0].Hex)
	assert.Equal(t, "hsl(0, 100%, 10%)", resp.Palette[0].CSS)
	assert.Equal(t, "#330000 • 10% lightness", resp.Palette[0].Label)
	assert.True(t, resp.Palette[1].Base)
	assert.Equal(t, 90, resp.Palette[2].HSL.L)
}

func TestConvertHexWithHashEscaped(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := get(t, h, "/api/convert?hex=%23FFFFFF", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "#FFFFFF", resp.Hex)
	assert.Len(t, resp.Palette, 5)
}

func TestConvertInvalidHex(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, target := range []string{
		"/api/convert?hex=%23ZZZZZZ",
		"/api/convert?hex=12345",
		"/api/convert?picker=nope",
	} {
		rec := get(t, h, target, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, target)

		resp := decode(t, rec)
		assert.False(t, resp.Valid)
		assert.Equal(t, "#D1D5DB", resp.Hex)
		assert.Equal(t, "Invalid HEX code...", resp.RGBString)
		assert.Equal(t, "Invalid HEX code...", resp.HSLString)
		assert.Nil(t, resp.RGB)
		assert.Empty(t, resp.Palette)
	}
}

func TestConvertRGB(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := get(t, h, "/api/convert?r=51&g=102&b=204", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "rgb", string(resp.Source))
	assert.Equal(t, "#3366CC", resp.Hex)
	assert.Equal(t, "hsl(220, 60%, 50%)", resp.HSLString)
}

func TestConvertBadRequests(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, target := range []string{
		"/api/convert",
		"/api/convert?r=256&g=0&b=0",
		"/api/convert?r=1&g=2",
		"/api/convert?r=-1&g=0&b=0",
		"/api/convert?hex=fff&offsets=1,x",
	} {
		rec := get(t, h, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestPalettePNG(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := get(t, h, "/api/palette.png?hex=3366cc&size=70", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 70*5, img.Bounds().Dx())

	rec = get(t, h, "/api/palette.png?hex=xyz", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = get(t, h, "/api/palette.png?hex=fff&size=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptionsAndHealth(t *testing.T) {
	h := newTestHandler(t, func(c *config.Config) { c.AllowedOrigin = "https://example.com" })

	req := httptest.NewRequest(http.MethodOptions, "/api/convert", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	h := newTestHandler(t, func(c *config.Config) { c.APIKeyHash = string(hash) })

	rec := get(t, h, "/api/convert?hex=fff", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(t, h, "/api/convert?hex=fff", http.Header{KeyHeader: {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(t, h, "/api/convert?hex=fff", http.Header{KeyHeader: {"s3cret"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health checks bypass auth.
	rec = get(t, h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimited(t *testing.T) {
	h := newTestHandler(t, func(c *config.Config) {
		c.RateLimitRPS = 0.001
		c.RateLimitBurst = 2
	})

	hdr := http.Header{"X-Forwarded-For": {"203.0.113.7, 10.0.0.1"}}
	assert.Equal(t, http.StatusOK, get(t, h, "/api/convert?hex=fff", hdr).Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/convert?hex=fff", hdr).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, h, "/api/convert?hex=fff", hdr).Code)

	other := http.Header{"X-Forwarded-For": {"198.51.100.1"}}
	assert.Equal(t, http.StatusOK, get(t, h, "/api/convert?hex=fff", other).Code)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "192.0.2.9")
	assert.Equal(t, "192.0.2.9", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "192.0.2.3, 10.0.0.1")
	assert.Equal(t, "192.0.2.3", getClientIP(req))
}

func TestOffsetsAreBounded(t *testing.T) {
	h := newTestHandler(t, nil)
	tooMany := strings.TrimSuffix(strings.Repeat("0,", color.MaxOffsets+1), ",")

	for _, target := range []string{
		"/api/palette.png?hex=f00&size=512&offsets=" + tooMany,
		"/api/convert?hex=f00&offsets=" + tooMany,
		"/api/convert?hex=f00&offsets=9223372036854775807",
		"/api/convert?hex=f00&offsets=-101,0",
	} {
		rec := get(t, h, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec := get(t, h, "/api/convert?hex=f00&offsets=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.Len(t, resp.Palette, 1)
	assert.Equal(t, "#FFFFFF", resp.Palette[0].Hex)
}
