package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"color-converter/internal/color"
	"color-converter/internal/config"
	"color-converter/internal/metrics"
	"color-converter/internal/swatch"
	"color-converter/internal/ui"
)

// Handler serves the conversion API.
type Handler struct {
	cfg     *config.Config
	limiter *RateLimiter
	keys    *KeyChecker
	mux     *http.ServeMux
}

// NewHandler creates the API handler for cfg.
func NewHandler(cfg *config.Config) *Handler {
	h := &Handler{
		cfg:     cfg,
		limiter: NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		keys:    NewKeyChecker(cfg.APIKeyHash),
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /api/convert", h.handleConvert)
	h.mux.HandleFunc("GET /api/palette.png", h.handlePalettePNG)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	return h
}

// ServeHTTP applies CORS, rate limiting and key checks before routing.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", h.cfg.AllowedOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+KeyHeader)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.URL.Path == "/healthz" {
		h.mux.ServeHTTP(w, r)
		return
	}

	clientIP := getClientIP(r)
	if !h.limiter.Allow(clientIP) {
		metrics.RateLimitedTotal.Inc()
		ui.LogStatus("warn", "Rate limited: "+clientIP)
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	if !h.keys.Check(r.Header.Get(KeyHeader)) {
		metrics.UnauthorizedTotal.Inc()
		ui.LogStatus("warn", "Invalid API key from: "+clientIP)
		writeError(w, http.StatusUnauthorized, "invalid or missing API key")
		return
	}

	h.mux.ServeHTTP(w, r)
}

// ShadeResponse is one palette entry as rendered by a client.
type ShadeResponse struct {
	Step  int       `json:"step"`
	HSL   color.HSL `json:"hsl"`
	Hex   string    `json:"hex"`
	CSS   string    `json:"css"`
	Label string    `json:"label"`
	Base  bool      `json:"base"`
}

// ConvertResponse is the /api/convert payload. On invalid input Valid is
// false, Hex holds the placeholder color and the text fields hold the
// configured invalid text.
type ConvertResponse struct {
	Valid     bool            `json:"valid"`
	Source    color.Source    `json:"source,omitempty"`
	Hex       string          `json:"hex"`
	RGB       *color.RGB      `json:"rgb,omitempty"`
	RGBString string          `json:"rgb_string"`
	HSL       *color.HSL      `json:"hsl,omitempty"`
	HSLString string          `json:"hsl_string"`
	Palette   []ShadeResponse `json:"palette,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewConvertResponse builds the success payload for res.
func NewConvertResponse(res *color.Result, source color.Source) ConvertResponse {
	rgb, hsl := res.RGB, res.HSL
	resp := ConvertResponse{
		Valid:     true,
		Source:    source,
		Hex:       res.Hex,
		RGB:       &rgb,
		RGBString: res.RGBString(),
		HSL:       &hsl,
		HSLString: res.HSLString(),
		Palette:   make([]ShadeResponse, 0, len(res.Palette)),
	}
	for _, s := range res.Palette {
		resp.Palette = append(resp.Palette, ShadeResponse{
			Step:  s.Step,
			HSL:   s.HSL,
			Hex:   s.Hex,
			CSS:   s.HSL.String(),
			Label: s.Label(),
			Base:  s.IsBase,
		})
	}
	return resp
}

// InvalidResponse builds the placeholder payload for input that is not a
// valid hex color.
func InvalidResponse(cfg *config.Config, source color.Source) ConvertResponse {
	return ConvertResponse{
		Valid:     false,
		Source:    source,
		Hex:       cfg.PlaceholderHex,
		RGBString: cfg.InvalidText,
		HSLString: cfg.InvalidText,
		Error:     cfg.InvalidText,
	}
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	res, source, status, err := h.convert(r)
	switch {
	case status == http.StatusUnprocessableEntity:
		writeJSON(w, status, InvalidResponse(h.cfg, source))
		return
	case err != nil:
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, NewConvertResponse(res, source))
}

func (h *Handler) handlePalettePNG(w http.ResponseWriter, r *http.Request) {
	res, source, status, err := h.convert(r)
	switch {
	case status == http.StatusUnprocessableEntity:
		writeJSON(w, status, InvalidResponse(h.cfg, source))
		return
	case err != nil:
		writeError(w, status, err.Error())
		return
	}

	opts := swatch.DefaultOptions
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 512 {
			writeError(w, http.StatusBadRequest, "size must be an integer in 1..512")
			return
		}
		opts = swatch.Options{ShadeWidth: n, Height: n}
	}

	var buf bytes.Buffer
	if err := swatch.EncodePNG(&buf, res.Palette, opts); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// convert reads the color and offsets from the query string. Invalid hex is
// reported as 422, malformed parameters as 400.
func (h *Handler) convert(r *http.Request) (*color.Result, color.Source, int, error) {
	q := r.URL.Query()

	offsets := h.cfg.PaletteOffsets
	if q.Has("offsets") {
		var err error
		if offsets, err = color.ParseOffsets(q.Get("offsets")); err != nil {
			return nil, "", http.StatusBadRequest, err
		}
	}

	var (
		res    *color.Result
		source color.Source
		err    error
	)
	switch {
	case q.Has("hex"):
		source = color.SourceText
		res, err = color.FromHex(q.Get("hex"), offsets)
	case q.Has("picker"):
		source = color.SourcePicker
		res, err = color.FromPicker(q.Get("picker"), offsets)
	case q.Has("r") || q.Has("g") || q.Has("b"):
		source = color.SourceRGB
		var rgb color.RGB
		if rgb, err = parseRGB(q.Get("r"), q.Get("g"), q.Get("b")); err != nil {
			return nil, source, http.StatusBadRequest, err
		}
		res = color.FromRGB(rgb, offsets)
	default:
		return nil, "", http.StatusBadRequest, errors.New("one of hex, picker or r,g,b is required")
	}

	if err != nil {
		if errors.Is(err, color.ErrInvalidFormat) {
			metrics.InvalidTotal.WithLabelValues(string(source)).Inc()
			return nil, source, http.StatusUnprocessableEntity, err
		}
		return nil, source, http.StatusBadRequest, err
	}

	metrics.ConversionsTotal.WithLabelValues(string(source)).Inc()
	metrics.PaletteShadesTotal.Add(float64(len(res.Palette)))
	return res, source, http.StatusOK, nil
}

func parseRGB(r, g, b string) (color.RGB, error) {
	var ch [3]uint8
	for i, v := range []string{r, g, b} {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 8)
		if err != nil {
			return color.RGB{}, fmt.Errorf("%c must be an integer in 0..255", "rgb"[i])
		}
		ch[i] = uint8(n)
	}
	return color.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
