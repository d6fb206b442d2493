package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/rook-computer/qrwatermark/internal/config"
	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
	"github.com/rook-computer/qrwatermark/internal/grid"
	"github.com/rook-computer/qrwatermark/internal/imageio"
	"github.com/rook-computer/qrwatermark/internal/render"
)

// DefaultMaxTextBytes bounds the payload accepted by /qr. A version 40 code
// holds at most 2953 bytes.
const DefaultMaxTextBytes = 2953

// MaxCanvasSide caps the rendered side length served over HTTP.
const MaxCanvasSide = 4096

// API renders codes over HTTP. Logo and background image paths come only
// from Base; requests cannot name files on the server.
type API struct {
	Renderer     *render.Renderer
	Base         config.Config
	Logger       *log.Logger
	MaxTextBytes int
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// handleQR serves GET /api/v1/qr?text=...
//
// Optional query parameters override the server's base style: fg, bg,
// shape, pixel, margin, level, auto_gradient, gradient=#start,#end and
// format (png, jpg, gif, bmp).
func (a *API) handleQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	if text == "" {
		writeAPIError(w, http.StatusBadRequest, "missing_text", "query parameter text is required")
		return
	}
	maxBytes := a.MaxTextBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTextBytes
	}
	if len(text) > maxBytes {
		writeAPIError(w, http.StatusRequestEntityTooLarge, "text_too_long", "text exceeds "+strconv.Itoa(maxBytes)+" bytes")
		return
	}

	cfg, err := a.requestConfig(q)
	if err != nil {
		writeRenderError(w, err)
		return
	}
	format, err := imageio.FormatFromPath("qr." + strings.TrimPrefix(firstNonEmpty(q.Get("format"), "png"), "."))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}
	opts, err := cfg.Options()
	if err != nil {
		writeRenderError(w, err)
		return
	}
	g, err := grid.EncodeLevel(text, cfg.Level)
	if err != nil {
		writeRenderError(w, err)
		return
	}
	if side := opts.Style.CanvasSize(g.Size()); side > MaxCanvasSide {
		writeAPIError(w, http.StatusBadRequest, "canvas_too_large",
			"canvas would be "+strconv.Itoa(side)+"px, limit is "+strconv.Itoa(MaxCanvasSide))
		return
	}
	canvas, err := a.Renderer.Render(r.Context(), g, opts)
	if err != nil {
		writeRenderError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, canvas, format); err != nil {
		writeRenderError(w, qrerr.Wrap(qrerr.ErrCodeIO, err, "encode response"))
		return
	}
	if a.Logger != nil {
		a.Logger.Debug("served code", "bytes", len(text), "modules", g.Size(), "format", format)
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *API) requestConfig(q url.Values) (config.Config, error) {
	get := q.Get
	cfg := a.Base
	var opts []config.Option
	for _, c := range []struct {
		key string
		set func(config.Color) config.Option
	}{
		{"fg", config.WithForeground},
		{"bg", config.WithBackground},
	} {
		if raw := get(c.key); raw != "" {
			col, err := config.ParseColor(raw)
			if err != nil {
				return config.Config{}, err
			}
			opts = append(opts, c.set(col))
		}
	}
	if raw := get("gradient"); raw != "" {
		g, err := config.ParseGradient(raw)
		if err != nil {
			return config.Config{}, err
		}
		opts = append(opts, config.WithGradient(g.Start, g.End))
	}
	for _, c := range []struct {
		key string
		set func(int) config.Option
	}{
		{"pixel", config.WithPixelSize},
		{"margin", config.WithMarginSize},
	} {
		if raw := get(c.key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return config.Config{}, qrerr.Wrap(qrerr.ErrCodeConfig, err, "%s must be an integer", c.key)
			}
			opts = append(opts, c.set(n))
		}
	}
	if raw := get("shape"); raw != "" {
		opts = append(opts, config.WithShape(raw))
	}
	if raw := get("level"); raw != "" {
		opts = append(opts, config.WithLevel(raw))
	}
	if raw := get("auto_gradient"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return config.Config{}, qrerr.Wrap(qrerr.ErrCodeConfig, err, "auto_gradient must be a boolean")
		}
		cfg.AutoGradient = on
	}
	cfg.Apply(opts...)
	return cfg, nil
}

func contentType(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.BMP:
		return "image/bmp"
	case imaging.TIFF:
		return "image/tiff"
	}
	return "image/png"
}

func writeRenderError(w http.ResponseWriter, err error) {
	code := qrerr.GetCode(err)
	switch code {
	case qrerr.ErrCodeConfig:
		writeAPIError(w, http.StatusBadRequest, "invalid_style", err.Error())
	case qrerr.ErrCodeEncoding:
		writeAPIError(w, http.StatusUnprocessableEntity, "encoding_failed", err.Error())
	default:
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
	}
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
