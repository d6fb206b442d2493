package web

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rook-computer/qrwatermark/internal/config"
	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
	"github.com/rook-computer/qrwatermark/internal/imageio"
	"github.com/rook-computer/qrwatermark/internal/render"
)

func newTestRouter(devMode bool) http.Handler {
	api := &API{
		Renderer: render.NewRenderer(imageio.Decoder{}, nil),
		Base:     config.Default(),
	}
	return NewRouter(api, devMode)
}

func TestQRPNG(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/qr?text=hello&pixel=4&margin=2", nil)
	rec := httptest.NewRecorder()
	newTestRouter(false).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	// 21 modules + 2*2 margin, 4px each
	if got := img.Bounds().Dx(); got != 100 {
		t.Errorf("width = %d, want 100", got)
	}
}

func TestQRJPEG(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/qr?text=hello&format=jpg", nil)
	rec := httptest.NewRecorder()
	newTestRouter(false).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestQRErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing text", "", http.StatusBadRequest, "missing_text"},
		{"bad colour", "text=a&fg=blue", http.StatusBadRequest, "invalid_style"},
		{"zero pixel", "text=a&pixel=0", http.StatusBadRequest, "invalid_style"},
		{"pixel not a number", "text=a&pixel=big", http.StatusBadRequest, "invalid_style"},
		{"dot with gradient", "text=a&shape=dot&gradient=%23ff0000,%230000ff", http.StatusBadRequest, "invalid_style"},
		{"gradient without comma", "text=a&gradient=%23ff0000", http.StatusBadRequest, "invalid_style"},
		{"bad format", "text=a&format=svg", http.StatusBadRequest, "invalid_format"},
		{"canvas too large", "text=a&pixel=1000", http.StatusBadRequest, "canvas_too_large"},
		{"pixel overflows canvas", "text=a&pixel=4611686018427387904", http.StatusBadRequest, "invalid_style"},
		{"margin overflows canvas", "text=a&margin=4611686018427387904", http.StatusBadRequest, "invalid_style"},
		{"too long", "text=" + strings.Repeat("x", DefaultMaxTextBytes+1), http.StatusRequestEntityTooLarge, "text_too_long"},
		{"does not fit", "text=" + strings.Repeat("x", 2000) + "&level=highest", http.StatusUnprocessableEntity, "encoding_failed"},
	}
	router := newTestRouter(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/qr?"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var body apiError
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.code {
				t.Errorf("error = %q, want %q", body.Error, tt.code)
			}
		})
	}
}

func TestHealthzAndMethods(t *testing.T) {
	router := newTestRouter(false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/qr?text=a", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /qr status = %d, want 405", rec.Code)
	}
}

func TestDevCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/qr", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	newTestRouter(true).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestHTTPServerLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, newTestRouter(false))
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	resp, err := http.Get(fmt.Sprintf("http://%s/api/v1/healthz", s.Addr()))
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"ok":true`) {
		t.Errorf("healthz = %d %s", resp.StatusCode, body)
	}

	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := s.Start(ctx); err == nil {
		t.Error("Start() after Stop() succeeded")
	}
}

func TestServerConfigApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    ServerConfig
		wantErr bool
	}{
		{
			name: "defaults",
			want: DefaultServerConfig(),
		},
		{
			name: "empty values ignored",
			env:  map[string]string{EnvListenAddr: "", EnvDevMode: ""},
			want: DefaultServerConfig(),
		},
		{
			name: "overrides",
			env:  map[string]string{EnvListenAddr: ":7000", EnvDevMode: "true", EnvMaxTextBytes: "100"},
			want: ServerConfig{ListenAddr: ":7000", DevMode: true, MaxTextBytes: 100},
		},
		{
			name:    "bad dev mode",
			env:     map[string]string{EnvDevMode: "sometimes"},
			wantErr: true,
		},
		{
			name:    "bad max text",
			env:     map[string]string{EnvMaxTextBytes: "lots"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			}
			got, err := DefaultServerConfig().ApplyEnv(lookup)
			if tt.wantErr {
				if !qrerr.Is(err, qrerr.ErrCodeConfig) {
					t.Fatalf("ApplyEnv() error = %v, want CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ApplyEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServerConfig
		wantErr bool
	}{
		{"defaults", DefaultServerConfig(), false},
		{"no listen address", ServerConfig{MaxTextBytes: 10}, true},
		{"zero max text", ServerConfig{ListenAddr: ":1"}, true},
		{"max text above a version 40 code", ServerConfig{ListenAddr: ":1", MaxTextBytes: DefaultMaxTextBytes + 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
