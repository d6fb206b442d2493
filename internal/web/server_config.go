package web

import (
	"strconv"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
)

// Environment variables read by ApplyEnv.
const (
	EnvListenAddr   = "QRWATERMARK_LISTEN"
	EnvDevMode      = "QRWATERMARK_DEV"
	EnvMaxTextBytes = "QRWATERMARK_MAX_TEXT"
)

const DefaultListenAddr = ":8080"

// ServerConfig is the runtime configuration of the QR service.
type ServerConfig struct {
	ListenAddr   string
	DevMode      bool // enables WithDevCORS
	MaxTextBytes int
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{ListenAddr: DefaultListenAddr, MaxTextBytes: DefaultMaxTextBytes}
}

// ApplyEnv overlays the QRWATERMARK_* variables reported by lookup onto c.
// Pass os.LookupEnv in production. Empty values are ignored.
func (c ServerConfig) ApplyEnv(lookup func(string) (string, bool)) (ServerConfig, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	if v := get(EnvListenAddr); v != "" {
		c.ListenAddr = v
	}
	if v := get(EnvDevMode); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return ServerConfig{}, qrerr.Wrap(qrerr.ErrCodeConfig, err, "%s must be a boolean, got %q", EnvDevMode, v)
		}
		c.DevMode = on
	}
	if v := get(EnvMaxTextBytes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ServerConfig{}, qrerr.Wrap(qrerr.ErrCodeConfig, err, "%s must be an integer, got %q", EnvMaxTextBytes, v)
		}
		c.MaxTextBytes = n
	}
	return c, nil
}

// Validate reports an unusable listen address or text limit as a CONFIG error.
func (c ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return qrerr.New(qrerr.ErrCodeConfig, "listen address is empty")
	}
	if c.MaxTextBytes < 1 || c.MaxTextBytes > DefaultMaxTextBytes {
		return qrerr.New(qrerr.ErrCodeConfig, "max text must be within 1..%d bytes, got %d", DefaultMaxTextBytes, c.MaxTextBytes)
	}
	return nil
}
