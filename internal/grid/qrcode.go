package grid

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
)

// Level names accepted by ParseLevel.
const (
	LevelLow     = "low"
	LevelMedium  = "medium"
	LevelHigh    = "high"
	LevelHighest = "highest"
)

// ParseLevel maps a recovery level name to the encoder's level.
func ParseLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelLow:
		return qrcode.Low, nil
	case "", LevelMedium:
		return qrcode.Medium, nil
	case LevelHigh:
		return qrcode.High, nil
	case LevelHighest:
		return qrcode.Highest, nil
	}
	return 0, qrerr.New(qrerr.ErrCodeConfig, "unknown recovery level %q", name)
}

// Encode returns the module grid for text at the given recovery level.
// The quiet zone is not part of the grid; the renderer draws its own margin.
func Encode(text string, level qrcode.RecoveryLevel) (Bitmap, error) {
	code, err := qrcode.New(text, level)
	if err != nil {
		return nil, qrerr.Wrap(qrerr.ErrCodeEncoding, err, "encode %d bytes", len(text))
	}
	code.DisableBorder = true
	return Bitmap(code.Bitmap()), nil
}

// EncodeLevel is Encode with a level name.
func EncodeLevel(text, level string) (Bitmap, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return Encode(text, lvl)
}

// String renders the grid for a terminal, two cells per module.
func (b Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if b.Get(x, y) {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Describe is a short human-readable summary used in logs.
func Describe(g Grid) string {
	return fmt.Sprintf("%dx%d modules", g.Size(), g.Size())
}
