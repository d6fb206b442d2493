// Package imageio decodes logo/background bitmaps and persists rendered canvases.
package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
)

// Decoder opens bitmaps from disk. It implements render.BitmapDecoder.
type Decoder struct {
	Logger *log.Logger
}

// Decode opens path and decodes it, honouring EXIF orientation for JPEGs.
// Supported formats are those registered with imaging plus WebP.
func (d Decoder) Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	if d.Logger != nil {
		d.Logger.Debug("bitmap decoded", "path", path, "size", img.Bounds().Size())
	}
	return img, nil
}

// Formats lists the output extensions Save accepts.
var Formats = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}

// FormatFromPath returns the output format implied by path's extension.
func FormatFromPath(path string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, qrerr.Wrap(qrerr.ErrCodeIO, err, "unsupported output extension %q (want one of %s)",
			filepath.Ext(path), strings.Join(Formats, ", "))
	}
	return f, nil
}

// Save writes img to path, inferring the format from the extension.
// The file is written to a temporary sibling first and renamed into place,
// so a failed save never leaves a truncated image behind.
func Save(img image.Image, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return qrerr.Wrap(qrerr.ErrCodeIO, err, "save %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, img, format); err != nil {
		tmp.Close()
		return qrerr.Wrap(qrerr.ErrCodeIO, err, "save %s", path)
	}
	if err := tmp.Close(); err != nil {
		return qrerr.Wrap(qrerr.ErrCodeIO, err, "save %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return qrerr.Wrap(qrerr.ErrCodeIO, err, "save %s", path)
	}
	return nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	return imaging.Encode(w, img, format, imaging.JPEGQuality(95))
}
