// Package capture supplies screenshots to the pipeline.
//
// A Source may fail or return no image on any call; callers treat both as
// "no image" for that tick and never pass the failure into the core.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoImage is returned when a source has nothing to deliver.
var ErrNoImage = errors.New("capture: no image")

// Source delivers screenshots.
type Source interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Func adapts a function to a Source.
type Func func(ctx context.Context) (image.Image, error)

// Capture calls f.
func (f Func) Capture(ctx context.Context) (image.Image, error) {
	return f(ctx)
}

// Static returns the same image on every call. A nil image yields ErrNoImage.
type Static struct {
	Image image.Image
}

// Capture returns the static image.
func (s Static) Capture(ctx context.Context) (image.Image, error) {
	if s.Image == nil {
		return nil, ErrNoImage
	}
	return s.Image, nil
}

// Decode loads an image file in any registered format
// (PNG, JPEG, GIF, BMP, TIFF, WebP) and returns it with its format name.
func Decode(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := DecodeReader(file)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}

// DecodeReader decodes an image in any registered format from r.
func DecodeReader(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// FileSource re-reads one screenshot file on every capture, for setups where
// a mirroring tool keeps overwriting the same file.
type FileSource struct {
	Path string
}

// Capture decodes the file.
func (s FileSource) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := Decode(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s missing", ErrNoImage, s.Path)
	}
	return img, err
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// DirSource captures the most recently modified image file in a directory,
// such as a device's synced screenshot folder.
type DirSource struct {
	Dir string
}

// Capture decodes the newest image in the directory.
func (s DirSource) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Latest()
	if err != nil {
		return nil, err
	}
	img, _, err := Decode(path)
	return img, err
}

// Latest returns the path of the newest image file in the directory.
func (s DirSource) Latest() (string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", s.Dir, err)
	}

	var newest string
	var newestTime time.Time
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(s.Dir, e.Name())
			newestTime = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("%w: no images in %s", ErrNoImage, s.Dir)
	}
	return newest, nil
}

// ForPath returns a DirSource for directories and a FileSource otherwise.
func ForPath(path string) Source {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return DirSource{Dir: path}
	}
	return FileSource{Path: path}
}
