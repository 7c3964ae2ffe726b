package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"
)

// ErrUnchanged is returned by a Changed source when the screenshot has not
// been rewritten since the previous capture. It wraps ErrNoImage.
var ErrUnchanged = fmt.Errorf("%w: screenshot unchanged", ErrNoImage)

// Changed wraps a file or directory source and only decodes the screenshot
// when its modification time moves forward. The watch loop polls far more
// often than mirroring tools write, so most ticks skip the decode.
type Changed struct {
	path string
	src  Source

	mu       sync.Mutex
	lastMod  time.Time
	lastPath string
}

// NewChanged watches path, which may be a file or a directory.
func NewChanged(path string) *Changed {
	return &Changed{path: path, src: ForPath(path)}
}

// Capture returns the screenshot if it is newer than the last one delivered.
func (c *Changed) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := c.path
	if dir, ok := c.src.(DirSource); ok {
		latest, err := dir.Latest()
		if err != nil {
			return nil, err
		}
		target = latest
	}

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s missing", ErrNoImage, target)
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if target == c.lastPath && !info.ModTime().After(c.lastMod) {
		return nil, ErrUnchanged
	}

	img, _, err := Decode(target)
	if err != nil {
		return nil, err
	}
	c.lastPath = target
	c.lastMod = info.ModTime()
	return img, nil
}

