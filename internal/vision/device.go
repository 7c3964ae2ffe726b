package vision

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"blockassist/internal/capture"
)

// DeviceSource grabs frames from a video device or stream, typically a
// capture card or a scrcpy v4l2 loopback mirroring the phone.
type DeviceSource struct {
	mu    sync.Mutex
	vc    *gocv.VideoCapture
	frame gocv.Mat
}

// OpenDevice opens a capture device by index ("0") or by URL/path.
func OpenDevice(device string) (*DeviceSource, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture device %s: %w", device, err)
	}
	return &DeviceSource{vc: vc, frame: gocv.NewMat()}, nil
}

// Capture reads the next frame.
func (d *DeviceSource) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.vc == nil {
		return nil, fmt.Errorf("%w: device closed", capture.ErrNoImage)
	}
	if ok := d.vc.Read(&d.frame); !ok || d.frame.Empty() {
		return nil, fmt.Errorf("%w: no frame from device", capture.ErrNoImage)
	}
	if d.frame.Channels() != 3 {
		return nil, fmt.Errorf("%w: unexpected %d-channel frame", capture.ErrNoImage, d.frame.Channels())
	}
	return matToImage(d.frame), nil
}

// Close releases the device.
func (d *DeviceSource) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.vc == nil {
		return nil
	}
	d.frame.Close()
	err := d.vc.Close()
	d.vc = nil
	return err
}
