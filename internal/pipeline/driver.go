// Package pipeline ties capture, calibration, board reading and placement
// advice into a periodic loop.
//
// A tick never fails: every problem along the way is reported as a Status
// and the loop carries on with the next screenshot.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"blockassist/internal/board"
	"blockassist/internal/calibration"
	"blockassist/internal/capture"
	"blockassist/internal/extract"
	"blockassist/internal/locator"
	"blockassist/internal/overlay"
	"blockassist/internal/solver"
	"blockassist/pkg/geometry"
)

// DefaultInterval is the pause between ticks.
const DefaultInterval = time.Second

// Status is the outcome of one tick.
type Status int

const (
	StatusOK Status = iota
	StatusNoImage
	StatusNotCalibrated
	StatusStoreError
	StatusSinkError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoImage:
		return "no image"
	case StatusNotCalibrated:
		return "not calibrated"
	case StatusStoreError:
		return "store error"
	case StatusSinkError:
		return "sink error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// BoardReader turns the board region of a screenshot into a matrix.
type BoardReader interface {
	Extract(img image.Image, rect geometry.ScreenRect) board.Matrix
}

// Result is what a tick produced. Report is only meaningful when the board
// was read, that is for StatusOK and StatusSinkError.
type Result struct {
	Status Status
	Report overlay.Report
	Err    error
}

// Driver runs the capture → read → advise → render cycle.
type Driver struct {
	Source   capture.Source
	Store    calibration.Store
	Reader   BoardReader
	Locator  *locator.Locator
	Sink     overlay.Sink
	Logger   *log.Logger
	Pieces   int
	Interval time.Duration

	// OnTick, if set, receives every result produced by Run.
	OnTick func(Result)

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string

	last Status
}

func (d *Driver) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

func (d *Driver) sink() overlay.Sink {
	if d.Sink == nil {
		return overlay.Noop
	}
	return d.Sink
}

// pieces is the configured piece count, else one per calibrated preview
// region, else the default.
func (d *Driver) pieces(cal calibration.Calibration) int {
	if d.Pieces > 0 {
		return d.Pieces
	}
	if shapes := extract.Pieces(cal.Pieces); len(shapes) > 0 {
		return len(shapes)
	}
	return solver.DefaultPieces
}

func (d *Driver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Driver) newID() string {
	if d.NewID == nil {
		return uuid.NewString()
	}
	return d.NewID()
}

func (d *Driver) capture(ctx context.Context) (image.Image, error) {
	img, err := d.Source.Capture(ctx)
	if err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, capture.ErrNoImage
	}
	return img, nil
}

// Tick processes one screenshot. The reader is only consulted once a
// calibration has been loaded.
func (d *Driver) Tick(ctx context.Context) Result {
	img, err := d.capture(ctx)
	if err != nil {
		return Result{Status: StatusNoImage, Err: err}
	}

	cal, err := d.Store.Load(ctx)
	if errors.Is(err, calibration.ErrNotCalibrated) {
		return Result{Status: StatusNotCalibrated, Err: err}
	}
	if err != nil {
		return Result{Status: StatusStoreError, Err: err}
	}

	return d.render(ctx, d.analyze(img, cal))
}

// Analyze reads img against cal and suggests placements without touching
// the store or the sink.
func (d *Driver) Analyze(img image.Image, cal calibration.Calibration) overlay.Report {
	return d.analyze(img, cal)
}

func (d *Driver) analyze(img image.Image, cal calibration.Calibration) overlay.Report {
	m := d.Reader.Extract(img, cal.Board)
	return overlay.Report{
		ID:          d.newID(),
		Time:        d.now(),
		Image:       img,
		Calibration: cal,
		Matrix:      m,
		Suggestion:  solver.Suggest(m, d.pieces(cal)),
	}
}

func (d *Driver) render(ctx context.Context, r overlay.Report) Result {
	if err := d.sink().Render(ctx, r); err != nil {
		return Result{Status: StatusSinkError, Report: r, Err: err}
	}
	return Result{Status: StatusOK, Report: r}
}

// Calibrate locates the board in a fresh screenshot, estimates the piece
// regions below it and saves both. When no grid is found the stored
// calibration is left alone and ErrNoGrid is returned.
func (d *Driver) Calibrate(ctx context.Context) (calibration.Calibration, error) {
	img, err := d.capture(ctx)
	if err != nil {
		return calibration.Calibration{}, fmt.Errorf("capture: %w", err)
	}
	return d.CalibrateImage(ctx, img)
}

// CalibrateImage is Calibrate for an image the caller already has.
func (d *Driver) CalibrateImage(ctx context.Context, img image.Image) (calibration.Calibration, error) {
	loc := d.Locator
	if loc == nil {
		loc = locator.New(locator.DefaultParams())
	}

	res, ok := loc.Locate(img)
	if !ok {
		d.logger().Debug("no grid", "score", res.Score)
		return calibration.Calibration{}, ErrNoGrid
	}

	b := img.Bounds()
	regions := locator.EstimateRegions(b.Dx(), b.Dy(), res.Board)
	cal := calibration.Calibration{Board: res.Board, Pieces: regions[:]}
	if err := d.Store.Save(ctx, cal); err != nil {
		return calibration.Calibration{}, fmt.Errorf("save calibration: %w", err)
	}

	d.logger().Info("calibrated", "board", res.Board.String(), "score", res.Score)
	return cal, nil
}

// Run ticks until ctx is cancelled. Ticks run one after another on the
// calling goroutine; a cancelled context stops the loop between ticks.
func (d *Driver) Run(ctx context.Context) error {
	interval := d.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger().Info("watching", "interval", interval)
	d.step(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.step(ctx)
		}
	}
}

func (d *Driver) step(ctx context.Context) {
	r := d.Tick(ctx)
	d.logResult(r)
	if d.OnTick != nil {
		d.OnTick(r)
	}
}

func (d *Driver) logResult(r Result) {
	l := d.logger()
	changed := r.Status != d.last
	d.last = r.Status

	switch r.Status {
	case StatusOK:
		l.Debug("tick", "id", r.Report.ID, "filled", r.Report.Matrix.FilledCount(),
			"placements", len(r.Report.Suggestion.Placements))
	case StatusNoImage:
		l.Debug("tick", "status", r.Status, "err", r.Err)
	case StatusNotCalibrated:
		if changed {
			l.Warn("not calibrated, run calibrate first")
		}
	default:
		l.Error("tick", "status", r.Status, "err", r.Err)
	}
}
