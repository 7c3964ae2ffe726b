package pipeline

import "errors"

// ErrNoGrid is returned by Calibrate when no board grid is visible.
var ErrNoGrid = errors.New("pipeline: no grid found")
