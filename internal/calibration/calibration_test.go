package calibration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blockassist/pkg/geometry"

	"github.com/stretchr/testify/require"
)

func sample() Calibration {
	return Calibration{
		Board: geometry.Screen(40, 600, 1040, 1600),
		Pieces: []geometry.ScreenRect{
			geometry.Screen(40, 1680, 346, 2016),
			geometry.Screen(386, 1680, 692, 2016),
			geometry.Screen(732, 1680, 1038, 2016),
		},
	}
}

func TestEncodeKeys(t *testing.T) {
	values := Encode(sample())
	require.Len(t, values, 16)
	require.Equal(t, 40, values["board_left"])
	require.Equal(t, 1600, values["board_bottom"])
	require.Equal(t, 386, values["piece1_left"])
	require.Equal(t, 2016, values["piece2_bottom"])
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]int
		want    Calibration
		wantErr error
	}{
		{"empty", map[string]int{}, Calibration{}, ErrNotCalibrated},
		{"sentinel", map[string]int{"board_left": -1, "board_top": 0, "board_right": 10, "board_bottom": 10}, Calibration{}, ErrNotCalibrated},
		{"partial board", map[string]int{"board_left": 0, "board_top": 0}, Calibration{}, ErrNotCalibrated},
		{
			name:   "board only",
			values: map[string]int{"board_left": 1, "board_top": 2, "board_right": 3, "board_bottom": 4},
			want:   Calibration{Board: geometry.Screen(1, 2, 3, 4)},
		},
		{
			name: "pieces stop at first gap",
			values: map[string]int{
				"board_left": 1, "board_top": 2, "board_right": 3, "board_bottom": 4,
				"piece0_left": 5, "piece0_top": 6, "piece0_right": 7, "piece0_bottom": 8,
				"piece2_left": 9, "piece2_top": 9, "piece2_right": 9, "piece2_bottom": 9,
			},
			want: Calibration{
				Board:  geometry.Screen(1, 2, 3, 4),
				Pieces: []geometry.ScreenRect{geometry.Screen(5, 6, 7, 8)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, sample().Validate())

	bad := Calibration{Board: geometry.Screen(10, 10, 10, 20)}
	require.ErrorIs(t, bad.Validate(), ErrInvalidBoard)

	many := sample()
	many.Pieces = append(many.Pieces, geometry.Screen(0, 0, 1, 1))
	require.ErrorIs(t, many.Validate(), ErrTooManyPieces)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNotCalibrated)

	require.NoError(t, s.Save(ctx, sample()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sample(), got)

	// Last write wins and drops the old piece keys.
	require.NoError(t, s.Save(ctx, Calibration{Board: geometry.Screen(0, 0, 80, 80)}))
	require.Len(t, s.Values(), 4)
	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got.Pieces)

	require.Error(t, s.Save(ctx, Calibration{}))
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "calibration.json")
	s := NewFileStore(path)

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNotCalibrated)

	require.NoError(t, s.Save(ctx, sample()))
	got, err := NewFileStore(path).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sample(), got)
}

func TestFileStoreSentinelAndCorruption(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	uncalibrated := filepath.Join(dir, "unset.json")
	require.NoError(t, os.WriteFile(uncalibrated, []byte(`{"board_left": -1}`), 0o644))
	_, err := NewFileStore(uncalibrated).Load(ctx)
	require.ErrorIs(t, err, ErrNotCalibrated)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{"board_left": "x"`), 0o644))
	_, err = NewFileStore(corrupt).Load(ctx)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotCalibrated))
}

func TestParseHash(t *testing.T) {
	values, err := parseHash(map[string]string{"board_left": "12", "board_top": "-1"})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"board_left": 12, "board_top": -1}, values)

	_, err = parseHash(map[string]string{"board_left": "twelve"})
	require.Error(t, err)
}
