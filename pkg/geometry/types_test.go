package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		w, h int
		want Rect
	}{
		{"inside", NewRect(10, 10, 50, 60), 100, 100, NewRect(10, 10, 50, 60)},
		{"overhang", NewRect(-5, -8, 120, 130), 100, 100, NewRect(0, 0, 100, 100)},
		{"outside", NewRect(200, 200, 300, 300), 100, 100, NewRect(100, 100, 100, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.Clamp(tt.w, tt.h))
		})
	}
}

func TestRectValid(t *testing.T) {
	require.True(t, NewRect(0, 0, 1, 1).Valid())
	require.False(t, NewRect(5, 0, 5, 10).Valid())
	require.False(t, NewRect(0, 10, 5, 2).Valid())
}

func TestScaleRoundTrip(t *testing.T) {
	scales := []Scale{1, 0.5, 540.0 / 1080.0, 540.0 / 1440.0, 540.0 / 1179.0}
	windows := []ScaledRect{
		Scaled(0, 0, 189, 189),
		Scaled(40, 112, 310, 382),
		Scaled(17, 33, 449, 465),
	}
	for _, s := range scales {
		for _, w := range windows {
			back := s.ToScaled(s.ToScreen(w))
			require.InDelta(t, w.Left, back.Left, 1, "scale %v window %v", s, w)
			require.InDelta(t, w.Top, back.Top, 1, "scale %v window %v", s, w)
			require.InDelta(t, w.Right, back.Right, 1, "scale %v window %v", s, w)
			require.InDelta(t, w.Bottom, back.Bottom, 1, "scale %v window %v", s, w)
		}
	}
}

func TestScaleToScreenTruncates(t *testing.T) {
	s := Scale(0.5)
	got := s.ToScreen(Scaled(3, 5, 101, 99))
	require.Equal(t, Screen(6, 10, 202, 198), got)
}
