package locator

import (
	"testing"

	"blockassist/pkg/geometry"

	"github.com/stretchr/testify/require"
)

func TestEstimateRegions(t *testing.T) {
	got := EstimateRegions(1080, 2400, geometry.Screen(40, 600, 1040, 1600))

	require.Equal(t, [PieceSlots]geometry.ScreenRect{
		geometry.Screen(40, 1680, 346, 2016),
		geometry.Screen(386, 1680, 692, 2016),
		geometry.Screen(732, 1680, 1038, 2016),
	}, got)
}

func TestEstimateRegionsClampsNearScreenBottom(t *testing.T) {
	got := EstimateRegions(1000, 1000, geometry.Screen(0, 0, 1000, 900))

	for _, r := range got {
		require.Equal(t, 820, r.Top, "strip top is capped at 82%% of the screen")
		require.Equal(t, 982, r.Bottom)
		require.LessOrEqual(t, r.Right, 1000)
		require.True(t, r.Valid())
	}
}

func TestEstimateRegionsMinimumOffset(t *testing.T) {
	// A small board gets the fixed 24 px offset instead of 8% of its height.
	got := EstimateRegions(720, 1600, geometry.Screen(100, 300, 300, 500))
	require.Equal(t, 524, got[0].Top)
	require.Equal(t, 524+224, got[0].Bottom)
}
