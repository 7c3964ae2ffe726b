package colorutil

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrayTruncates(t *testing.T) {
	require.Equal(t, 0, Gray(0, 0, 0))
	require.Equal(t, 255, Gray(255, 255, 255))
	require.Equal(t, 1, Gray(1, 1, 2))
	require.InDelta(t, 4.0/3, Brightness(1, 1, 2), 1e-9)
}

func TestPixelRGBAgreesAcrossImageTypes(t *testing.T) {
	c := color.RGBA{R: 200, G: 40, B: 90, A: 255}

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.SetRGBA(1, 1, c)
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	nrgba.Set(1, 1, c)
	paletted := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{Black, c})
	paletted.SetColorIndex(1, 1, 1)

	for _, img := range []image.Image{rgba, nrgba, paletted} {
		r, g, b := PixelRGB(img, 1, 1)
		require.Equal(t, []int{200, 40, 90}, []int{r, g, b})
	}
}
