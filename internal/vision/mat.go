// Package vision holds the OpenCV-backed pieces: live capture from a video
// device and annotated snapshots of each analysis.
package vision

import (
	"image"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// stripes splits [0, height) into one band per CPU and runs fn on each band
// concurrently.
func stripes(height int, fn func(yStart, yEnd int)) {
	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		if startY >= height {
			break
		}
		endY := min(startY+rowsPerWorker, height)

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			fn(yStart, yEnd)
		}(startY, endY)
	}
	wg.Wait()
}

// imageToMat converts a Go image to a BGR Mat.
func imageToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	stripes(height, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				mat.SetUCharAt(y, x*3+0, uint8(b>>8))
				mat.SetUCharAt(y, x*3+1, uint8(g>>8))
				mat.SetUCharAt(y, x*3+2, uint8(r>>8))
			}
		}
	})
	return mat
}

// matToImage converts a BGR Mat to an RGBA image.
func matToImage(mat gocv.Mat) *image.RGBA {
	h, w := mat.Rows(), mat.Cols()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	stripes(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			row := y * img.Stride
			for x := 0; x < w; x++ {
				off := row + x*4
				img.Pix[off+0] = mat.GetUCharAt(y, x*3+2)
				img.Pix[off+1] = mat.GetUCharAt(y, x*3+1)
				img.Pix[off+2] = mat.GetUCharAt(y, x*3+0)
				img.Pix[off+3] = 255
			}
		}
	})
	return img
}
