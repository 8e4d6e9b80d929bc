package render

import "image"

// boxBlur runs a separable box blur of the given radius over r in place.
// Pixels outside r count as transparent. Works on premultiplied RGBA so the
// result stays valid.
func boxBlur(img *image.RGBA, r image.Rectangle, radius int) {
	r = r.Intersect(img.Bounds())
	if radius <= 0 || r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()
	win := 2*radius + 1
	tmp := make([]uint8, w*h*4)

	for y := 0; y < h; y++ {
		row := img.PixOffset(r.Min.X, r.Min.Y+y)
		for c := 0; c < 4; c++ {
			sum := 0
			for x := 0; x <= radius && x < w; x++ {
				sum += int(img.Pix[row+x*4+c])
			}
			for x := 0; x < w; x++ {
				tmp[(y*w+x)*4+c] = uint8(sum / win)
				if out := x - radius; out >= 0 {
					sum -= int(img.Pix[row+out*4+c])
				}
				if in := x + radius + 1; in < w {
					sum += int(img.Pix[row+in*4+c])
				}
			}
		}
	}

	for x := 0; x < w; x++ {
		for c := 0; c < 4; c++ {
			sum := 0
			for y := 0; y <= radius && y < h; y++ {
				sum += int(tmp[(y*w+x)*4+c])
			}
			for y := 0; y < h; y++ {
				img.Pix[img.PixOffset(r.Min.X+x, r.Min.Y+y)+c] = uint8(sum / win)
				if out := y - radius; out >= 0 {
					sum -= int(tmp[(out*w+x)*4+c])
				}
				if in := y + radius + 1; in < h {
					sum += int(tmp[(in*w+x)*4+c])
				}
			}
		}
	}
}
