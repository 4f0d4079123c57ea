package poster

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// fillGradient paints a vertical gradient where at maps the normalized
// row position t in [0,1] to a color.
func fillGradient(dst *image.RGBA, at func(t float64) color.RGBA) {
	b := dst.Bounds()
	h := b.Dy()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float64(y-b.Min.Y) / float64(h)
		c := at(t)
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}

// drawText renders s with its top-left corner at (x, y).
func drawText(dst draw.Image, face font.Face, x, y int, col color.Color, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// drawTextCentered renders s horizontally centered on cx with its top at y.
func drawTextCentered(dst draw.Image, face font.Face, cx, y int, col color.Color, s string) {
	drawText(dst, face, cx-textWidth(face, s)/2, y, col, s)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// roundedMask builds an alpha mask for a w by h rectangle with the given
// corner radius.
func roundedMask(w, h, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if radius <= 0 {
		draw.Draw(mask, mask.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{}, draw.Src)
		return mask
	}
	r2 := radius * radius
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inCorner := false
			var dx, dy int
			switch {
			case x < radius && y < radius:
				dx, dy, inCorner = radius-1-x, radius-1-y, true
			case x >= w-radius && y < radius:
				dx, dy, inCorner = x-(w-radius), radius-1-y, true
			case x < radius && y >= h-radius:
				dx, dy, inCorner = radius-1-x, y-(h-radius), true
			case x >= w-radius && y >= h-radius:
				dx, dy, inCorner = x-(w-radius), y-(h-radius), true
			}
			if inCorner && dx*dx+dy*dy > r2 {
				continue
			}
			mask.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	return mask
}

// fillRounded fills rect with col, rounding the corners by radius.
func fillRounded(dst draw.Image, rect image.Rectangle, radius int, col color.Color) {
	mask := roundedMask(rect.Dx(), rect.Dy(), radius)
	draw.DrawMask(dst, rect, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// pasteRounded scales src to fill rect and pastes it with rounded corners.
func pasteRounded(dst draw.Image, src image.Image, rect image.Rectangle, radius int) {
	scaled := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	mask := roundedMask(rect.Dx(), rect.Dy(), radius)
	draw.DrawMask(dst, rect, scaled, image.Point{}, mask, image.Point{}, draw.Over)
}

// fillCircle draws a filled circle of radius r centered at (cx, cy).
func fillCircle(dst draw.Image, cx, cy, r int, col color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				dst.Set(cx+x, cy+y, col)
			}
		}
	}
}
