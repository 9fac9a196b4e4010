package render

import (
	"image"
	"image/color"
)

// rgba8 converts c to premultiplied 8-bit components.
func rgba8(c color.Color) [4]byte {
	if c == nil {
		return [4]byte{}
	}
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// fillRGBA writes px into every pixel of rect, which must lie inside img.
func fillRGBA(img *image.RGBA, rect image.Rectangle, px [4]byte) {
	if rect.Empty() {
		return
	}
	rowLen := rect.Dx() * 4
	first := img.PixOffset(rect.Min.X, rect.Min.Y)
	row := img.Pix[first : first+rowLen]
	for i := 0; i < rowLen; i += 4 {
		copy(row[i:i+4], px[:])
	}
	for y := rect.Min.Y + 1; y < rect.Max.Y; y++ {
		off := img.PixOffset(rect.Min.X, y)
		copy(img.Pix[off:off+rowLen], row)
	}
}
