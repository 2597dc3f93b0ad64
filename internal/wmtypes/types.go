// Package wmtypes holds the small geometric and color value types shared
// across the compositor, the framebuffer renderer and the wire protocol.
package wmtypes

// Dimensions is (width, height).
type Dimensions [2]int

// Point is (x, y) in top-left-origin screen space.
type Point [2]int

// Color is an (r, g, b) triple.
type Color [3]uint8

// PointInside reports whether p lies within [topLeft, topLeft+size] inclusive,
// matching original_source/ming-wm-lib/src/utils.rs's point_inside.
func PointInside(p, topLeft Point, size Dimensions) bool {
	x2, y2 := topLeft[0], topLeft[1]
	x3, y3 := x2+size[0], y2+size[1]
	return p[0] >= x2 && p[1] >= y2 && p[0] <= x3 && p[1] <= y3
}

// Min returns the smaller of a and b.
func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

// ToGrayscale applies the 0.3/0.6/0.1 luminance weighting used throughout the
// renderer for the grayscale post-filter.
func (c Color) ToGrayscale() Color {
	gray := uint8(int(c[0])/10*3 + int(c[1])/10*6 + int(c[2])/10)
	return Color{gray, gray, gray}
}

// Blend computes fg*a/255 + bg*(255-a)/255 per channel in 16-bit intermediate
// arithmetic, per spec.md §4.1's draw_char blend formula.
func Blend(fg, bg Color, a uint8) Color {
	if a == 255 {
		return fg
	}
	if a == 0 {
		return bg
	}
	var out Color
	for i := 0; i < 3; i++ {
		fgv := uint16(fg[i])
		bgv := uint16(bg[i])
		av := uint16(a)
		out[i] = uint8(bgv*(255-av)/255 + fgv*av/255)
	}
	return out
}
