package qrlabel

import (
	"fmt"
	"strconv"
	"strings"
)

// remPixels is the pixel value of one rem.
const remPixels = 16

// Length is a dimension: a bare number is pixels, "vw"/"vh" are percent of
// the canvas width/height, "rem" is multiples of 16px. The empty Length
// resolves to zero.
type Length string

// Px returns a pixel-valued Length.
func Px(v float64) Length {
	return Length(strconv.FormatFloat(v, 'f', -1, 64))
}

// Resolve converts the length to pixels against a canvas.
func (l Length) Resolve(canvasW, canvasH float64) (float64, error) {
	s := strings.TrimSpace(string(l))
	if s == "" {
		return 0, nil
	}

	unit := ""
	num := s
	for _, suffix := range []string{"vw", "vh", "rem", "px"} {
		if strings.HasSuffix(s, suffix) {
			unit = suffix
			num = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}

	switch unit {
	case "vw":
		return v / 100 * canvasW, nil
	case "vh":
		return v / 100 * canvasH, nil
	case "rem":
		return v * remPixels, nil
	default:
		return v, nil
	}
}

// Point is a 2D position in Lengths.
type Point struct {
	X Length
	Y Length
}

// Resolve converts the point to pixel coordinates.
func (p Point) Resolve(canvasW, canvasH float64) (float64, float64, error) {
	x, err := p.X.Resolve(canvasW, canvasH)
	if err != nil {
		return 0, 0, err
	}
	y, err := p.Y.Resolve(canvasW, canvasH)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// At builds a Point from pixel coordinates.
func At(x, y float64) Point {
	return Point{X: Px(x), Y: Px(y)}
}

// Margin is CSS shorthand: one value for all sides, two for vertical and
// horizontal, four for top/right/bottom/left.
type Margin []Length

// Resolve returns top, right, bottom, left in pixels.
func (m Margin) Resolve(canvasW, canvasH float64) (top, right, bottom, left float64, err error) {
	vals := make([]float64, len(m))
	for i, l := range m {
		if vals[i], err = l.Resolve(canvasW, canvasH); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	switch len(vals) {
	case 0:
		return 0, 0, 0, 0, nil
	case 1:
		return vals[0], vals[0], vals[0], vals[0], nil
	case 2:
		return vals[0], vals[1], vals[0], vals[1], nil
	case 4:
		return vals[0], vals[1], vals[2], vals[3], nil
	default:
		return 0, 0, 0, 0, fmt.Errorf("margin takes 1, 2 or 4 values, got %d", len(vals))
	}
}
