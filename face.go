package paraicon

import (
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FaceLoader resolves the face used to measure and draw the text of an icon of the given size.
// It reports false when no face is available.
type FaceLoader func(size int) (font.Face, bool)

// DefaultFaceLoader returns the built-in 7x13 bitmap face.
func DefaultFaceLoader(_ int) (font.Face, bool) {
	return basicfont.Face7x13, true
}

// NoFace never provides a face. Text placement then uses the estimated box.
func NoFace(_ int) (font.Face, bool) {
	return nil, false
}

// textBox is the bounding box of the text relative to the drawing dot.
type textBox struct {
	min image.Point
	max image.Point
}

func (b textBox) width() int  { return b.max.X - b.min.X }
func (b textBox) height() int { return b.max.Y - b.min.Y }

// measure returns the ink bounds of s drawn with face.
func measure(face font.Face, s string) textBox {
	bounds, _ := font.BoundString(face, s)
	return textBox{
		min: image.Pt(bounds.Min.X.Floor(), bounds.Min.Y.Floor()),
		max: image.Pt(bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()),
	}
}

// estimate approximates the box of s when no face is available: each character is half of an
// eighth of the icon wide, and the line is an eighth of the icon tall.
func estimate(s string, size int) textBox {
	fontSize := size / 8
	return textBox{
		max: image.Pt(utf8.RuneCountInString(s)*fontSize/2, fontSize),
	}
}

// dot returns the drawing origin that puts the top-left corner of box at (x, y).
func (b textBox) dot(x, y int) fixed.Point26_6 {
	return fixed.P(x-b.min.X, y-b.min.Y)
}
