package mode7

import (
	"errors"
	"fmt"
)

var ErrInvalidTexture = errors.New("invalid texture")

// Texture is a tightly packed RGBA8 image, row major, origin top left.
type Texture struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewTexture wraps pix. A nil pix allocates a black, opaque texture.
func NewTexture(w, h int, pix []uint8) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidTexture, w, h)
	}
	if pix == nil {
		pix = make([]uint8, w*h*4)
		for i := 3; i < len(pix); i += 4 {
			pix[i] = 255
		}
	}
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrInvalidTexture, w, h, w*h*4, len(pix))
	}
	return &Texture{Width: w, Height: h, Pix: pix}, nil
}

func (t *Texture) At(x, y int) RGB {
	i := (y*t.Width + x) * 4
	return RGB{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2]}
}

func (t *Texture) Set(x, y int, c RGB) {
	i := (y*t.Width + x) * 4
	t.Pix[i] = c.R
	t.Pix[i+1] = c.G
	t.Pix[i+2] = c.B
	t.Pix[i+3] = 255
}

// Fill paints the whole texture with c.
func (t *Texture) Fill(c RGB) {
	for i := 0; i < len(t.Pix); i += 4 {
		t.Pix[i] = c.R
		t.Pix[i+1] = c.G
		t.Pix[i+2] = c.B
		t.Pix[i+3] = 255
	}
}

// Frame is the output buffer handed to the presenter. It shares the
// texture layout so it can be uploaded as is.
type Frame struct {
	Texture
}

func NewFrame(w, h int) (*Frame, error) {
	t, err := NewTexture(w, h, nil)
	if err != nil {
		return nil, err
	}
	return &Frame{Texture: *t}, nil
}
