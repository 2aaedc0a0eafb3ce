//go:build !android

package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"mode7racer/internal/mode7"
)

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Presenter streams software frames into a texture and scales it to the
// framebuffer, letterboxed to keep the aspect ratio.
type Presenter struct {
	prog uint32
	vao  uint32
	vbo  uint32
	tex  uint32

	uFrame int32

	texW, texH int
}

func NewPresenter() (*Presenter, error) {
	prog, err := linkProgram(frameVertSrc, frameFragSrc)
	if err != nil {
		return nil, fmt.Errorf("frame program: %w", err)
	}
	p := &Presenter{prog: prog}

	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(prog)
	p.uFrame = gl.GetUniformLocation(prog, gl.Str("uFrame\x00"))
	gl.Uniform1i(p.uFrame, 0)

	gl.GenTextures(1, &p.tex)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.BindVertexArray(0)
	return p, nil
}

// Upload copies f into the texture, reallocating it when the size changes.
func (p *Presenter) Upload(f *mode7.Frame) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	if f.Width != p.texW || f.Height != p.texH {
		gl.TexImage2D(
			gl.TEXTURE_2D, 0, gl.RGBA8,
			int32(f.Width), int32(f.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix),
		)
		p.texW, p.texH = f.Width, f.Height
		return
	}
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		int32(f.Width), int32(f.Height),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix),
	)
}

// Draw clears the framebuffer and draws the last uploaded frame.
func (p *Presenter) Draw(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if p.texW == 0 || p.texH == 0 {
		return
	}

	x, y, w, h := letterbox(fbW, fbH, p.texW, p.texH)
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))

	gl.UseProgram(p.prog)
	gl.BindVertexArray(p.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (p *Presenter) Destroy() {
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.tex != 0 {
		gl.DeleteTextures(1, &p.tex)
	}
	if p.prog != 0 {
		gl.DeleteProgram(p.prog)
	}
}

// letterbox fits a w x h image into the framebuffer, centred.
func letterbox(fbW, fbH, w, h int) (x, y, vw, vh int) {
	sx := float64(fbW) / float64(w)
	sy := float64(fbH) / float64(h)
	s := min(sx, sy)
	vw = int(float64(w) * s)
	vh = int(float64(h) * s)
	return (fbW - vw) / 2, (fbH - vh) / 2, vw, vh
}
