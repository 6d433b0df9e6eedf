package view

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ivlev/scrollwave/internal/easing"
	"github.com/ivlev/scrollwave/internal/motif"
)

// CanvasOptions controls how a Canvas rasterizes its elements.
type CanvasOptions struct {
	Width, Height int
	Variant       string // motif variant: picks disc vs panel rendering
	Background    color.RGBA
	BarColor      color.RGBA
	WaveColors    []color.RGBA // cycled across motif elements
	ElementSize   int          // base disc diameter in pixels
}

// DefaultCanvasOptions returns rendering options for a 1280x720 preview
func DefaultCanvasOptions() CanvasOptions {
	return CanvasOptions{
		Width:      1280,
		Height:     720,
		Variant:    motif.VariantWave,
		Background: color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xFF},
		BarColor:   color.RGBA{R: 0xE8, G: 0xB0, B: 0x4B, A: 0xFF},
		WaveColors: []color.RGBA{
			{R: 0x4B, G: 0x8B, B: 0xE8, A: 0xFF},
			{R: 0xE8, G: 0x4B, B: 0x6E, A: 0xFF},
			{R: 0x4B, G: 0xE8, B: 0x9B, A: 0xFF},
			{R: 0xE8, G: 0xD5, B: 0x4B, A: 0xFF},
			{R: 0xB0, G: 0x6E, B: 0xE8, A: 0xFF},
		},
		ElementSize: 96,
	}
}

// canvasElement holds the latest engine write for one drawable.
type canvasElement struct {
	state   motif.ElementState
	visible bool
}

func (e *canvasElement) SetState(st motif.ElementState) { e.state = st }
func (e *canvasElement) SetVisible(visible bool)        { e.visible = visible }

// Canvas is an offscreen View: the engine drives it exactly like a live
// scroll container, and Render composites the current element states into
// an RGBA frame. SetScrollTop echoes a scroll event the way a real
// container fires one for programmatic scrolls.
type Canvas struct {
	bus

	opts   CanvasOptions
	slides []*image.RGBA // pre-scaled to the viewport

	slideElems  []*canvasElement
	motifElems  [][]*canvasElement
	barElem     *canvasElement
	scroll      float64
	slideFrames []image.Rectangle // where each slide image lands in the viewport
}

// NewCanvas builds a canvas over pre-rendered slide images. Each slide is
// scaled once to fit the viewport; transitionElems gives the motif element
// count per transition (len(slides)-1 transitions).
func NewCanvas(opts CanvasOptions, slides []image.Image, elementsPerTransition int) *Canvas {
	c := &Canvas{
		opts:    opts,
		barElem: &canvasElement{},
	}

	for _, src := range slides {
		scaled, frame := scaleToViewport(src, opts.Width, opts.Height)
		c.slides = append(c.slides, scaled)
		c.slideFrames = append(c.slideFrames, frame)
		c.slideElems = append(c.slideElems, &canvasElement{})
	}

	for i := 0; i < len(slides)-1; i++ {
		row := make([]*canvasElement, elementsPerTransition)
		for j := range row {
			row[j] = &canvasElement{}
		}
		c.motifElems = append(c.motifElems, row)
	}

	return c
}

func (c *Canvas) Slides() []Element {
	out := make([]Element, len(c.slideElems))
	for i, e := range c.slideElems {
		out[i] = e
	}
	return out
}

func (c *Canvas) TransitionElements() [][]Element {
	out := make([][]Element, len(c.motifElems))
	for i, row := range c.motifElems {
		elems := make([]Element, len(row))
		for j, e := range row {
			elems[j] = e
		}
		out[i] = elems
	}
	return out
}

func (c *Canvas) ProgressBar() Element { return c.barElem }

func (c *Canvas) ScrollTop() float64 { return c.scroll }

func (c *Canvas) SetScrollTop(offset float64) {
	max := MaxScroll(c)
	if offset < 0 {
		offset = 0
	}
	if offset > max {
		offset = max
	}
	c.scroll = offset
	c.Dispatch(Event{Kind: EventScroll})
}

func (c *Canvas) ViewportHeight() float64 { return float64(c.opts.Height) }

// ContentHeight stacks one viewport of scroll room per slide, so overall
// progress maps linearly onto the transition sequence.
func (c *Canvas) ContentHeight() float64 {
	return float64(c.opts.Height * len(c.slides))
}

// Render composites the current engine state into dst, which must be
// opts.Width x opts.Height.
func (c *Canvas) Render(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c.opts.Background), image.Point{}, draw.Src)

	for i, img := range c.slides {
		el := c.slideElems[i]
		if !el.visible || el.state.Opacity <= 0 {
			continue
		}
		alpha := uint8(easing.Clamp01(el.state.Opacity) * 0xFF)
		draw.DrawMask(dst, c.slideFrames[i], img, img.Bounds().Min,
			image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
	}

	for _, row := range c.motifElems {
		for j, el := range row {
			c.drawMotifElement(dst, el.state, c.opts.WaveColors[j%len(c.opts.WaveColors)])
		}
	}

	c.drawProgressBar(dst)
}

// drawMotifElement places one motif element. Translations are viewport
// fractions measured from the viewport center.
func (c *Canvas) drawMotifElement(dst *image.RGBA, st motif.ElementState, col color.RGBA) {
	if st.Opacity <= 0 || st.Scale <= 0 {
		return
	}
	w, h := float64(c.opts.Width), float64(c.opts.Height)
	cx := w/2 + st.TranslateX*w
	cy := h/2 + st.TranslateY*h

	col.A = uint8(easing.Clamp01(st.Opacity) * 0xFF)

	if c.opts.Variant == motif.VariantWipe {
		// One rigid panel spanning the full viewport height.
		half := w / 2 * st.Scale
		rect := image.Rect(int(cx-half), 0, int(cx+half), c.opts.Height)
		draw.Draw(dst, rect, image.NewUniform(col), image.Point{}, draw.Over)
		return
	}

	r := float64(c.opts.ElementSize) / 2 * st.Scale
	mask := &discMask{cx: cx, cy: cy, r: r}
	draw.DrawMask(dst, mask.Bounds(), image.NewUniform(col), image.Point{},
		mask, mask.Bounds().Min, draw.Over)
}

func (c *Canvas) drawProgressBar(dst *image.RGBA) {
	const barHeight = 6
	frac := easing.Clamp01(c.barElem.state.Scale)
	if frac <= 0 {
		return
	}
	rect := image.Rect(0, c.opts.Height-barHeight, int(float64(c.opts.Width)*frac), c.opts.Height)
	draw.Draw(dst, rect, image.NewUniform(c.opts.BarColor), image.Point{}, draw.Over)
}

// discMask is an antialiasing-free circular alpha mask.
type discMask struct {
	cx, cy, r float64
}

func (m *discMask) ColorModel() color.Model { return color.AlphaModel }

func (m *discMask) Bounds() image.Rectangle {
	return image.Rect(int(m.cx-m.r)-1, int(m.cy-m.r)-1, int(m.cx+m.r)+1, int(m.cy+m.r)+1)
}

func (m *discMask) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - m.cx
	dy := float64(y) + 0.5 - m.cy
	if dx*dx+dy*dy <= m.r*m.r {
		return color.Alpha{A: 0xFF}
	}
	return color.Alpha{}
}

// scaleToViewport fits src into a w x h viewport preserving aspect ratio,
// returning the scaled image and its centered placement rectangle.
func scaleToViewport(src image.Image, w, h int) (*image.RGBA, image.Rectangle) {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), image.Rect(0, 0, 1, 1)
	}

	scale := float64(w) / float64(sb.Dx())
	if s := float64(h) / float64(sb.Dy()); s < scale {
		scale = s
	}
	dw := int(float64(sb.Dx()) * scale)
	dh := int(float64(sb.Dy()) * scale)

	scaled := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, draw.Src, nil)

	frame := image.Rect((w-dw)/2, (h-dh)/2, (w-dw)/2+dw, (h-dh)/2+dh)
	return scaled, frame
}
