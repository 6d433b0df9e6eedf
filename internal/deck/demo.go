package deck

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

// demoPalette cycles through the generated demo slides.
var demoPalette = []color.RGBA{
	{R: 0x1b, G: 0x26, B: 0x3b, A: 0xff},
	{R: 0x3e, G: 0x5c, B: 0x76, A: 0xff},
	{R: 0x74, G: 0x8c, B: 0xab, A: 0xff},
	{R: 0x21, G: 0x29, B: 0x2e, A: 0xff},
	{R: 0x4a, G: 0x3f, B: 0x56, A: 0xff},
}

// DemoDeck generates flat-color placeholder slides for tuning transitions
// without real artwork. The last slide carries a QR code pointing at
// linkURL (for example the project page), if one is configured.
type DemoDeck struct {
	count   int
	width   int
	height  int
	linkURL string
}

func NewDemoDeck(count, width, height int, linkURL string) *DemoDeck {
	if count < 1 {
		count = 1
	}
	return &DemoDeck{count: count, width: width, height: height, linkURL: linkURL}
}

func (d *DemoDeck) SlideCount() int {
	return d.count
}

func (d *DemoDeck) Dimensions(index int) (float64, float64, error) {
	return float64(d.width), float64(d.height), nil
}

func (d *DemoDeck) RenderSlide(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= d.count {
		return nil, fmt.Errorf("demo slide %d out of range [0,%d)", index, d.count)
	}

	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	bg := demoPalette[index%len(demoPalette)]
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	// A centered lighter panel marks where real slide text would sit.
	panel := image.Rect(d.width/6, d.height/3, d.width*5/6, d.height*2/3)
	panelColor := color.RGBA{
		R: lighten(bg.R), G: lighten(bg.G), B: lighten(bg.B), A: 0xff,
	}
	draw.Draw(img, panel, &image.Uniform{C: panelColor}, image.Point{}, draw.Src)

	if index == d.count-1 && d.linkURL != "" {
		if err := d.drawQR(img); err != nil {
			return nil, fmt.Errorf("demo deck QR slide: %w", err)
		}
	}

	return img, nil
}

// drawQR stamps the link QR code into the lower-right corner of the final
// slide.
func (d *DemoDeck) drawQR(dst *image.RGBA) error {
	size := d.height / 4
	if size < 64 {
		size = 64
	}
	qr, err := qrcode.New(d.linkURL, qrcode.Medium)
	if err != nil {
		return err
	}
	qrImg := qr.Image(size)

	margin := d.height / 20
	bounds := qrImg.Bounds()
	target := image.Rect(
		d.width-bounds.Dx()-margin,
		d.height-bounds.Dy()-margin,
		d.width-margin,
		d.height-margin,
	)
	draw.Draw(dst, target, qrImg, bounds.Min, draw.Over)
	return nil
}

func (d *DemoDeck) Close() error {
	return nil
}

func lighten(c uint8) uint8 {
	v := int(c) + 70
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
