package deck

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// Deck supplies the slide artwork the preview renderer composites behind
// the motif. Implementations index slides from zero.
type Deck interface {
	SlideCount() int
	Dimensions(index int) (width, height float64, err error)
	RenderSlide(index int, dpi int) (image.Image, error)
	Close() error
}

// FitzDeck treats each page of a PDF document as one slide.
type FitzDeck struct {
	doc  *fitz.Document
	path string
}

func NewFitzDeck(path string) (*FitzDeck, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzDeck{doc: doc, path: path}, nil
}

func (d *FitzDeck) SlideCount() int {
	return d.doc.NumPage()
}

func (d *FitzDeck) Dimensions(index int) (float64, float64, error) {
	rect, err := d.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (d *FitzDeck) RenderSlide(index int, dpi int) (image.Image, error) {
	// fitz documents are not safe for concurrent page rendering; open a
	// short-lived handle per call so the prerender pool can fan out.
	workerDoc, err := fitz.New(d.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (d *FitzDeck) Close() error {
	return d.doc.Close()
}
