package deck

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
)

// ImageDeck serves a sorted folder of images (or a single file) as slides.
type ImageDeck struct {
	paths []string
}

func NewImageDeck(path string) (*ImageDeck, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				ext := filepath.Ext(entry.Name())
				if ext == ".jpg" || ext == ".jpeg" || ext == ".png" {
					paths = append(paths, filepath.Join(path, entry.Name()))
				}
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageDeck{paths: paths}, nil
}

func (d *ImageDeck) SlideCount() int {
	return len(d.paths)
}

func (d *ImageDeck) Dimensions(index int) (float64, float64, error) {
	f, err := os.Open(d.paths[index])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

func (d *ImageDeck) RenderSlide(index int, dpi int) (image.Image, error) {
	f, err := os.Open(d.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (d *ImageDeck) Close() error {
	return nil
}
