package artwork

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/charmbracelet/log"

	"github.com/menupix/menupix/internal/assets"
	"github.com/menupix/menupix/internal/models"
)

// Synthesizer produces one PNG per highlight and records its path on the
// item. A nil generator means procedural rendering only.
type Synthesizer struct {
	gen   Generator
	store assets.Store
	log   *log.Logger
}

func NewSynthesizer(gen Generator, store assets.Store) *Synthesizer {
	return &Synthesizer{
		gen:   gen,
		store: store,
		log:   log.Default().With("component", "synthesizer"),
	}
}

// Illustrate writes a PNG for the item at relPath (slash-separated,
// relative to the project root) and sets the item's imageUrl. A failed
// external generation is never fatal for the item: the locally rendered
// placeholder takes its place so the run always completes.
func (s *Synthesizer) Illustrate(ctx context.Context, category string, item *models.MenuItem, relPath string) error {
	data, err := s.generate(ctx, category, item)
	if err != nil {
		s.log.Warn("image generation failed, rendering placeholder",
			"item", item.Name, "category", category, "error", err)
		data, err = Render(category, item)
		if err != nil {
			return err
		}
	}
	if err := s.store.Put(relPath, data); err != nil {
		return err
	}
	item.ImageURL = relPath
	return nil
}

func (s *Synthesizer) generate(ctx context.Context, category string, item *models.MenuItem) ([]byte, error) {
	if s.gen == nil {
		return Render(category, item)
	}
	raw, err := s.gen.Generate(ctx, BuildPrompt(category, item))
	if err != nil {
		return nil, err
	}
	return toPNG(raw)
}

// toPNG re-encodes whatever the service returned so the asset store only
// ever holds PNG bytes.
func toPNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
