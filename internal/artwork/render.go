package artwork

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/menupix/menupix/internal/models"
)

// Canvas dimensions for procedurally rendered placeholder cards (4:3).
const (
	CanvasWidth  = 1024
	CanvasHeight = 768
)

type palette struct {
	top    color.NRGBA
	bottom color.NRGBA
	card   color.NRGBA
	pill   color.NRGBA
	label  color.NRGBA
	title  color.NRGBA
	body   color.NRGBA
}

// Distinct gradient palettes keyed by category; matching is a lowercase
// substring test so "Plant Power" picks the plant palette.
var palettes = map[string]palette{
	"carving": {
		top:    color.NRGBA{0x8C, 0x2F, 0x1F, 0xFF},
		bottom: color.NRGBA{0x4A, 0x15, 0x0D, 0xFF},
		card:   color.NRGBA{0x6B, 0x22, 0x16, 0xFF},
		pill:   color.NRGBA{0xD9, 0x77, 0x42, 0xFF},
		label:  color.NRGBA{0x2E, 0x0D, 0x08, 0xFF},
		title:  color.NRGBA{0xFF, 0xF3, 0xE8, 0xFF},
		body:   color.NRGBA{0xEF, 0xC9, 0xB0, 0xFF},
	},
	"plant": {
		top:    color.NRGBA{0x2F, 0x6B, 0x33, 0xFF},
		bottom: color.NRGBA{0x14, 0x33, 0x18, 0xFF},
		card:   color.NRGBA{0x23, 0x50, 0x27, 0xFF},
		pill:   color.NRGBA{0x9A, 0xD1, 0x6B, 0xFF},
		label:  color.NRGBA{0x10, 0x26, 0x0F, 0xFF},
		title:  color.NRGBA{0xF0, 0xFA, 0xE9, 0xFF},
		body:   color.NRGBA{0xC3, 0xE0, 0xAE, 0xFF},
	},
	"action": {
		top:    color.NRGBA{0xB3, 0x5C, 0x1E, 0xFF},
		bottom: color.NRGBA{0x59, 0x27, 0x0B, 0xFF},
		card:   color.NRGBA{0x8A, 0x44, 0x14, 0xFF},
		pill:   color.NRGBA{0xF2, 0xB1, 0x3D, 0xFF},
		label:  color.NRGBA{0x3D, 0x1D, 0x04, 0xFF},
		title:  color.NRGBA{0xFF, 0xF6, 0xE3, 0xFF},
		body:   color.NRGBA{0xF3, 0xD4, 0xA3, 0xFF},
	},
}

var defaultPalette = palette{
	top:    color.NRGBA{0x3A, 0x4A, 0x6B, 0xFF},
	bottom: color.NRGBA{0x17, 0x1F, 0x33, 0xFF},
	card:   color.NRGBA{0x2B, 0x38, 0x52, 0xFF},
	pill:   color.NRGBA{0x8F, 0xA9, 0xD9, 0xFF},
	label:  color.NRGBA{0x12, 0x19, 0x2B, 0xFF},
	title:  color.NRGBA{0xF2, 0xF5, 0xFC, 0xFF},
	body:   color.NRGBA{0xC2, 0xCD, 0xE3, 0xFF},
}

func paletteFor(category string) palette {
	c := strings.ToLower(category)
	for key, p := range palettes {
		if strings.Contains(c, key) {
			return p
		}
	}
	return defaultPalette
}

var (
	facesOnce sync.Once
	facesErr  error
	titleFace font.Face
	bodyFace  font.Face
	labelFace font.Face
	priceFace font.Face
)

func loadFaces() {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		facesErr = err
		return
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		facesErr = err
		return
	}
	newFace := func(f *sfnt.Font, size float64) font.Face {
		if facesErr != nil {
			return nil
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			facesErr = err
		}
		return face
	}
	titleFace = newFace(bold, 46)
	bodyFace = newFace(regular, 26)
	labelFace = newFace(bold, 22)
	priceFace = newFace(bold, 30)
}

// Render composes a placeholder card for an item: a vertical gradient
// keyed by category, a rounded card, a category pill, and word-wrapped
// title/description/price blocks that truncate rather than overflow.
func Render(category string, item *models.MenuItem) ([]byte, error) {
	facesOnce.Do(loadFaces)
	if facesErr != nil {
		return nil, facesErr
	}

	pal := paletteFor(category)
	img := image.NewNRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))

	for y := 0; y < CanvasHeight; y++ {
		c := lerp(pal.top, pal.bottom, float64(y)/float64(CanvasHeight-1))
		for x := 0; x < CanvasWidth; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	card := image.Rect(64, 96, CanvasWidth-64, CanvasHeight-96)
	fillRounded(img, card, 28, pal.card)

	inset := 48
	boxLeft := card.Min.X + inset
	boxWidth := card.Dx() - 2*inset

	// category pill
	label := strings.ToUpper(category)
	labelWidth := font.MeasureString(labelFace, label).Ceil()
	pill := image.Rect(boxLeft, card.Min.Y+40, boxLeft+labelWidth+48, card.Min.Y+84)
	fillRounded(img, pill, 22, pal.pill)
	drawText(img, labelFace, pal.label, boxLeft+24, card.Min.Y+70, label)

	y := card.Min.Y + 160
	for _, line := range wrap(titleFace, item.Name, boxWidth, 3) {
		drawText(img, titleFace, pal.title, boxLeft, y, line)
		y += 58
	}

	y += 16
	for _, line := range wrap(bodyFace, item.Description, boxWidth, 4) {
		drawText(img, bodyFace, pal.body, boxLeft, y, line)
		y += 36
	}

	if item.Price != "" {
		drawText(img, priceFace, pal.pill, boxLeft, card.Max.Y-48, item.Price)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrap splits text into lines no wider than maxWidth by measured width,
// keeping at most maxLines and dropping the rest. Words wider than the
// box are broken mid-word so nothing escapes it.
func wrap(face font.Face, text string, maxWidth, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := ""
	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}
	for _, word := range words {
		for font.MeasureString(face, word).Ceil() > maxWidth {
			word = breakWord(face, word, maxWidth, &lines, &current)
		}
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if font.MeasureString(face, candidate).Ceil() > maxWidth {
			flush()
			current = word
			continue
		}
		current = candidate
	}
	flush()
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// breakWord emits the widest prefix of word that fits and returns the
// remainder.
func breakWord(face font.Face, word string, maxWidth int, lines *[]string, current *string) string {
	if *current != "" {
		*lines = append(*lines, *current)
		*current = ""
	}
	runes := []rune(word)
	cut := len(runes)
	for cut > 1 && font.MeasureString(face, string(runes[:cut])).Ceil() > maxWidth {
		cut--
	}
	*lines = append(*lines, string(runes[:cut]))
	return string(runes[cut:])
}

func drawText(img *image.NRGBA, face font.Face, col color.NRGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fillRounded(img *image.NRGBA, r image.Rectangle, radius int, col color.NRGBA) {
	rr := radius * radius
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cx, cy := x, y
			if x < r.Min.X+radius {
				cx = r.Min.X + radius
			} else if x >= r.Max.X-radius {
				cx = r.Max.X - radius - 1
			}
			if y < r.Min.Y+radius {
				cy = r.Min.Y + radius
			} else if y >= r.Max.Y-radius {
				cy = r.Max.Y - radius - 1
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rr {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xFF}
}
