package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menupix/menupix/internal/artwork"
	"github.com/menupix/menupix/internal/assets"
	"github.com/menupix/menupix/internal/models"
	"github.com/menupix/menupix/internal/output"
)

// a Monday during ISO week 34 of 2026
var fixedNow = time.Date(2026, time.August, 17, 12, 0, 0, 0, time.UTC)

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) ([]byte, error) {
	return nil, &models.UpstreamError{Service: "image model", Status: 500, Message: "boom"}
}

func writeInputDocument(t *testing.T, doc *models.MenuDocument) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, output.Write(path, doc))
	return path
}

func TestRunReuseAndSkipImagesOnlyTouchesUpdatedAt(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Monday"] = models.DayMenu{
		"Carving": {Name: "Roast Beef", Description: "au jus", Price: "$9.95", ImageURL: "assets/menu/2026-w33-monday-carving.png"},
		"Soup":    {Name: "Chowder", Price: "$4.25"},
	}
	doc.Generated = &models.RunMetadata{
		UpdatedAt:     "2026-08-10T09:00:00Z",
		PriorityOrder: models.DefaultPriorityCategories,
		DailyHighlights: map[string]models.DailyHighlight{
			"Monday": {Category: "Carving", ImageURL: "assets/menu/2026-w33-monday-carving.png"},
		},
		WeeklyHighlights: map[string]string{
			"Carving": "assets/menu/2026-w33-carving.png",
		},
	}
	menuFile := writeInputDocument(t, doc)

	cfg := &models.Config{
		MenuFile:           menuFile,
		SkipExtract:        true,
		SkipImages:         true,
		PriorityCategories: models.DefaultPriorityCategories,
	}
	p, err := New(cfg)
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow }

	require.NoError(t, p.Run(context.Background()))

	// the expected output is the input with only updatedAt advanced
	doc.Generated.UpdatedAt = fixedNow.Format(time.RFC3339)
	expected, err := output.Marshal(doc)
	require.NoError(t, err)

	got, err := os.ReadFile(menuFile)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(got))
}

func TestRunFallsBackToSoupAndPlaceholder(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Monday"] = models.DayMenu{"Soup": {Name: "Chowder", Price: "$4.25"}}
	menuFile := writeInputDocument(t, doc)
	assetsRoot := t.TempDir()

	cfg := &models.Config{
		MenuFile:           menuFile,
		AssetsDir:          filepath.Join(assetsRoot, "assets", "menu"),
		SkipExtract:        true,
		PriorityCategories: models.DefaultPriorityCategories,
	}
	t.Setenv("MENUPIX_IMAGE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	p, err := New(cfg)
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow }
	// simulate an upstream failure on every generation attempt
	p.synth = artwork.NewSynthesizer(failingGenerator{}, assets.NewLocalStore(""))

	require.NoError(t, p.Run(context.Background()))

	// no priority category exists on Monday, so Soup is the fallback
	imagePath := filepath.Join(assetsRoot, "assets", "menu", "2026-w34-monday-soup.png")
	data, err := os.ReadFile(imagePath)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "placeholder must be a valid PNG")

	written, err := os.ReadFile(menuFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), "2026-w34-monday-soup.png")
	assert.Contains(t, string(written), `"category": "Soup"`)
}

func TestRunTodayOnlyGeneratesSingleDailyImage(t *testing.T) {
	doc := models.NewMenuDocument()
	for _, day := range models.Weekdays {
		doc.Days[day] = models.DayMenu{"Carving": {Name: "Roast Beef", Price: "$9.95"}}
	}
	menuFile := writeInputDocument(t, doc)
	assetsRoot := t.TempDir()

	cfg := &models.Config{
		MenuFile:           menuFile,
		AssetsDir:          filepath.Join(assetsRoot, "img"),
		SkipExtract:        true,
		TodayOnly:          true,
		PriorityCategories: models.DefaultPriorityCategories,
	}
	t.Setenv("MENUPIX_IMAGE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	p, err := New(cfg)
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow } // a Monday

	require.NoError(t, p.Run(context.Background()))

	entries, err := os.ReadDir(filepath.Join(assetsRoot, "img"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-w34-monday-carving.png", entries[0].Name())
}

func TestRunSkipImagesWithoutPriorMetadataRecordsSelections(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Tuesday"] = models.DayMenu{"Plant Power": {Name: "Harvest Bowl", Price: "$8.50"}}
	menuFile := writeInputDocument(t, doc)

	cfg := &models.Config{
		MenuFile:           menuFile,
		SkipExtract:        true,
		SkipImages:         true,
		PriorityCategories: models.DefaultPriorityCategories,
	}
	p, err := New(cfg)
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow }

	require.NoError(t, p.Run(context.Background()))

	written, err := os.ReadFile(menuFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), `"category": "Plant Power"`)
}
