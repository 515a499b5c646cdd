package menu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menupix/menupix/internal/models"
)

func TestNormalizeMissingWeekdaysIsNonFatal(t *testing.T) {
	doc, err := Normalize(`{}`)
	require.NoError(t, err)
	assert.Empty(t, doc.Days)
}

func TestNormalizeEntryShapes(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  *models.MenuItem
	}{
		{
			name:  "object with canonical keys",
			entry: `{"name": "Roast Turkey", "description": "with stuffing", "price": "$9.95"}`,
			want:  &models.MenuItem{Name: "Roast Turkey", Description: "with stuffing", Price: "$9.95"},
		},
		{
			name:  "object with alternate keys",
			entry: `{"title": "Pot Roast", "details": "root vegetables", "cost": "$10.50"}`,
			want:  &models.MenuItem{Name: "Pot Roast", Description: "root vegetables", Price: "$10.50"},
		},
		{
			name:  "object without price gets the default",
			entry: `{"dish": "Lobster Roll"}`,
			want:  &models.MenuItem{Name: "Lobster Roll", Price: "Market Price"},
		},
		{
			name:  "plain string becomes the name",
			entry: `"Clam Chowder"`,
			want:  &models.MenuItem{Name: "Clam Chowder", Price: "Market Price"},
		},
		{
			name:  "list of strings joined with comma",
			entry: `["Minestrone", " Chicken Noodle ", ""]`,
			want:  &models.MenuItem{Name: "Minestrone, Chicken Noodle", Price: "Market Price"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Normalize(`{"Monday": {"Soup": ` + tt.entry + `}}`)
			require.NoError(t, err)
			require.Contains(t, doc.Days["Monday"], "Soup")
			assert.Equal(t, tt.want, doc.Days["Monday"]["Soup"])
		})
	}
}

func TestNormalizeDropsMalformedEntries(t *testing.T) {
	raw := `{"Monday": {
		"Soup": {"name": "Chowder"},
		"Deli": 42,
		"Carving": {"description": "no name here"},
		"Charred": "",
		"Action": [1, 2]
	}}`
	doc, err := Normalize(raw)
	require.NoError(t, err)
	assert.Len(t, doc.Days["Monday"], 1)
	assert.Contains(t, doc.Days["Monday"], "Soup")
}

func TestNormalizePriceRanges(t *testing.T) {
	assert.Equal(t, "$2.90-$4.95", NormalizePrice("$2.90–$4.95"))
	assert.Equal(t, "$2.90-$4.95", NormalizePrice("$2.90â€“$4.95"))
}

func TestNormalizePriceIsIdempotent(t *testing.T) {
	once := NormalizePrice("$2.90–$4.95")
	assert.Equal(t, once, NormalizePrice(once))
}

func TestNormalizeParseErrorCarriesExcerpt(t *testing.T) {
	raw := "Sure! Here is the menu: " + strings.Repeat("x", 1000)
	_, err := Normalize(raw)
	var parseErr *models.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Len(t, parseErr.Excerpt, 500)
	assert.True(t, strings.HasPrefix(parseErr.Excerpt, "Sure!"))
}

func TestNormalizeSchemaErrorForNonObjectDay(t *testing.T) {
	_, err := Normalize(`{"Monday": "just soup"}`)
	var schemaErr *models.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "Monday", schemaErr.Day)
}

func TestNormalizeSchemaErrorForNullDay(t *testing.T) {
	_, err := Normalize(`{"Monday": null}`)
	var schemaErr *models.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "Monday", schemaErr.Day)
}

func TestNormalizePassesThroughUnknownKeysAndMetadata(t *testing.T) {
	raw := `{
		"Monday": {"Soup": {"name": "Chowder"}},
		"notes": {"source": "board photo"},
		"_generated": {
			"updatedAt": "2026-08-17T09:00:00Z",
			"priorityOrder": ["Carving"],
			"dailyHighlights": {"Monday": {"category": "Soup", "imageUrl": "assets/menu/x.png"}},
			"weeklyHighlights": {}
		}
	}`
	doc, err := Normalize(raw)
	require.NoError(t, err)
	assert.Contains(t, doc.Extra, "notes")
	require.NotNil(t, doc.Generated)
	assert.Equal(t, "Soup", doc.Generated.DailyHighlights["Monday"].Category)
}

func TestNormalizePreservesImageURL(t *testing.T) {
	raw := `{"Monday": {"Soup": {"name": "Chowder", "price": "$4.25", "imageUrl": "assets/menu/2026-w34-monday-soup.png"}}}`
	doc, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "assets/menu/2026-w34-monday-soup.png", doc.Days["Monday"]["Soup"].ImageURL)
}
