package menu

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/menupix/menupix/internal/models"
)

// Ordered candidate keys for each MenuItem field; first non-empty wins.
var (
	nameKeys        = []string{"name", "title", "item", "dish"}
	descriptionKeys = []string{"description", "details"}
	priceKeys       = []string{"price", "cost"}
)

// priceRanges normalizes en-dash and mis-encoded en-dash sequences to a
// plain hyphen so "$2.90–$4.95" always renders the same way downstream.
var priceRanges = strings.NewReplacer("â€“", "-", "–", "-")

const parseExcerptLen = 500

// Normalize parses the extractor's raw text into a canonical MenuDocument.
// Missing weekdays are warned about and skipped; a weekday that is present
// but not an object is fatal; individual malformed entries are dropped.
func Normalize(raw string) (*models.MenuDocument, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, &models.ParseError{Excerpt: excerpt(raw, parseExcerptLen), Err: err}
	}

	doc := models.NewMenuDocument()
	for key, value := range top {
		if key == models.GeneratedKey {
			var meta models.RunMetadata
			if err := json.Unmarshal(value, &meta); err != nil {
				log.Warn("ignoring unreadable run metadata", "error", err)
				continue
			}
			doc.Generated = &meta
			continue
		}
		if !models.IsWeekday(key) {
			doc.Extra[key] = value
		}
	}

	for _, day := range models.Weekdays {
		rawDay, ok := top[day]
		if !ok {
			log.Warn("menu is missing a weekday", "day", day)
			continue
		}
		var entries map[string]json.RawMessage
		// a JSON null leaves the map nil without an unmarshal error
		if err := json.Unmarshal(rawDay, &entries); err != nil || entries == nil {
			return nil, &models.SchemaError{Day: day}
		}
		dayMenu := models.DayMenu{}
		for category, entry := range entries {
			var value any
			if err := json.Unmarshal(entry, &value); err != nil {
				log.Warn("dropping unreadable entry", "day", day, "category", category)
				continue
			}
			item, ok := coerceItem(value)
			if !ok {
				log.Warn("dropping malformed entry", "day", day, "category", category)
				continue
			}
			dayMenu[category] = item
		}
		doc.Days[day] = dayMenu
	}

	return doc, nil
}

// coerceItem turns one loosely-typed extractor entry into a MenuItem.
// Accepted source shapes: an object with alternate key names, a plain
// string (the whole string is the name), or a list of strings joined with
// ", ". Anything else, or an empty resolved name, is a drop signal.
func coerceItem(value any) (*models.MenuItem, bool) {
	switch entry := value.(type) {
	case map[string]any:
		name := firstString(entry, nameKeys...)
		if name == "" {
			return nil, false
		}
		price := firstString(entry, priceKeys...)
		if price == "" {
			price = models.DefaultPrice
		}
		item := &models.MenuItem{
			Name:        name,
			Description: firstString(entry, descriptionKeys...),
			Price:       NormalizePrice(price),
		}
		if url, ok := entry["imageUrl"].(string); ok {
			item.ImageURL = strings.TrimSpace(url)
		}
		return item, true
	case string:
		name := strings.TrimSpace(entry)
		if name == "" {
			return nil, false
		}
		return &models.MenuItem{Name: name, Price: models.DefaultPrice}, true
	case []any:
		var parts []string
		for _, elem := range entry {
			s, ok := elem.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return nil, false
		}
		return &models.MenuItem{Name: strings.Join(parts, ", "), Price: models.DefaultPrice}, true
	default:
		return nil, false
	}
}

// NormalizePrice replaces en-dash range separators (and their common
// mis-encoding) with a plain hyphen. Idempotent.
func NormalizePrice(price string) string {
	return priceRanges.Replace(strings.TrimSpace(price))
}

func firstString(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := entry[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// cut on a rune boundary
	for i := n; i > 0; i-- {
		if (s[i] & 0xC0) != 0x80 {
			return s[:i]
		}
	}
	return ""
}
