package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// MenuItem is a single dish within a day's category. ImageURL is set once
// by the image synthesizer and uses forward slashes on every platform.
type MenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// DayMenu maps a category name ("Carving", "Soup", ...) to its item.
type DayMenu map[string]*MenuItem

// DailyHighlight records which category represented a weekday and where
// its generated image lives.
type DailyHighlight struct {
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

// RunMetadata is rebuilt from scratch on every run and stored under the
// reserved "_generated" top-level key.
type RunMetadata struct {
	UpdatedAt        string                    `json:"updatedAt"`
	PriorityOrder    []string                  `json:"priorityOrder"`
	DailyHighlights  map[string]DailyHighlight `json:"dailyHighlights"`
	WeeklyHighlights map[string]string         `json:"weeklyHighlights"`
}

// MenuDocument is the single aggregate passed through the pipeline.
// Only the five weekday keys are meaningful; unknown top-level keys are
// carried in Extra and written back untouched.
type MenuDocument struct {
	Days      map[string]DayMenu
	Extra     map[string]json.RawMessage
	Generated *RunMetadata
}

func NewMenuDocument() *MenuDocument {
	return &MenuDocument{
		Days:  make(map[string]DayMenu),
		Extra: make(map[string]json.RawMessage),
	}
}

// MarshalJSON writes weekdays in Monday..Friday order, then any unknown
// keys (sorted), with "_generated" last.
func (d *MenuDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeField := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := marshalNoEscape(key)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalNoEscape(value)
		if err != nil {
			return err
		}
		buf.Write(vb)
		return nil
	}
	for _, day := range Weekdays {
		if dm, ok := d.Days[day]; ok {
			if err := writeField(day, dm); err != nil {
				return nil, err
			}
		}
	}
	extras := make([]string, 0, len(d.Extra))
	for k := range d.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		if err := writeField(k, d.Extra[k]); err != nil {
			return nil, err
		}
	}
	if d.Generated != nil {
		if err := writeField(GeneratedKey, d.Generated); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape marshals without HTML escaping so dish names like
// "Mac & Cheese" survive the round trip verbatim.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
