package menu

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// Slugify lowercases and collapses runs of non-alphanumeric characters to
// single hyphens for use in asset filenames. An empty result becomes the
// literal "item" so a filename is always produced.
func Slugify(s string) string {
	out := slug.Make(s)
	if out == "" {
		return "item"
	}
	return out
}

// WeekKey namespaces generated asset filenames by ISO year and week so
// reruns within the same week overwrite rather than accumulate.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-w%02d", year, week)
}
