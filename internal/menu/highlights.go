package menu

import (
	"sort"
	"strings"

	"github.com/menupix/menupix/internal/models"
)

// DayPick is the single item chosen to represent one weekday.
type DayPick struct {
	Day      string
	Category string
	Item     *models.MenuItem
}

// WeekPick is the single item chosen to represent a priority category
// across the whole week.
type WeekPick struct {
	Category string
	Day      string
	Item     *models.MenuItem
}

// DailyHighlights picks one representative item per weekday: the first
// priority category present on that day wins; if none is present, the
// first category in sorted order is used. Days with no categories are
// skipped. Pure and deterministic.
func DailyHighlights(doc *models.MenuDocument, priorities []string) []DayPick {
	var picks []DayPick
	for _, day := range models.Weekdays {
		dayMenu := doc.Days[day]
		if len(dayMenu) == 0 {
			continue
		}
		category, item := pickFromDay(dayMenu, priorities)
		if item == nil {
			continue
		}
		picks = append(picks, DayPick{Day: day, Category: category, Item: item})
	}
	return picks
}

// WeeklyHighlights picks, for each priority category in order, the first
// matching item scanning Monday through Friday. Categories with no match
// anywhere in the week are omitted.
func WeeklyHighlights(doc *models.MenuDocument, priorities []string) []WeekPick {
	var picks []WeekPick
	for _, priority := range priorities {
		pick, ok := findInWeek(doc, priority)
		if !ok {
			continue
		}
		picks = append(picks, pick)
	}
	return picks
}

func pickFromDay(dayMenu models.DayMenu, priorities []string) (string, *models.MenuItem) {
	categories := sortedCategories(dayMenu)
	for _, priority := range priorities {
		for _, category := range categories {
			if strings.EqualFold(category, priority) && wellFormed(dayMenu[category]) {
				return category, dayMenu[category]
			}
		}
	}
	for _, category := range categories {
		if wellFormed(dayMenu[category]) {
			return category, dayMenu[category]
		}
	}
	return "", nil
}

func findInWeek(doc *models.MenuDocument, priority string) (WeekPick, bool) {
	for _, day := range models.Weekdays {
		dayMenu := doc.Days[day]
		for _, category := range sortedCategories(dayMenu) {
			if strings.EqualFold(category, priority) && wellFormed(dayMenu[category]) {
				return WeekPick{Category: category, Day: day, Item: dayMenu[category]}, true
			}
		}
	}
	return WeekPick{}, false
}

func sortedCategories(dayMenu models.DayMenu) []string {
	categories := make([]string, 0, len(dayMenu))
	for category := range dayMenu {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func wellFormed(item *models.MenuItem) bool {
	return item != nil && item.Name != ""
}
