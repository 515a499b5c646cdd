package factories

import (
	"fmt"
	"strings"

	"github.com/jaswdr/faker"

	"github.com/menupix/menupix/internal/models"
)

var fake = faker.New()

// CreateMenuItem builds a plausible menu item for tests.
func CreateMenuItem() *models.MenuItem {
	return &models.MenuItem{
		Name:        strings.TrimSuffix(fake.Lorem().Sentence(3), "."),
		Description: fake.Lorem().Sentence(8),
		Price:       fmt.Sprintf("$%.2f", fake.Float64(2, 5, 30)),
	}
}

// CreateDayMenu builds a day with one item per given category.
func CreateDayMenu(categories ...string) models.DayMenu {
	dayMenu := models.DayMenu{}
	for _, category := range categories {
		dayMenu[category] = CreateMenuItem()
	}
	return dayMenu
}

// CreateMenuDocument builds a full week with every priority category plus
// a soup station each day.
func CreateMenuDocument() *models.MenuDocument {
	doc := models.NewMenuDocument()
	for _, day := range models.Weekdays {
		categories := append([]string{"Soup"}, models.DefaultPriorityCategories...)
		doc.Days[day] = CreateDayMenu(categories...)
	}
	return doc
}
