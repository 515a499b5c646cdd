package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menupix/menupix/internal/factories"
	"github.com/menupix/menupix/internal/models"
)

func TestDailyHighlightsPreferPriorityOrder(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Monday"] = factories.CreateDayMenu("Action", "Plant Power", "Carving", "Soup")

	for i := 0; i < 5; i++ {
		picks := DailyHighlights(doc, models.DefaultPriorityCategories)
		require.Len(t, picks, 1)
		assert.Equal(t, "Monday", picks[0].Day)
		assert.Equal(t, "Carving", picks[0].Category)
	}
}

func TestDailyHighlightsMatchCaseInsensitively(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Tuesday"] = factories.CreateDayMenu("CARVING")

	picks := DailyHighlights(doc, models.DefaultPriorityCategories)
	require.Len(t, picks, 1)
	assert.Equal(t, "CARVING", picks[0].Category)
}

func TestDailyHighlightsFallBackToFirstCategory(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Monday"] = factories.CreateDayMenu("Soup")

	picks := DailyHighlights(doc, models.DefaultPriorityCategories)
	require.Len(t, picks, 1)
	assert.Equal(t, "Soup", picks[0].Category)
}

func TestDailyHighlightsSkipEmptyDays(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Monday"] = models.DayMenu{}
	doc.Days["Friday"] = factories.CreateDayMenu("Deli")

	picks := DailyHighlights(doc, models.DefaultPriorityCategories)
	require.Len(t, picks, 1)
	assert.Equal(t, "Friday", picks[0].Day)
}

func TestWeeklyHighlightsScanMondayFirst(t *testing.T) {
	doc := models.NewMenuDocument()
	doc.Days["Wednesday"] = factories.CreateDayMenu("Carving")
	doc.Days["Friday"] = factories.CreateDayMenu("Carving")

	picks := WeeklyHighlights(doc, models.DefaultPriorityCategories)
	require.Len(t, picks, 1)
	assert.Equal(t, "Carving", picks[0].Category)
	assert.Equal(t, "Wednesday", picks[0].Day)
	assert.Same(t, doc.Days["Wednesday"]["Carving"], picks[0].Item)
}

func TestWeeklyHighlightsOmitAbsentCategories(t *testing.T) {
	doc := models.NewMenuDocument()
	for _, day := range models.Weekdays {
		doc.Days[day] = factories.CreateDayMenu("Soup")
	}

	picks := WeeklyHighlights(doc, models.DefaultPriorityCategories)
	assert.Empty(t, picks)
}

func TestWeeklyHighlightsFollowPriorityOrder(t *testing.T) {
	doc := factories.CreateMenuDocument()

	picks := WeeklyHighlights(doc, models.DefaultPriorityCategories)
	require.Len(t, picks, len(models.DefaultPriorityCategories))
	for i, priority := range models.DefaultPriorityCategories {
		assert.Equal(t, priority, picks[i].Category)
		assert.Equal(t, "Monday", picks[i].Day)
	}
}
