package models

// GeneratedKey is the reserved top-level key that carries run metadata.
const GeneratedKey = "_generated"

// DefaultPrice is used when the menu board shows no price for an item.
const DefaultPrice = "Market Price"

// Weekdays is the fixed set of meaningful top-level keys, in scan order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DefaultPriorityCategories orders the categories favoured when a single
// item has to represent a day or the week: carved entrees first, then
// flatbreads, vegetarian, build-your-own stations.
var DefaultPriorityCategories = []string{"Carving", "Charred", "Plant Power", "Action"}

// IsWeekday reports whether key is one of the five required weekday names.
func IsWeekday(key string) bool {
	for _, day := range Weekdays {
		if key == day {
			return true
		}
	}
	return false
}
