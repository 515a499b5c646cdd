package artwork

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/menupix/menupix/internal/models"
)

// Fixed keyword sets used to decompose a dish into prompt slots. The
// first token matching a set wins that slot; everything else that is not
// a stopword becomes an ingredient.
var (
	baseKeywords = map[string]bool{
		"rice": true, "noodle": true, "noodles": true, "pasta": true,
		"crust": true, "flatbread": true, "quinoa": true,
		"potato": true, "potatoes": true,
	}
	sauceKeywords = map[string]bool{
		"sauce": true, "aioli": true, "pesto": true, "gravy": true,
		"chimichurri": true, "marinara": true, "curry": true, "dressing": true,
	}
	stopwords = map[string]bool{
		"a": true, "an": true, "the": true, "and": true, "or": true,
		"with": true, "of": true, "on": true, "in": true, "to": true,
		"served": true, "side": true, "choice": true, "your": true,
		"over": true, "topped": true,
	}
)

// DishProfile is a dish decomposed into the slots of the photography
// prompt template.
type DishProfile struct {
	Ingredients []string
	Base        string
	Sauce       string
}

// DecomposeDish tokenizes the item's name and description and assigns
// each token to the base slot, the sauce slot, or the ingredient list.
func DecomposeDish(name, description string) DishProfile {
	var profile DishProfile
	seen := map[string]bool{}
	for _, token := range tokenize(name + " " + description) {
		switch {
		case stopwords[token] || seen[token]:
		case profile.Base == "" && baseKeywords[token]:
			profile.Base = token
		case profile.Sauce == "" && sauceKeywords[token]:
			profile.Sauce = token
		default:
			profile.Ingredients = append(profile.Ingredients, token)
		}
		seen[token] = true
	}
	return profile
}

// BuildPrompt fills the fixed photography-style template from the dish's
// decomposed slots.
func BuildPrompt(category string, item *models.MenuItem) string {
	profile := DecomposeDish(item.Name, item.Description)

	var b strings.Builder
	fmt.Fprintf(&b, "Professional food photography of %s", item.Name)
	if category != "" {
		fmt.Fprintf(&b, ", from the %s station", strings.ToLower(category))
	}
	if len(profile.Ingredients) > 0 {
		fmt.Fprintf(&b, ", featuring %s", strings.Join(profile.Ingredients, ", "))
	}
	if profile.Base != "" {
		fmt.Fprintf(&b, ", served over %s", profile.Base)
	}
	if profile.Sauce != "" {
		fmt.Fprintf(&b, ", finished with %s", profile.Sauce)
	}
	b.WriteString(". Overhead shot on a rustic wooden table, soft natural light, " +
		"shallow depth of field, appetizing, 4:3 aspect ratio, no text or labels.")
	return b.String()
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
