package domain

import "strings"

// CategoryCount pairs a category with the number of active cards filed under it.
type CategoryCount struct {
	Name        string
	ActiveCards int
}

// FilterCards returns cards whose description or category contains query,
// ignoring case. An empty query matches everything.
func FilterCards(cards []Card, query string) []Card {
	needle := strings.ToLower(query)
	matched := make([]Card, 0, len(cards))
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Description), needle) ||
			strings.Contains(strings.ToLower(c.Category), needle) {
			matched = append(matched, c)
		}
	}
	return matched
}

// SummarizeCategories counts active cards per known category, in category order.
// Cards filed under a category missing from the set are not counted.
func SummarizeCategories(data *AppData) []CategoryCount {
	counts := make(map[string]int, len(data.Categories))
	for _, c := range data.Cards {
		if c.IsActive() {
			counts[c.Category]++
		}
	}
	summary := make([]CategoryCount, 0, len(data.Categories))
	for _, name := range data.Categories {
		summary = append(summary, CategoryCount{Name: name, ActiveCards: counts[name]})
	}
	return summary
}
