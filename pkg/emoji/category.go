package emoji

// Recents is the synthetic category listing previously used entries.
const Recents = "recents"

// Category is a browsable grouping of entries.
type Category struct {
	ID    string
	Title string
	Icon  string
}

// DefaultCategories is the category bar in display order.
func DefaultCategories() []Category {
	return []Category{
		{ID: Recents, Title: "Recently used", Icon: "🕘"},
		{ID: "smileys-emotion", Title: "Smileys & Emotion", Icon: "😀"},
		{ID: "people-body", Title: "People & Body", Icon: "👋"},
		{ID: "animals-nature", Title: "Animals & Nature", Icon: "🐻"},
		{ID: "food-drink", Title: "Food & Drink", Icon: "🍔"},
		{ID: "travel-places", Title: "Travel & Places", Icon: "🚗"},
		{ID: "activities", Title: "Activities", Icon: "⚽"},
		{ID: "objects", Title: "Objects", Icon: "💡"},
		{ID: "symbols", Title: "Symbols", Icon: "🔣"},
		{ID: "flags", Title: "Flags", Icon: "🏁"},
	}
}

// groupIDs maps Unicode group names to category ids.
var groupIDs = map[string]string{
	"Smileys & Emotion": "smileys-emotion",
	"People & Body":     "people-body",
	"Component":         "component",
	"Animals & Nature":  "animals-nature",
	"Food & Drink":      "food-drink",
	"Travel & Places":   "travel-places",
	"Activities":        "activities",
	"Objects":           "objects",
	"Symbols":           "symbols",
	"Flags":             "flags",
}

// GroupID converts a Unicode group name ("Food & Drink") to a category id
// ("food-drink"). Unknown names are returned unchanged.
func GroupID(group string) string {
	if id, ok := groupIDs[group]; ok {
		return id
	}
	return group
}

// CategoryIndex returns the position of id in categories, or -1.
func CategoryIndex(categories []Category, id string) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func groupRank(id string) int {
	for i, c := range DefaultCategories() {
		if c.ID == id {
			return i
		}
	}
	return len(groupIDs)
}

// categoriesFor keeps the default categories that have entries, plus recents.
func categoriesFor(entries []Entry) []Category {
	present := make(map[string]bool)
	for _, e := range entries {
		present[e.Group] = true
	}
	out := make([]Category, 0, len(DefaultCategories()))
	for _, c := range DefaultCategories() {
		if c.ID == Recents || present[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
