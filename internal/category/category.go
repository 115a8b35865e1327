// Package category maps raw calendar color tags onto life categories.
package category

// DefaultTag is what an event without an explicit color resolves to.
const DefaultTag = "0"

// Mapping is an immutable tag-to-category table. Construct it once and
// inject it wherever classification happens; the zero value is unusable.
type Mapping struct {
	byTag  map[string]string
	colors map[string]string
	names  []string // deduplicated category names, stable order
}

// New builds a Mapping from a tag->category table and an optional
// category->hex-color table. Category order follows the tags slice so that
// repeated calls produce identical Categories() output.
func New(tags map[string]string, colors map[string]string, tagOrder []string) Mapping {
	byTag := make(map[string]string, len(tags))
	for k, v := range tags {
		byTag[k] = v
	}

	seen := make(map[string]bool, len(tags))
	var names []string
	for _, tag := range tagOrder {
		cat, ok := byTag[tag]
		if !ok || seen[cat] {
			continue
		}
		seen[cat] = true
		names = append(names, cat)
	}

	c := make(map[string]string, len(colors))
	for k, v := range colors {
		c[k] = v
	}

	return Mapping{byTag: byTag, colors: c, names: names}
}

// Classify resolves a raw color tag to its category. An empty tag falls back
// to DefaultTag. The second return is false for tags absent from the table.
func (m Mapping) Classify(tag string) (string, bool) {
	if tag == "" {
		tag = DefaultTag
	}
	cat, ok := m.byTag[tag]
	return cat, ok
}

// Categories returns the distinct category names in a stable order.
func (m Mapping) Categories() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Color returns the display hex color for a category, or a neutral gray
// for categories without one.
func (m Mapping) Color(category string) string {
	if c, ok := m.colors[category]; ok {
		return c
	}
	return "#cccccc"
}

// Len reports the number of tags in the table.
func (m Mapping) Len() int { return len(m.byTag) }

// Google Calendar color IDs and the categories they track.
var defaultTags = map[string]string{
	"2":  "Professional Tasks", // Basil
	"7":  "Meetings",           // Blueberry
	"3":  "Social Connections", // Grape
	"5":  "Emotional Recharge", // Banana
	"1":  "Self-Maintenance",   // Lavender
	"0":  "Self-Maintenance",   // Lavender (unset)
	"6":  "Life Admin",         // Tangerine
	"8":  "Mental Struggles",   // Graphite
	"11": "Romance",            // Tomato
}

var defaultTagOrder = []string{"2", "7", "3", "5", "1", "0", "6", "8", "11"}

var defaultColors = map[string]string{
	"Professional Tasks": "#0f9d58",
	"Meetings":           "#4285f4",
	"Social Connections": "#9c27b0",
	"Emotional Recharge": "#f9ab00",
	"Self-Maintenance":   "#673ab7",
	"Life Admin":         "#ff6d01",
	"Mental Struggles":   "#5f6368",
	"Romance":            "#d93025",
}

// Default returns the built-in color-to-category mapping.
func Default() Mapping {
	return New(defaultTags, defaultColors, defaultTagOrder)
}
