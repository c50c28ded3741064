package tierlist

import (
	"strings"
	"unicode/utf8"
)

// Palette is the fixed color cycle for new tiers. Colors are stored as
// Tailwind background class names so documents stay portable to the web
// board; the TUI maps them to terminal colors.
var Palette = []string{
	"bg-red-500",
	"bg-orange-500",
	"bg-yellow-500",
	"bg-green-500",
	"bg-blue-500",
	"bg-purple-500",
	"bg-pink-500",
	"bg-gray-500",
}

// PaletteColor returns the color for the nth tier.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// Tier is a named, colored, ordered container of items.
type Tier struct {
	ID    string
	Name  string
	Color string
	Items []Item
}

// NewTier builds an empty tier with a fresh id.
func NewTier(name, color string) (Tier, error) {
	trimmed, err := tierName(name)
	if err != nil {
		return Tier{}, err
	}
	return Tier{ID: newID("tier"), Name: trimmed, Color: color}, nil
}

// tierName trims name and checks it can be stored.
func tierName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", InvalidTierError{Name: name, Reason: "must not be empty"}
	}
	if !utf8.ValidString(trimmed) {
		return "", InvalidTierError{Name: name, Reason: "must be valid UTF-8"}
	}
	return trimmed, nil
}

// DefaultTiers returns the seed tiers S, A, B, C and D.
func DefaultTiers() []Tier {
	names := []string{"S", "A", "B", "C", "D"}
	tiers := make([]Tier, 0, len(names))
	for i, name := range names {
		tiers = append(tiers, Tier{
			ID:    strings.ToLower(name) + "-tier",
			Name:  name,
			Color: PaletteColor(i),
		})
	}
	return tiers
}

func (t Tier) clone() Tier {
	t.Items = cloneItems(t.Items)
	return t
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
