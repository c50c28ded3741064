package tierlist

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match is a search hit.
type Match struct {
	Item        Item
	ContainerID string
	Distance    int
}

// Search ranks items whose text resembles query. Substring hits score 0;
// otherwise the best edit distance against the whole text or any of its
// words is used, and hits further than about a third of the query length are
// dropped. Ties keep board order (tiers top to bottom, then unranked).
func (b Board) Search(query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	maxDist := len([]rune(q))/3 + 1

	var out []Match
	visit := func(containerID string, items []Item) {
		for _, it := range items {
			text := strings.ToLower(it.Text())
			if text == "" {
				continue
			}
			d := distance(q, text)
			if d > maxDist {
				continue
			}
			out = append(out, Match{Item: it, ContainerID: containerID, Distance: d})
		}
	}
	for _, t := range b.Tiers {
		visit(t.ID, t.Items)
	}
	visit(UnrankedID, b.Unranked)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distance(q, text string) int {
	if strings.Contains(text, q) {
		return 0
	}
	best := levenshtein.ComputeDistance(q, text)
	for _, w := range strings.Fields(text) {
		if d := levenshtein.ComputeDistance(q, w); d < best {
			best = d
		}
	}
	return best
}
