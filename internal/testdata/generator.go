package testdata

import (
	"fmt"
	"math/rand"

	"github.com/jask/tiermaker/internal/tierlist"
)

// Foods is the sample item set used by Seed.
var Foods = []string{
	"Pizza", "Sushi", "Tacos", "Pasta", "Ramen", "Burger", "Curry", "Pho",
	"Dumplings", "Falafel", "Paella", "Kimchi", "Croissant", "Bagel",
}

// Seed fills b with sample items: a few go to each tier in a shuffled order,
// the rest stay unranked. The same seed always yields the same layout.
func Seed(b tierlist.Board, seed int64) (tierlist.Board, error) {
	rng := rand.New(rand.NewSource(seed))

	names := make([]string, len(Foods))
	copy(names, Foods)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	for _, name := range names {
		next, item, err := b.AddItem(tierlist.KindText, name, "")
		if err != nil {
			return b, fmt.Errorf("seed %q: %w", name, err)
		}
		b = next
		// roughly one in three stays unranked
		pick := rng.Intn(len(b.Tiers) + len(b.Tiers)/2 + 1)
		if pick >= len(b.Tiers) {
			continue
		}
		next, err = b.MoveItem(item.ID, tierlist.UnrankedID, b.Tiers[pick].ID)
		if err != nil {
			return b, err
		}
		b = next
	}
	return b, nil
}
