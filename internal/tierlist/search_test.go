package tierlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	b := NewBoard()
	b, pizza := mustAdd(t, b, "Pizza Margherita")
	b, pasta := mustAdd(t, b, "Pasta")
	b, _ = mustAdd(t, b, "Sushi")
	b, img, err := b.AddItem(KindImage, "data:image/png;base64,AAAA", "pizza slice")
	require.NoError(t, err)
	b, err = b.MoveItem(img.ID, UnrankedID, "a-tier")
	require.NoError(t, err)

	hits := b.Search("pizza", 0)
	require.Len(t, hits, 2)
	require.Equal(t, img.ID, hits[0].Item.ID, "tiers are visited before unranked")
	require.Equal(t, "a-tier", hits[0].ContainerID)
	require.Equal(t, pizza.ID, hits[1].Item.ID)
	require.Zero(t, hits[1].Distance)

	hits = b.Search("pasat", 0)
	require.Len(t, hits, 1)
	require.Equal(t, pasta.ID, hits[0].Item.ID)
	require.Equal(t, 2, hits[0].Distance)

	require.Len(t, b.Search("pizza", 1), 1)
	require.Empty(t, b.Search("   ", 5))
	require.Empty(t, b.Search("zzzzzz", 5))
}

func TestSearchSkipsUnlabelledImages(t *testing.T) {
	b, _, err := NewBoard().AddItem(KindImage, "data:image/png;base64,pizza", "")
	require.NoError(t, err)
	require.Empty(t, b.Search("pizza", 0))
}
