package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tiermaker/internal/tierlist"
)

func sampleBoard(t *testing.T) tierlist.Board {
	t.Helper()
	b := tierlist.NewBoard()
	var (
		err   error
		items []tierlist.Item
	)
	for i, text := range []string{"Alice", "Bob", "Carol", "Dave"} {
		var it tierlist.Item
		b, it, err = b.AddItem(tierlist.KindText, text, fmt.Sprintf("label %d", i))
		require.NoError(t, err)
		items = append(items, it)
	}
	var img tierlist.Item
	b, img, err = b.AddItem(tierlist.KindImage, "data:image/png;base64,iVBORw0KGgo=", "")
	require.NoError(t, err)
	b, err = b.AddTier("F")
	require.NoError(t, err)
	b, err = b.MoveItem(items[2].ID, tierlist.UnrankedID, "s-tier")
	require.NoError(t, err)
	b, err = b.MoveItem(items[0].ID, tierlist.UnrankedID, "s-tier")
	require.NoError(t, err)
	b, err = b.MoveItem(img.ID, tierlist.UnrankedID, b.Tiers[5].ID)
	require.NoError(t, err)
	b = b.MoveTierDown(1)
	return b
}

// multibyteBoard holds non-ASCII text and an image whose raw bytes are not
// valid UTF-8, carried the way image items always are: as a data URL.
func multibyteBoard(t *testing.T) tierlist.Board {
	t.Helper()
	b, err := tierlist.NewBoard().AddTier("Très bien ✨")
	require.NoError(t, err)
	b, _, err = b.AddItem(tierlist.KindText, "Crème brûlée 🍮", "デザート")
	require.NoError(t, err)
	raw := []byte("\x89PNG\r\n\x1a\n\xff\xfe\x00raw")
	b, _, err = b.AddItem(tierlist.KindImage, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(raw), "png")
	require.NoError(t, err)
	return b
}

func TestDurableRoundTrip(t *testing.T) {
	for name, b := range map[string]tierlist.Board{
		"seed":      tierlist.NewBoard(),
		"sample":    sampleBoard(t),
		"empty":     {},
		"multibyte": multibyteBoard(t),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := EncodeDurable(b)
			require.NoError(t, err)
			got, err := ParseDurable(data)
			require.NoError(t, err)
			require.True(t, got.Equal(b), "got %+v", got)
			require.True(t, DecodeDurable(data).Equal(b))
		})
	}
}

func TestShareRoundTrip(t *testing.T) {
	for name, b := range map[string]tierlist.Board{
		"sample":    sampleBoard(t),
		"multibyte": multibyteBoard(t),
	} {
		t.Run(name, func(t *testing.T) {
			token, err := EncodeShare(b)
			require.NoError(t, err)
			require.NotContains(t, token, "=")
			require.NotContains(t, token, "+")
			require.NotContains(t, token, "/")

			got, err := DecodeShare(token)
			require.NoError(t, err)
			require.True(t, got.Equal(b))
		})
	}
}

func TestEncodeRejectsInvalidUTF8(t *testing.T) {
	// Built directly, bypassing AddItem, which already refuses these bytes.
	b := tierlist.Board{
		Tiers:    tierlist.DefaultTiers(),
		Unranked: []tierlist.Item{{ID: "item-1", Kind: tierlist.KindImage, Payload: "\x89PNG\xff\xfe\x00raw"}},
	}
	_, err := EncodeDurable(b)
	require.ErrorContains(t, err, "not valid UTF-8")
	_, err = EncodeShare(b)
	require.ErrorContains(t, err, "not valid UTF-8")

	b = tierlist.NewBoard()
	b.Tiers[0].Name = "S\xff"
	_, err = EncodeDurable(b)
	require.ErrorContains(t, err, "not valid UTF-8")
}

func TestSchemaHasNotblank(t *testing.T) {
	require.NotPanics(t, func() { schema() })
	require.Error(t, schema().Struct(tierDoc{ID: "t", Name: "   "}))
	require.NoError(t, schema().Struct(tierDoc{ID: "t", Name: "S"}))
}

func TestDurableDocumentShape(t *testing.T) {
	data, err := EncodeDurable(tierlist.NewBoard())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, []any{}, raw["unranked"])
	tiers := raw["tiers"].([]any)
	require.Len(t, tiers, 5)
	require.Equal(t, map[string]any{
		"id": "s-tier", "name": "S", "color": "bg-red-500", "items": []any{},
	}, tiers[0])
}

func TestRenameSurvivesDurableRoundTrip(t *testing.T) {
	b, err := tierlist.NewBoard().RenameTier("a-tier", "Top")
	require.NoError(t, err)
	data, err := EncodeDurable(b)
	require.NoError(t, err)

	got := DecodeDurable(data)
	require.Equal(t, "a-tier", got.Tiers[1].ID)
	require.Equal(t, "Top", got.Tiers[1].Name)
	require.Equal(t, "bg-orange-500", got.Tiers[1].Color)
	require.Empty(t, got.Tiers[1].Items)
}

func TestDecodeBrowserDocument(t *testing.T) {
	// Written by the browser version: field order differs, color missing on
	// one tier, unranked omitted.
	doc := `{"tiers":[
		{"items":[{"label":"","content":"Alice","type":"text","id":"item-1712000000000"}],"color":"bg-red-500","name":"S","id":"s-tier"},
		{"id":"tier-1712000000001","name":"Meh","items":[]}
	]}`
	b, err := ParseDurable([]byte(doc))
	require.NoError(t, err)
	require.Len(t, b.Tiers, 2)
	require.Equal(t, "bg-orange-500", b.Tiers[1].Color)
	require.Equal(t, []tierlist.Item{{ID: "item-1712000000000", Kind: tierlist.KindText, Payload: "Alice"}}, b.Tiers[0].Items)
	require.Empty(t, b.Unranked)

	token := base64.StdEncoding.EncodeToString([]byte(doc))
	fromLink, err := DecodeShare(token)
	require.NoError(t, err)
	require.True(t, fromLink.Equal(b))
}

func TestParseDurableRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":             "",
		"blank":             "  \n",
		"not json":          "{tiers",
		"null":              "null",
		"missing tiers":     `{"unranked":[]}`,
		"tier without name": `{"tiers":[{"id":"x","name":"  ","items":[]}]}`,
		"tier without id":   `{"tiers":[{"name":"X","items":[]}]}`,
		"bad item type":     `{"tiers":[],"unranked":[{"id":"i","type":"video","content":"x"}]}`,
		"empty content":     `{"tiers":[],"unranked":[{"id":"i","type":"text","content":""}]}`,
		"duplicate tier":    `{"tiers":[{"id":"x","name":"X"},{"id":"x","name":"Y"}]}`,
		"reserved tier id":  `{"tiers":[{"id":"unranked","name":"X"}]}`,
		"duplicate item": `{"tiers":[{"id":"x","name":"X","items":[{"id":"i","type":"text","content":"a"}]}],
			"unranked":[{"id":"i","type":"text","content":"a"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDurable([]byte(doc))
			require.Error(t, err)
			require.True(t, IsDecode(err), "%v", err)
			require.True(t, DecodeDurable([]byte(doc)).Equal(tierlist.NewBoard()))
		})
	}
}

func TestDecodeShareRejects(t *testing.T) {
	notJSON := base64.RawURLEncoding.EncodeToString([]byte("hello"))
	for name, token := range map[string]string{
		"empty":    "",
		"garbage":  "!!not-a-token!!",
		"not json": notJSON,
		"schema":   base64.RawURLEncoding.EncodeToString([]byte(`{"unranked":[]}`)),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeShare(token)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
		})
	}
}

func TestShareURL(t *testing.T) {
	b := sampleBoard(t)
	link, err := ShareURL("https://tiers.example.com/app?x=1#old", b)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://tiers.example.com/app?x=1#"))

	token := FragmentToken(link)
	got, err := DecodeShare(token)
	require.NoError(t, err)
	require.True(t, got.Equal(b))

	_, err = ShareURL("://bad", b)
	require.Error(t, err)
}

func TestFragmentToken(t *testing.T) {
	require.Equal(t, "abc", FragmentToken("https://x.test/#abc"))
	require.Equal(t, "abc", FragmentToken("  abc "))
	require.Equal(t, "", FragmentToken("https://x.test/page"))
	require.Equal(t, "", FragmentToken("https://x.test/page#"))
}
