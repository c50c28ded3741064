package tierlist

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Kind tags the payload of an item.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindText || k == KindImage
}

// Item is one rankable unit. Items are never edited after creation.
type Item struct {
	ID      string
	Kind    Kind
	Payload string // literal text, or an encoded image (usually a data: URL)
	Label   string
}

// NewItem builds an item with a fresh id. Text payloads are trimmed; image
// payloads are kept byte for byte. Payload and label must be valid UTF-8,
// since both codecs carry them as JSON strings; binary images are passed
// already encoded (see service.ImageFile).
func NewItem(kind Kind, payload, label string) (Item, error) {
	if !kind.Valid() {
		return Item{}, InvalidItemError{Reason: "unknown kind " + string(kind)}
	}
	if kind == KindText {
		payload = strings.TrimSpace(payload)
	}
	if strings.TrimSpace(payload) == "" {
		return Item{}, InvalidItemError{Reason: "payload is empty"}
	}
	if !utf8.ValidString(payload) {
		return Item{}, InvalidItemError{Reason: "payload is not valid UTF-8"}
	}
	if !utf8.ValidString(label) {
		return Item{}, InvalidItemError{Reason: "label is not valid UTF-8"}
	}
	return Item{ID: newID("item"), Kind: kind, Payload: payload, Label: label}, nil
}

// Text returns the searchable text of the item: the label when set,
// otherwise the payload of a text item.
func (i Item) Text() string {
	if i.Label != "" {
		return i.Label
	}
	if i.Kind == KindText {
		return i.Payload
	}
	return ""
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
