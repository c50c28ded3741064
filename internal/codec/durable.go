package codec

import (
	"bytes"

	"github.com/jask/tiermaker/internal/tierlist"
)

// EncodeDurable renders the board as the JSON document kept in local storage.
func EncodeDurable(b tierlist.Board) ([]byte, error) {
	return marshal(b)
}

// ParseDurable decodes a stored document, returning a *DecodeError when the
// input is empty, not JSON, or breaks the board schema.
func ParseDurable(data []byte) (tierlist.Board, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tierlist.Board{}, &DecodeError{Stage: "json", Err: errEmpty}
	}
	return unmarshal(data)
}

// DecodeDurable is ParseDurable with the first-run fallback: anything it
// cannot decode yields the seed board.
func DecodeDurable(data []byte) tierlist.Board {
	b, err := ParseDurable(data)
	if err != nil {
		return tierlist.NewBoard()
	}
	return b
}
