package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jask/tiermaker/internal/tierlist"
)

// document is the structured form of a board. Field names match the
// localStorage document written by the web board, so its saves and links
// decode unchanged.
type document struct {
	Tiers    []tierDoc `json:"tiers" validate:"required,dive"`
	Unranked []itemDoc `json:"unranked" validate:"dive"`
}

type tierDoc struct {
	ID    string    `json:"id" validate:"notblank"`
	Name  string    `json:"name" validate:"notblank"`
	Color string    `json:"color"`
	Items []itemDoc `json:"items" validate:"dive"`
}

type itemDoc struct {
	ID      string `json:"id" validate:"notblank"`
	Type    string `json:"type" validate:"required,oneof=text image"`
	Content string `json:"content" validate:"notblank"`
	Label   string `json:"label"`
}

// DecodeError reports a document or token that could not be turned back
// into a board.
type DecodeError struct {
	Stage string // "token", "json" or "schema"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func schema() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		err := validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		if err != nil {
			panic(fmt.Sprintf("codec: register notblank validation: %v", err))
		}
	})
	return validate
}

func fromBoard(b tierlist.Board) document {
	doc := document{
		Tiers:    make([]tierDoc, 0, len(b.Tiers)),
		Unranked: itemDocs(b.Unranked),
	}
	for _, t := range b.Tiers {
		doc.Tiers = append(doc.Tiers, tierDoc{
			ID:    t.ID,
			Name:  t.Name,
			Color: t.Color,
			Items: itemDocs(t.Items),
		})
	}
	return doc
}

func itemDocs(items []tierlist.Item) []itemDoc {
	out := make([]itemDoc, 0, len(items))
	for _, it := range items {
		out = append(out, itemDoc{ID: it.ID, Type: string(it.Kind), Content: it.Payload, Label: it.Label})
	}
	return out
}

func (d document) board() tierlist.Board {
	b := tierlist.Board{Unranked: boardItems(d.Unranked)}
	if len(d.Tiers) > 0 {
		b.Tiers = make([]tierlist.Tier, 0, len(d.Tiers))
	}
	for i, t := range d.Tiers {
		color := t.Color
		if color == "" {
			color = tierlist.PaletteColor(i)
		}
		b.Tiers = append(b.Tiers, tierlist.Tier{ID: t.ID, Name: t.Name, Color: color, Items: boardItems(t.Items)})
	}
	return b
}

func boardItems(docs []itemDoc) []tierlist.Item {
	if len(docs) == 0 {
		return nil
	}
	out := make([]tierlist.Item, 0, len(docs))
	for _, d := range docs {
		out = append(out, tierlist.Item{ID: d.ID, Kind: tierlist.Kind(d.Type), Payload: d.Content, Label: d.Label})
	}
	return out
}

// check enforces the board invariants the struct tags cannot express.
func (d document) check() error {
	if err := schema().Struct(d); err != nil {
		return err
	}
	tierIDs := make(map[string]struct{}, len(d.Tiers))
	itemIDs := map[string]struct{}{}
	seeItems := func(items []itemDoc) error {
		for _, it := range items {
			if _, dup := itemIDs[it.ID]; dup {
				return fmt.Errorf("item %q appears more than once", it.ID)
			}
			itemIDs[it.ID] = struct{}{}
		}
		return nil
	}
	for _, t := range d.Tiers {
		if t.ID == tierlist.UnrankedID {
			return fmt.Errorf("tier id %q is reserved", t.ID)
		}
		if _, dup := tierIDs[t.ID]; dup {
			return fmt.Errorf("duplicate tier id %q", t.ID)
		}
		tierIDs[t.ID] = struct{}{}
		if err := seeItems(t.Items); err != nil {
			return err
		}
	}
	return seeItems(d.Unranked)
}

// checkText rejects strings JSON cannot carry byte for byte. encoding/json
// would otherwise replace invalid UTF-8 with U+FFFD and decode to a
// different board.
func (d document) checkText() error {
	checkItems := func(items []itemDoc) error {
		for _, it := range items {
			if !utf8.ValidString(it.Content) || !utf8.ValidString(it.Label) || !utf8.ValidString(it.ID) {
				return fmt.Errorf("item %q: text is not valid UTF-8", it.ID)
			}
		}
		return nil
	}
	for _, t := range d.Tiers {
		if !utf8.ValidString(t.ID) || !utf8.ValidString(t.Name) || !utf8.ValidString(t.Color) {
			return fmt.Errorf("tier %q: text is not valid UTF-8", t.ID)
		}
		if err := checkItems(t.Items); err != nil {
			return err
		}
	}
	return checkItems(d.Unranked)
}

func marshal(b tierlist.Board) ([]byte, error) {
	doc := fromBoard(b)
	if err := doc.checkText(); err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return data, nil
}

func unmarshal(data []byte) (tierlist.Board, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return tierlist.Board{}, &DecodeError{Stage: "json", Err: err}
	}
	if err := doc.check(); err != nil {
		return tierlist.Board{}, &DecodeError{Stage: "schema", Err: err}
	}
	return doc.board(), nil
}
