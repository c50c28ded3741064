package tierlist

import "slices"

// UnrankedID is the container id of the unranked holding area.
const UnrankedID = "unranked"

// Board is the whole tier list: ranked tiers top to bottom plus the unranked
// area. Mutators never modify the receiver; they return the next Board, or
// the unchanged receiver together with an error.
type Board struct {
	Tiers    []Tier
	Unranked []Item
}

// NewBoard returns the seed board with the default tiers and no items.
func NewBoard() Board {
	return Board{Tiers: DefaultTiers()}
}

// Reset discards every item and custom tier.
func (b Board) Reset() Board {
	return NewBoard()
}

// Clone returns a deep copy of b.
func (b Board) Clone() Board {
	out := Board{Unranked: cloneItems(b.Unranked)}
	if b.Tiers != nil {
		out.Tiers = make([]Tier, len(b.Tiers))
		for i, t := range b.Tiers {
			out.Tiers[i] = t.clone()
		}
	}
	return out
}

// AddItem appends a new item to the end of the unranked area.
func (b Board) AddItem(kind Kind, payload, label string) (Board, Item, error) {
	item, err := NewItem(kind, payload, label)
	if err != nil {
		return b, Item{}, err
	}
	next := b.Clone()
	next.Unranked = append(next.Unranked, item)
	return next, item, nil
}

// AddTier appends an empty tier colored by the current tier count.
func (b Board) AddTier(name string) (Board, error) {
	tier, err := NewTier(name, PaletteColor(len(b.Tiers)))
	if err != nil {
		return b, err
	}
	next := b.Clone()
	next.Tiers = append(next.Tiers, tier)
	return next, nil
}

// RemoveTier deletes a tier and moves its items, in order, to the end of the
// unranked area.
func (b Board) RemoveTier(tierID string) (Board, error) {
	idx := b.TierIndex(tierID)
	if idx < 0 {
		return b, NotFoundError{Resource: "tier", ID: tierID}
	}
	next := b.Clone()
	next.Unranked = append(next.Unranked, next.Tiers[idx].Items...)
	next.Tiers = slices.Delete(next.Tiers, idx, idx+1)
	return next, nil
}

// RenameTier replaces a tier's name, leaving its position, color and items.
func (b Board) RenameTier(tierID, name string) (Board, error) {
	idx := b.TierIndex(tierID)
	if idx < 0 {
		return b, NotFoundError{Resource: "tier", ID: tierID}
	}
	trimmed, err := tierName(name)
	if err != nil {
		return b, err
	}
	next := b.Clone()
	next.Tiers[idx].Name = trimmed
	return next, nil
}

// MoveTierUp swaps the tier at index with its predecessor. Out of range and
// the first index are no-ops.
func (b Board) MoveTierUp(index int) Board {
	if index <= 0 || index >= len(b.Tiers) {
		return b
	}
	next := b.Clone()
	next.Tiers[index-1], next.Tiers[index] = next.Tiers[index], next.Tiers[index-1]
	return next
}

// MoveTierDown swaps the tier at index with its successor. Out of range and
// the last index are no-ops.
func (b Board) MoveTierDown(index int) Board {
	if index < 0 || index >= len(b.Tiers)-1 {
		return b
	}
	next := b.Clone()
	next.Tiers[index], next.Tiers[index+1] = next.Tiers[index+1], next.Tiers[index]
	return next
}

// MoveItem removes an item from the source container and appends it to the
// tail of the target. Container ids are tier ids or UnrankedID. Moving an
// item onto its own container sends it to the end of that container.
func (b Board) MoveItem(itemID, sourceID, targetID string) (Board, error) {
	next := b.Clone()
	src := next.items(sourceID)
	if src == nil {
		return b, NotFoundError{Resource: "container", ID: sourceID}
	}
	dst := next.items(targetID)
	if dst == nil {
		return b, NotFoundError{Resource: "container", ID: targetID}
	}
	idx := slices.IndexFunc(*src, func(it Item) bool { return it.ID == itemID })
	if idx < 0 {
		return b, NotFoundError{Resource: "item", ID: itemID}
	}
	item := (*src)[idx]
	*src = slices.Delete(*src, idx, idx+1)
	*dst = append(*dst, item)
	return next, nil
}

// items returns a pointer to the item slice of a container, or nil.
func (b *Board) items(containerID string) *[]Item {
	if containerID == UnrankedID {
		return &b.Unranked
	}
	for i := range b.Tiers {
		if b.Tiers[i].ID == containerID {
			return &b.Tiers[i].Items
		}
	}
	return nil
}

// TierIndex returns the position of a tier, or -1.
func (b Board) TierIndex(tierID string) int {
	return slices.IndexFunc(b.Tiers, func(t Tier) bool { return t.ID == tierID })
}

// Tier looks up a tier by id.
func (b Board) Tier(tierID string) (Tier, bool) {
	idx := b.TierIndex(tierID)
	if idx < 0 {
		return Tier{}, false
	}
	return b.Tiers[idx], true
}

// Container returns the items held by a tier or by the unranked area.
func (b Board) Container(containerID string) ([]Item, error) {
	items := b.items(containerID)
	if items == nil {
		return nil, NotFoundError{Resource: "container", ID: containerID}
	}
	return *items, nil
}

// Locate returns the id of the container holding itemID.
func (b Board) Locate(itemID string) (string, bool) {
	for _, t := range b.Tiers {
		if slices.ContainsFunc(t.Items, func(it Item) bool { return it.ID == itemID }) {
			return t.ID, true
		}
	}
	if slices.ContainsFunc(b.Unranked, func(it Item) bool { return it.ID == itemID }) {
		return UnrankedID, true
	}
	return "", false
}

// ItemCount counts items across all containers.
func (b Board) ItemCount() int {
	n := len(b.Unranked)
	for _, t := range b.Tiers {
		n += len(t.Items)
	}
	return n
}

// Equal compares content and ordering of tiers and unranked items. Nil and
// empty slices are equal.
func (b Board) Equal(other Board) bool {
	if !slices.Equal(b.Unranked, other.Unranked) {
		return false
	}
	return slices.EqualFunc(b.Tiers, other.Tiers, func(x, y Tier) bool {
		return x.ID == y.ID && x.Name == y.Name && x.Color == y.Color && slices.Equal(x.Items, y.Items)
	})
}
