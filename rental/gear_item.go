package rental

import (
	"errors"

	"github.com/google/uuid"
)

// ErrUnknownGearKind is returned when a gear kind string cannot be parsed.
var ErrUnknownGearKind = errors.New("unknown gear kind")

// GearKind discriminates the variants of GearItem.
type GearKind int

const (
	GearKindLibrary GearKind = iota + 1
	GearKindCollection
	GearKindItem
)

func (k GearKind) String() string {
	switch k {
	case GearKindLibrary:
		return "library"
	case GearKindCollection:
		return "collection"
	case GearKindItem:
		return "item"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON payloads.
func (k GearKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseGearKind converts the name of a kind back into a GearKind.
func ParseGearKind(s string) (GearKind, error) {
	for _, k := range []GearKind{GearKindLibrary, GearKindCollection, GearKindItem} {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, errors.Join(ErrUnknownGearKind, errors.New(s))
}

// GearItem is the tagged union of everything the catalog lists: a Library, a Collection or an Item.
// Exactly the field matching Kind is set. Build values only with the GearItemFrom* constructors.
type GearItem struct {
	Kind       GearKind
	Library    *Library
	Collection *Collection
	Item       *ItemStock
}

// GearItemFromLibrary wraps a library.
func GearItemFromLibrary(l Library) GearItem {
	return GearItem{Kind: GearKindLibrary, Library: &l}
}

// GearItemFromCollection wraps a collection.
func GearItemFromCollection(c Collection) GearItem {
	return GearItem{Kind: GearKindCollection, Collection: &c}
}

// GearItemFromItem wraps an item with its stock.
func GearItemFromItem(s ItemStock) GearItem {
	return GearItem{Kind: GearKindItem, Item: &s}
}

// ID returns the identifier of the wrapped entity.
func (g GearItem) ID() uuid.UUID {
	switch g.Kind {
	case GearKindLibrary:
		return g.Library.ID
	case GearKindCollection:
		return g.Collection.ID
	case GearKindItem:
		return g.Item.Item.ID
	default:
		return uuid.Nil
	}
}

// Title returns the display title of the wrapped entity.
func (g GearItem) Title() string {
	switch g.Kind {
	case GearKindLibrary:
		return g.Library.Title
	case GearKindCollection:
		return g.Collection.Title
	case GearKindItem:
		return g.Item.Item.Title
	default:
		return ""
	}
}
