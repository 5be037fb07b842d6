package gearcatalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// Project filters libraries, collections and items down to what the actor may see.
//
// Query Logic:
//
//	GIVEN: All libraries, collections, items and collection memberships
//	WHEN: GearCatalog query is executed for an actor
//	THEN: Entries are ordered by kind, then title, then id
//	INCLUDES: Every library
//	INCLUDES: Public collections, and private ones the actor created, is allowed in, or any as librarian
//	EXCLUDES: Items in a private collection the actor cannot see
func Project(
	query Query,
	libraries []rental.Library,
	collections []rental.Collection,
	stocks []rental.ItemStock,
	memberships []rental.Membership,
) GearCatalog {

	visible := make(map[uuid.UUID]bool, len(collections))
	entries := make([]rental.GearItem, 0, len(libraries)+len(collections)+len(stocks))

	if query.Includes(rental.GearKindLibrary) {
		for _, l := range libraries {
			entries = append(entries, rental.GearItemFromLibrary(l))
		}
	}

	for _, c := range collections {
		visible[c.ID] = c.IsVisibleTo(query.Actor)
		if visible[c.ID] && query.Includes(rental.GearKindCollection) {
			entries = append(entries, rental.GearItemFromCollection(c))
		}
	}

	if query.Includes(rental.GearKindItem) {
		hidden := make(map[uuid.UUID]bool)
		for _, m := range memberships {
			if m.IsPrivate && !visible[m.CollectionID] {
				hidden[m.ItemID] = true
			}
		}

		for _, s := range stocks {
			if !hidden[s.Item.ID] {
				entries = append(entries, rental.GearItemFromItem(s))
			}
		}
	}

	slices.SortFunc(entries, func(a, b rental.GearItem) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			strings.Compare(a.Title(), b.Title()),
			rental.CompareIDs(a.ID(), b.ID()),
		)
	})

	return GearCatalog{Entries: entries}
}
