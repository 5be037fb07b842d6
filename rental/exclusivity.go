package rental

import (
	"slices"

	"github.com/google/uuid"
)

// MembershipPlan lists the writes a membership change needs once the Collection Exclusivity Guard accepted it.
type MembershipPlan struct {
	// Link holds the items that are not yet members of the target collection, sorted by id.
	Link []uuid.UUID
	// Evict holds the public memberships an item leaves because it joins a private collection.
	Evict []CollectionItem
}

// IsEmpty reports whether the plan writes nothing.
func (p MembershipPlan) IsEmpty() bool {
	return len(p.Link) == 0 && len(p.Evict) == 0
}

// EvictedFrom returns the ids of the collections the item was evicted from.
func (p MembershipPlan) EvictedFrom(itemID uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0)
	for _, e := range p.Evict {
		if e.ItemID == itemID {
			out = append(out, e.CollectionID)
		}
	}

	return out
}

// GuardMemberships applies the Collection Exclusivity Guard to linking items into the target collection.
//
// An item may belong to at most one private collection, and then to no public one:
//   - target private: membership in another private collection is rejected with KindAlreadyInCollection,
//     public memberships are evicted.
//   - target public: membership in any private collection is rejected with KindBelongsToPrivateCollection.
//
// Items already in the target are skipped. memberships must contain every membership of the given items.
// The first violation in item id order is returned and no plan is produced.
func GuardMemberships(target Collection, items []Item, memberships []Membership) (MembershipPlan, error) {
	byItem := make(map[uuid.UUID][]Membership, len(items))
	for _, m := range memberships {
		byItem[m.ItemID] = append(byItem[m.ItemID], m)
	}

	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b Item) int { return CompareIDs(a.ID, b.ID) })
	sorted = slices.CompactFunc(sorted, func(a, b Item) bool { return a.ID == b.ID })

	plan := MembershipPlan{Link: make([]uuid.UUID, 0, len(sorted)), Evict: make([]CollectionItem, 0)}

	for _, item := range sorted {
		current := byItem[item.ID]

		if slices.ContainsFunc(current, func(m Membership) bool { return m.CollectionID == target.ID }) {
			continue
		}

		for _, m := range current {
			if !m.IsPrivate {
				continue
			}

			if target.IsPrivate {
				return MembershipPlan{}, NewAlreadyInCollection(item.Title, m.CollectionTitle)
			}

			return MembershipPlan{}, NewBelongsToPrivateCollection(item.Title, m.CollectionTitle)
		}

		if target.IsPrivate {
			for _, m := range current {
				plan.Evict = append(plan.Evict, CollectionItem{CollectionID: m.CollectionID, ItemID: item.ID})
			}
		}

		plan.Link = append(plan.Link, item.ID)
	}

	return plan, nil
}
