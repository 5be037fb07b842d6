package libraryoverview

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// Project groups the items by library and computes the per-library aggregates.
//
// Query Logic:
//
//	GIVEN: All libraries and all items with their open borrow counts
//	WHEN: LibraryOverview query is executed
//	THEN: Each library lists its items in title order
//	HAS_AVAILABLE_ITEMS: at least one item has available quantity > 0
//	HAS_RENTED_ITEMS: at least one item has an open borrow record
func Project(libraries []rental.Library, stocks []rental.ItemStock) LibraryOverview {
	byLibrary := make(map[uuid.UUID][]rental.ItemStock)
	unassigned := make([]ItemInfo, 0)

	for _, s := range stocks {
		if !s.Item.LibraryID.Valid {
			unassigned = append(unassigned, toItemInfo(s))
			continue
		}

		byLibrary[s.Item.LibraryID.UUID] = append(byLibrary[s.Item.LibraryID.UUID], s)
	}

	result := LibraryOverview{
		Libraries:       make([]LibraryInfo, 0, len(libraries)),
		UnassignedItems: unassigned,
	}

	for _, l := range libraries {
		info := LibraryInfo{
			LibraryID: l.ID,
			Title:     l.Title,
			Location:  l.Location,
			Items:     make([]ItemInfo, 0, len(byLibrary[l.ID])),
		}

		for _, s := range byLibrary[l.ID] {
			info.Items = append(info.Items, toItemInfo(s))
			info.HasAvailableItems = info.HasAvailableItems || s.Stock().Available() > 0
			info.HasRentedItems = info.HasRentedItems || s.OpenBorrows > 0
		}

		result.Libraries = append(result.Libraries, info)
	}

	return result
}

func toItemInfo(s rental.ItemStock) ItemInfo {
	stock := s.Stock()

	return ItemInfo{
		ItemID:            s.Item.ID,
		Title:             s.Item.Title,
		Quantity:          stock.Quantity,
		AvailableQuantity: stock.Available(),
		Status:            string(stock.Status()),
	}
}
