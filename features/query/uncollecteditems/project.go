package uncollecteditems

import "github.com/AntonStoeckl/gear-rental-go/rental"

// Project converts both stock listings, keeping their order (by title).
func Project(notInAny, notInPrivate []rental.ItemStock) UncollectedItems {
	return UncollectedItems{
		NotInAnyCollection:     toItemInfos(notInAny),
		NotInPrivateCollection: toItemInfos(notInPrivate),
	}
}

func toItemInfos(stocks []rental.ItemStock) []ItemInfo {
	infos := make([]ItemInfo, 0, len(stocks))
	for _, s := range stocks {
		infos = append(infos, ItemInfo{
			ItemID:            s.Item.ID,
			Title:             s.Item.Title,
			AvailableQuantity: s.Stock().Available(),
		})
	}

	return infos
}
