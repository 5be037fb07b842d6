package gearcatalog

import "github.com/AntonStoeckl/gear-rental-go/rental"

// GearCatalog represents the query result.
type GearCatalog struct {
	Entries []rental.GearItem
}
