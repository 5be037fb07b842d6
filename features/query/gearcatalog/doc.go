// Package gearcatalog implements the Gear Catalog query use case.
//
// The catalog is a heterogeneous list of rental.GearItem values: libraries, collections and items,
// filtered by what the actor may see and by kind.
package gearcatalog
