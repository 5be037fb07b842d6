// Package changeitemquantity implements the Change Item Quantity use case.
//
// The number of owned units may never drop below the number of units currently on loan,
// otherwise the available quantity would turn negative. The cached status is recomputed in the same transaction.
package changeitemquantity
