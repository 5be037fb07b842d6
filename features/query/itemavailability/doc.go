// Package itemavailability implements the Item Availability query use case.
//
// It is the read side of the Inventory Ledger: the available quantity and the status are derived from the
// owned quantity and the number of open borrow records, and compared with the cached status of the item.
package itemavailability
