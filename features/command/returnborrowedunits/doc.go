// Package returnborrowedunits implements the Return Processor.
//
// A return closes the oldest open borrow records of a patron for an item (FIFO by borrowed_at)
// and recomputes the item status. The item row and the selected borrow records stay locked
// until the transaction ends, so two concurrent returns can never close the same record twice.
package returnborrowedunits
