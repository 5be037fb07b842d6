// Package borrowinghistory implements the Borrowing History query use case: what a patron has now and has returned.
package borrowinghistory
