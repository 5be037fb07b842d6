// Package approverentalrequest implements the Approve Rental Request use case.
//
// Approval is the authoritative stock check: availability is re-validated under the item row lock,
// then one open borrow record per approved unit is written with a single bulk insert, the request
// becomes approved with its rent dates, and the cached item status is recomputed. All of it commits
// atomically or not at all.
package approverentalrequest
