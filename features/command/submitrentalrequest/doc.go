// Package submitrentalrequest implements the Submit Rental Request use case.
//
// A patron asks for a number of units of an item. The request is checked against the current availability,
// but no units are reserved: approval re-validates against the availability at that time.
// At most one pending request may exist per patron and item; the partial unique index on the
// rental requests table backs this rule against concurrent submissions.
package submitrentalrequest
