// Package cancelrentalrequest implements the Cancel Rental Request use case.
//
// Only the patron who submitted a request may cancel it, and only while it is pending.
// A canceled request is deleted.
package cancelrentalrequest
