// Package rentalrequestsbystatus implements the Rental Requests By Status query use case.
//
// It lists rental requests, newest first, optionally narrowed to one status and one patron,
// together with the number of requests per status for the same patron scope.
package rentalrequestsbystatus
