// Package registeritem implements the Register Item use case.
//
// A librarian registers a piece of gear with the number of physical units the library owns.
// The item starts available; its availability is derived from open borrow records from then on.
package registeritem
