// Package currentlyborrowed implements the Currently Borrowed query use case.
// Open borrow records are grouped per patron and item.
package currentlyborrowed
