// Package setcollectionitems implements replacing the complete item set of a collection.
//
// Every item of the new set passes the Collection Exclusivity Guard. A single violation rejects the whole write.
// Items missing from the new set are unlinked.
package setcollectionitems
