// Package addcollectionitem implements adding a single item to a collection.
package addcollectionitem
