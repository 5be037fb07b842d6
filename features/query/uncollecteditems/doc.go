// Package uncollecteditems implements the Uncollected Items query use case.
//
// Collection editors pick from two lists: items in no collection at all, and items that are at most
// in public collections (which a private collection may still claim by eviction).
package uncollecteditems
