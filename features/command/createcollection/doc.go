// Package createcollection implements the Create Collection use case.
//
// The initial items pass the Collection Exclusivity Guard. Items joining a private collection
// leave every public collection they were in, in the same transaction.
package createcollection
