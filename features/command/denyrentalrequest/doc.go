// Package denyrentalrequest implements the Deny Rental Request use case.
// A denied request is terminal and has no inventory side effects.
package denyrentalrequest
