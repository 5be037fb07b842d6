// Package registerlibrary implements the Register Library use case.
//
// Libraries group items by physical location.
package registerlibrary
