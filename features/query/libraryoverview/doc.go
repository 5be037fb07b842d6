// Package libraryoverview implements the Library Overview query use case.
package libraryoverview
