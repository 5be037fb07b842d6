// Package cancelaccessrequest implements the Cancel Collection Access Request use case.
// Only the requesting patron may cancel, and only while the request is pending.
package cancelaccessrequest
