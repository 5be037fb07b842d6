// Package denyaccessrequest implements the Deny Collection Access Request use case.
package denyaccessrequest
