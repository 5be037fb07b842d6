// Package submitaccessrequest implements the Submit Collection Access Request use case.
package submitaccessrequest
