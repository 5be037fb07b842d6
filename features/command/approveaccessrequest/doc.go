// Package approveaccessrequest implements the Approve Collection Access Request use case.
// Approving adds the patron to the allowed users of the private collection.
package approveaccessrequest
