// Package httpapi is the thin JSON presentation adapter over the command and query handlers.
//
// The caller identity comes from the X-Actor-ID and X-Actor-Role headers. Rule violations are rendered as
// {"error": <kind>, "message": <human readable message>} with the status code of their kind.
package httpapi
