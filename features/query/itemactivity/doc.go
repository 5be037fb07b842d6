// Package itemactivity implements the Item Activity query use case.
// It reads the audit events that reference an item and decodes them back into domain events.
package itemactivity
