// Package marknotificationsviewed implements recording that a patron looked at their decided requests.
// Decisions taken after the recorded timestamp count as unread.
package marknotificationsviewed
