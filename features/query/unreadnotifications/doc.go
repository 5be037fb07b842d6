// Package unreadnotifications implements the Unread Notifications query use case.
//
// A notification is a rental request or an access request of the patron that was decided after the patron
// last marked that kind of notification as viewed.
package unreadnotifications
