// Package recordborrow implements the librarian override that lends units directly, without a rental request.
package recordborrow
