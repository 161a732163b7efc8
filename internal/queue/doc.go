// Package queue persists the conversion intake queue in SQLite. Entries
// are files waiting to be committed into a conversion batch; insertion
// order is dispatch order. The database is transient working state, not
// an archive: schema changes bump the version in store.go and users
// clear the queue to adopt the new schema.
package queue
