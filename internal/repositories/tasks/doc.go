// Package tasks persists tasks in the local SQLite database. Tags and the
// recurrence pattern are stored as JSON text through the models codecs.
package tasks
