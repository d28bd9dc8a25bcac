// Package models defines the ManagerX entities (users, categories, tasks,
// notes, app settings) and the codecs that move their compound fields in and
// out of the serialized-text columns of the local database.
package models
