// Package users stores the local mirror of authenticated users. Rows exist so
// that categories, tasks and notes have a parent for their foreign keys.
package users
