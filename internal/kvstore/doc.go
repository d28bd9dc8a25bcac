// Package kvstore is the general-purpose key/value store for state that lives
// outside the relational schema: the cached user profile and the settings
// record. Values are opaque bytes.
package kvstore
