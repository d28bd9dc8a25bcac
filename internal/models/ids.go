package models

import "github.com/google/uuid"

// Identifier prefixes, one per entity kind.
const (
	PrefixUser     = "user"
	PrefixCategory = "category"
	PrefixTask     = "task"
	PrefixNote     = "note"
)

// NewID returns prefix-<uuid v7>. Version 7 ids sort by creation time and
// carry random bits, so ids minted in the same millisecond stay distinct.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
