// Package categories persists the user-defined task categories.
package categories
