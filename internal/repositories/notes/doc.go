// Package notes persists free-form notes. Listing puts pinned notes first.
package notes
