// Package models defines the domain types for plume.
package models

import "time"

// PostMetadata is a lightweight representation returned by listing the
// content root. Parsed metadata lives in the index; this carries only what
// change detection needs.
type PostMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
