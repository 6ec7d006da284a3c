package api

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string, so IDs sort by creation.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 only fails when the random source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}
