package session

import (
	"context"

	"github.com/dmitrymomot/httpkit/pkg/collection"
)

// Data is the live key/value collection of a started session.
type Data = collection.Collection[string, any]

// Storage is a session backend. A Storage serves one session at a time and
// is not safe for concurrent use; backends shared between requests must
// serialize holders of the same id themselves.
type Storage interface {
	// Start opens the session and reports success. A preset id is reused
	// when the backend supports it, otherwise a new id is assigned.
	Start(ctx context.Context) bool
	IsStarted() bool
	ID() string
	SetID(id string)
	Name() string
	SetName(name string)
	// Save persists the data and closes the session.
	Save(ctx context.Context) error
	// Clear empties the data of the open session.
	Clear()
	// Collection returns the live data. Mutations are visible to the backend.
	Collection() *Data
}
