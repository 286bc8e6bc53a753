package index

import "context"

// Stub is a no-op index used when no semantic index is configured.
// Search always returns no hits.
type Stub struct{}

// NewStub creates a stub index.
func NewStub() *Stub { return &Stub{} }

// Search returns no results.
func (s *Stub) Search(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, nil
}
