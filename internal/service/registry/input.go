package registry

import (
	"strings"

	"github.com/provenly/dnastore/internal/domain"
)

const (
	maxNameLen   = 255
	maxPathLen   = 1024
	maxIntentLen = 255
)

// ---------------------------------------------------------------------------
// TrackInput
// ---------------------------------------------------------------------------

// TrackInput holds the parameters for recording an artifact mutation.
type TrackInput struct {
	// Action is the lifecycle action to record. Empty defaults to Created
	// for new artifacts and Updated when ExistingID is set.
	Action domain.LifecycleAction

	// Origin identifies the actor responsible for this mutation,
	// e.g. "User", "Agent:Worker", or "Constitution".
	Origin string

	// Intent is the declared purpose of the artifact. Empty means the
	// generic default intent.
	Intent string

	// Content is the artifact body at this version.
	Content []byte

	// ExistingID, when set, records an update to a known artifact instead
	// of creating a new one.
	ExistingID string

	// Display metadata. For updates, empty fields keep current values.
	Name string
	Type string
	Path string
}

// Validate checks all fields and collects all errors.
func (i TrackInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Origin) == "" {
		errs = append(errs, domain.FieldError{Field: "origin", Message: "required"})
	}
	if i.Action != "" && !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "unknown lifecycle action"})
	}
	if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 255)"})
	}
	if len(i.Path) > maxPathLen {
		errs = append(errs, domain.FieldError{Field: "path", Message: "too long (max 1024)"})
	}
	if len(i.Intent) > maxIntentLen {
		errs = append(errs, domain.FieldError{Field: "intent", Message: "too long (max 255)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// ValidateInput
// ---------------------------------------------------------------------------

// ValidateInput holds the parameters for attesting an artifact.
type ValidateInput struct {
	ArtifactID string
	Actor      string
	Note       string
}

// Validate checks all fields and collects all errors.
func (i ValidateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ArtifactID) == "" {
		errs = append(errs, domain.FieldError{Field: "artifact_id", Message: "required"})
	}
	if strings.TrimSpace(i.Actor) == "" {
		errs = append(errs, domain.FieldError{Field: "actor", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
