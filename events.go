package formkit

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/formstate"
)

// EventType names what happened to the form.
type EventType string

const (
	// EventValueChanged fires after a value is stored, before any
	// debounced validation runs.
	EventValueChanged EventType = "valueChanged"

	// EventTouched fires when a field is marked touched.
	EventTouched EventType = "touched"

	// EventFieldValidated fires when a single-field result is merged.
	EventFieldValidated EventType = "fieldValidated"

	// EventValidationStarted fires when a form-wide pass begins.
	EventValidationStarted EventType = "validationStarted"

	// EventFormValidated fires when a form-wide result is merged.
	EventFormValidated EventType = "formValidated"

	// EventValuesLoaded fires after a bulk value load.
	EventValuesLoaded EventType = "valuesLoaded"

	// EventReset fires after the form returns to its defaults.
	EventReset EventType = "reset"

	// EventSubmitStarted fires when a submission attempt is admitted.
	EventSubmitStarted EventType = "submitStarted"

	// EventSubmitFinished fires when a submission attempt settles,
	// successfully or not.
	EventSubmitFinished EventType = "submitFinished"
)

// Event is one state change, published to every subscriber with full
// snapshots so observers never need to call back into the form.
type Event struct {
	FormID     uuid.UUID          `json:"formId"`
	Type       EventType          `json:"type"`
	Field      string             `json:"field,omitempty"`
	State      formstate.Snapshot `json:"state"`
	Submission Submission         `json:"submission"`
}
