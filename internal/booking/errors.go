package booking

import "errors"

var (
	ErrMissingDoctor       = errors.New("doctor is required")
	ErrMissingPatientName  = errors.New("patientName is required")
	ErrMissingPatientEmail = errors.New("patient email is required")

	// ErrEmailDeliveryFailed reports the notification step failing. It
	// is independent of whether the appointment record was saved.
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
)
