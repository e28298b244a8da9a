package registration

import "errors"

var (
	// ErrPersistenceFailed is the single store failure callers see. The
	// underlying cause stays in the wrapped chain for logs.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrUnknownCollection is returned for collections the gateway does
	// not serve.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrInvalidRecord is returned when the candidate is not a JSON
	// object of the expected shape.
	ErrInvalidRecord = errors.New("invalid record payload")

	ErrMissingEmail         = errors.New("email is required")
	ErrMissingDigest        = errors.New("passwordDigest is required")
	ErrMissingTimestamp     = errors.New("timestamp is required")
	ErrMissingDoctor        = errors.New("doctor name is required")
	ErrMissingPatient       = errors.New("patient name and email are required")
	ErrMissingAppointmentID = errors.New("appointmentId is required")
)
