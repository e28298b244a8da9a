package registration

import (
	"encoding/json"
	"strings"
)

// Collection names the gateway accepts. Each maps to one persisted JSON
// document in the record store.
const (
	CollectionSignIns      = "signins"
	CollectionAppointments = "appointments"
)

// KnownCollection reports whether the gateway serves this collection.
func KnownCollection(collection string) bool {
	return collection == CollectionSignIns || collection == CollectionAppointments
}

// SignInRecord is one captured sign-in event. Duplicate emails are
// allowed: the collection is an append-only audit log, not an account
// table.
type SignInRecord struct {
	Email          string `json:"email"`
	PasswordDigest string `json:"passwordDigest"`
	Timestamp      string `json:"timestamp"`
}

// Validate checks required fields are present. No format validation.
func (r *SignInRecord) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(r.PasswordDigest) == "" {
		return ErrMissingDigest
	}
	if strings.TrimSpace(r.Timestamp) == "" {
		return ErrMissingTimestamp
	}
	return nil
}

// AppointmentDoctor is the doctor contact slice of an appointment record.
type AppointmentDoctor struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Hospital string `json:"hospital"`
	Location string `json:"location"`
}

// AppointmentPatient is the patient contact slice of an appointment record.
type AppointmentPatient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AppointmentRecord is one confirmed booking.
type AppointmentRecord struct {
	Doctor        AppointmentDoctor  `json:"doctor"`
	Patient       AppointmentPatient `json:"patient"`
	AppointmentID string             `json:"appointmentId"`
	BookingDate   string             `json:"bookingDate"`
}

// Validate checks required fields are present. No format validation.
func (r *AppointmentRecord) Validate() error {
	if strings.TrimSpace(r.Doctor.Name) == "" {
		return ErrMissingDoctor
	}
	if strings.TrimSpace(r.Patient.Name) == "" || strings.TrimSpace(r.Patient.Email) == "" {
		return ErrMissingPatient
	}
	if strings.TrimSpace(r.AppointmentID) == "" {
		return ErrMissingAppointmentID
	}
	return nil
}

// validateCandidate decodes just enough of the raw record to run the
// per-collection presence checks. The raw bytes are what gets stored,
// so extra fields survive untouched.
func validateCandidate(collection string, raw json.RawMessage) (description string, err error) {
	switch collection {
	case CollectionSignIns:
		var rec SignInRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return "", ErrInvalidRecord
		}
		if err := rec.Validate(); err != nil {
			return "", err
		}
		return "Add patient signin: " + rec.Email, nil
	case CollectionAppointments:
		var rec AppointmentRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return "", ErrInvalidRecord
		}
		if err := rec.Validate(); err != nil {
			return "", err
		}
		return "Add appointment " + rec.AppointmentID + " for " + rec.Patient.Email, nil
	default:
		return "", ErrUnknownCollection
	}
}
