package booking

import (
	"strings"

	"github.com/hassannetsec/doctors-friend/internal/catalog"
)

// FormData is what the patient fills in on the booking form.
type FormData struct {
	PatientName string `json:"patientName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
}

// Receipt identifies one confirmed booking. Missing fields are filled
// in server-side before the appointment is persisted.
type Receipt struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	BookingDate   string `json:"bookingDate"`
	PatientEmail  string `json:"patientEmail"`
}

// ConfirmRequest is the POST /appointment-notifications payload.
type ConfirmRequest struct {
	Doctor      catalog.Doctor `json:"doctor"`
	FormData    FormData       `json:"formData"`
	ReceiptData Receipt        `json:"receiptData"`
}

// Validate checks required fields are present.
func (r *ConfirmRequest) Validate() error {
	if strings.TrimSpace(r.Doctor.Name) == "" {
		return ErrMissingDoctor
	}
	if strings.TrimSpace(r.FormData.PatientName) == "" {
		return ErrMissingPatientName
	}
	if strings.TrimSpace(r.FormData.Email) == "" {
		return ErrMissingPatientEmail
	}
	return nil
}
