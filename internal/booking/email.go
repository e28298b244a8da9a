package booking

import (
	"fmt"
	"html"
	"strings"

	"github.com/hassannetsec/doctors-friend/internal/notify"
)

// buildConfirmationEmail renders the appointment confirmation sent to
// both the patient and the doctor.
func buildConfirmationEmail(req ConfirmRequest, receipt Receipt) notify.EmailMessage {
	subject := fmt.Sprintf("Appointment Confirmation for Dr. %s on %s", req.Doctor.Name, req.FormData.Date)

	var b strings.Builder
	b.WriteString("<html>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Appointment for Dr. %s</h1>\n", esc(req.Doctor.Name))
	b.WriteString("<h2>Patient Info</h2>\n")
	fmt.Fprintf(&b, "<p>Name: %s</p>\n", esc(req.FormData.PatientName))
	fmt.Fprintf(&b, "<p>Email: %s</p>\n", esc(req.FormData.Email))
	fmt.Fprintf(&b, "<p>Phone: %s</p>\n", esc(req.FormData.Phone))
	b.WriteString("<h2>Appointment Info</h2>\n")
	fmt.Fprintf(&b, "<p>Date: %s</p>\n", esc(req.FormData.Date))
	fmt.Fprintf(&b, "<p>Time: %s</p>\n", esc(req.FormData.Time))
	fmt.Fprintf(&b, "<p>Location: %s (%s)</p>\n", esc(req.Doctor.Hospital), esc(req.Doctor.Location))
	fmt.Fprintf(&b, "<p>Reason: %s</p>\n", esc(req.FormData.Reason))
	fmt.Fprintf(&b, "<p>Appointment ID: %s</p>\n", esc(receipt.AppointmentID))
	fmt.Fprintf(&b, "<p>Booking Date: %s</p>\n", esc(receipt.BookingDate))
	b.WriteString("</body>\n</html>")

	text := fmt.Sprintf(
		"Appointment for Dr. %s\nPatient: %s (%s, %s)\nDate: %s %s\nLocation: %s (%s)\nAppointment ID: %s\nBooking Date: %s\n",
		req.Doctor.Name, req.FormData.PatientName, req.FormData.Email, req.FormData.Phone,
		req.FormData.Date, req.FormData.Time, req.Doctor.Hospital, req.Doctor.Location,
		receipt.AppointmentID, receipt.BookingDate,
	)

	to := []string{req.FormData.Email}
	if req.Doctor.Email != "" {
		to = append(to, req.Doctor.Email)
	}
	return notify.EmailMessage{
		To:      to,
		Subject: subject,
		Body:    text,
		HTML:    b.String(),
	}
}

func esc(s string) string { return html.EscapeString(s) }
