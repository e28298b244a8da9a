// Package booking confirms appointments: it persists the confirmation
// record and notifies patient and doctor by email. The two steps are
// deliberately independent so a booking is never lost just because
// outbound mail failed.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hassannetsec/doctors-friend/internal/notify"
	"github.com/hassannetsec/doctors-friend/internal/observability/metrics"
	"github.com/hassannetsec/doctors-friend/internal/registration"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Service coordinates the confirmation flow.
type Service struct {
	gateway *registration.Gateway
	email   notify.EmailSender
	metrics *metrics.BookingMetrics
	logger  *logging.Logger

	now   func() time.Time
	newID func() string
}

// ConfirmResult reports both outcomes separately; callers decide how to
// surface each.
type ConfirmResult struct {
	Receipt     Receipt
	RecordSaved bool
	SaveErr     error
	EmailErr    error
}

// NewService creates the booking service. metrics may be nil.
func NewService(gateway *registration.Gateway, email notify.EmailSender, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		gateway: gateway,
		email:   email,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Confirm fills in the receipt, appends the appointment record and
// sends the confirmation email. Persistence runs first and its failure
// never blocks the email; email failure never rolls back the record.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) ConfirmResult {
	receipt := s.fillReceipt(req)

	record := registration.AppointmentRecord{
		Doctor: registration.AppointmentDoctor{
			Name:     req.Doctor.Name,
			Email:    req.Doctor.Email,
			Hospital: req.Doctor.Hospital,
			Location: req.Doctor.Location,
		},
		Patient: registration.AppointmentPatient{
			Name:  req.FormData.PatientName,
			Email: req.FormData.Email,
			Phone: req.FormData.Phone,
		},
		AppointmentID: receipt.AppointmentID,
		BookingDate:   receipt.BookingDate,
	}

	result := ConfirmResult{Receipt: receipt}

	raw, err := json.Marshal(record)
	if err != nil {
		result.SaveErr = fmt.Errorf("booking: encode record: %w", err)
	} else if _, err := s.gateway.Submit(ctx, registration.CollectionAppointments, raw); err != nil {
		result.SaveErr = err
	} else {
		result.RecordSaved = true
	}
	if result.SaveErr != nil {
		s.logger.Error("appointment record not saved",
			"appointment_id", receipt.AppointmentID,
			"error", result.SaveErr,
		)
	}

	msg := buildConfirmationEmail(req, receipt)
	if err := s.email.Send(ctx, msg); err != nil {
		s.metrics.ObserveEmail(s.email.Provider(), "error")
		s.logger.Error("confirmation email failed",
			"appointment_id", receipt.AppointmentID,
			"error", err,
		)
		result.EmailErr = fmt.Errorf("booking: %w: %v", ErrEmailDeliveryFailed, err)
	} else {
		s.metrics.ObserveEmail(s.email.Provider(), "sent")
	}

	return result
}

// fillReceipt honors client-supplied receipt fields and mints the rest.
func (s *Service) fillReceipt(req ConfirmRequest) Receipt {
	receipt := req.ReceiptData
	if receipt.AppointmentID == "" {
		receipt.AppointmentID = s.newID()
	}
	if receipt.PatientID == "" {
		receipt.PatientID = s.newID()
	}
	if receipt.BookingDate == "" {
		receipt.BookingDate = s.now().UTC().Format(time.RFC3339)
	}
	if receipt.PatientEmail == "" {
		receipt.PatientEmail = req.FormData.Email
	}
	return receipt
}
