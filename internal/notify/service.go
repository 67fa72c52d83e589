// Package notify fires the SMS and email side effects of a call turn.
// Transport failures are logged and swallowed; the call never fails because
// a notification did.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/oakline/frontdesk/internal/business"
	"github.com/oakline/frontdesk/pkg/logging"
)

// SMSSender sends a single text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// bookingKeywords trigger a booking-link SMS when present in a reply.
var bookingKeywords = []string{"book", "booking", "schedule", "appointment", "reserv"}

// pricingKeywords trigger a pricing SMS. Independent of the booking check;
// both messages may fire for one reply.
var pricingKeywords = []string{"pricing", "price"}

// Service sends caller-facing SMS follow-ups and owner notifications.
type Service struct {
	sms        SMSSender
	email      EmailSender
	biz        *business.Config
	ownerEmail string
	logger     *logging.Logger
}

// NewService creates a notification service. A nil sms or email sender turns
// the corresponding notifications into silent no-ops.
func NewService(sms SMSSender, email EmailSender, biz *business.Config, ownerEmail string, logger *logging.Logger) *Service {
	if biz == nil {
		panic("notify: business config cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sms:        sms,
		email:      email,
		biz:        biz,
		ownerEmail: ownerEmail,
		logger:     logger,
	}
}

// MessageReceived confirms a recorded caller message: an SMS back to the
// caller, a booking-link SMS when one is configured, and an owner email.
func (s *Service) MessageReceived(ctx context.Context, callID, fromNumber, transcript string) {
	s.sendSMS(ctx, fromNumber, fmt.Sprintf("Thanks for calling %s. We received your message.", s.biz.BusinessName))
	if s.biz.BookingLink != "" {
		s.sendSMS(ctx, fromNumber, fmt.Sprintf("Prefer to book? %s", s.biz.BookingLink))
	}
	s.emailOwner(ctx, callID, fromNumber, transcript)
}

// MaybeSendLink scans a reply for booking and pricing intents and texts the
// matching links to the caller.
func (s *Service) MaybeSendLink(ctx context.Context, replyText, toNumber string) {
	link := s.biz.BookingLink
	if link == "" || toNumber == "" {
		return
	}
	lowered := strings.ToLower(replyText)
	if containsAny(lowered, bookingKeywords) {
		s.sendSMS(ctx, toNumber, fmt.Sprintf("Booking link: %s", link))
	}
	if containsAny(lowered, pricingKeywords) {
		s.sendSMS(ctx, toNumber, fmt.Sprintf("Pricing varies by project. Book a free discovery call here: %s", link))
	}
}

func (s *Service) sendSMS(ctx context.Context, to, body string) {
	if s.sms == nil || to == "" {
		return
	}
	if err := s.sms.SendSMS(ctx, to, body); err != nil {
		s.logger.Error("failed to send sms", "error", err, "to", to)
	}
}

func (s *Service) emailOwner(ctx context.Context, callID, fromNumber, transcript string) {
	if s.email == nil || s.ownerEmail == "" {
		return
	}
	msg := EmailMessage{
		To:      s.ownerEmail,
		Subject: fmt.Sprintf("New phone message for %s", s.biz.BusinessName),
		Body: fmt.Sprintf("Call %s from %s left a message:\n\n%s\n",
			callID, fromNumber, transcript),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("failed to send owner email", "error", err, "call_id", callID)
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
