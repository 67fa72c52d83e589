package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oakline/frontdesk/internal/business"
)

type recordingSMS struct {
	sent []string
	err  error
}

func (r *recordingSMS) SendSMS(ctx context.Context, to, body string) error {
	r.sent = append(r.sent, body)
	return r.err
}

type recordingEmail struct {
	sent []EmailMessage
}

func (r *recordingEmail) Send(ctx context.Context, msg EmailMessage) error {
	r.sent = append(r.sent, msg)
	return nil
}

func testBiz() *business.Config {
	return &business.Config{
		BusinessName: "Acme Plumbing",
		BookingLink:  "https://example.com/book",
	}
}

func TestMaybeSendLinkBookingOnly(t *testing.T) {
	sms := &recordingSMS{}
	svc := NewService(sms, nil, testBiz(), "", nil)

	svc.MaybeSendLink(context.Background(), "I can book you in on Friday.", "+1555")
	if len(sms.sent) != 1 {
		t.Fatalf("expected exactly one SMS, got %d", len(sms.sent))
	}
	if !strings.Contains(sms.sent[0], "Booking link:") {
		t.Fatalf("expected booking link SMS, got %q", sms.sent[0])
	}
}

func TestMaybeSendLinkBookingAndPricing(t *testing.T) {
	sms := &recordingSMS{}
	svc := NewService(sms, nil, testBiz(), "", nil)

	svc.MaybeSendLink(context.Background(), "Pricing depends on the job; you can schedule a visit.", "+1555")
	if len(sms.sent) != 2 {
		t.Fatalf("expected both SMS to fire, got %d", len(sms.sent))
	}
}

func TestMaybeSendLinkNoMatch(t *testing.T) {
	sms := &recordingSMS{}
	svc := NewService(sms, nil, testBiz(), "", nil)

	svc.MaybeSendLink(context.Background(), "We open at nine tomorrow.", "+1555")
	if len(sms.sent) != 0 {
		t.Fatalf("expected no SMS, got %v", sms.sent)
	}
}

func TestMaybeSendLinkNoopWithoutLinkOrNumber(t *testing.T) {
	sms := &recordingSMS{}
	biz := testBiz()
	biz.BookingLink = ""
	NewService(sms, nil, biz, "", nil).MaybeSendLink(context.Background(), "book now", "+1555")
	if len(sms.sent) != 0 {
		t.Fatalf("expected no SMS without booking link")
	}

	NewService(sms, nil, testBiz(), "", nil).MaybeSendLink(context.Background(), "book now", "")
	if len(sms.sent) != 0 {
		t.Fatalf("expected no SMS without destination number")
	}
}

func TestMaybeSendLinkSwallowsSendFailure(t *testing.T) {
	sms := &recordingSMS{err: errors.New("carrier down")}
	svc := NewService(sms, nil, testBiz(), "", nil)
	// Must not panic or propagate.
	svc.MaybeSendLink(context.Background(), "book now", "+1555")
}

func TestMessageReceived(t *testing.T) {
	sms := &recordingSMS{}
	email := &recordingEmail{}
	svc := NewService(sms, email, testBiz(), "owner@example.com", nil)

	svc.MessageReceived(context.Background(), "CA1", "+1555", "John, call me back")
	if len(sms.sent) != 2 {
		t.Fatalf("expected confirmation and booking SMS, got %d", len(sms.sent))
	}
	if !strings.Contains(sms.sent[0], "Acme Plumbing") {
		t.Fatalf("expected business name in confirmation, got %q", sms.sent[0])
	}
	if !strings.Contains(sms.sent[1], "Prefer to book?") {
		t.Fatalf("expected booking offer, got %q", sms.sent[1])
	}
	if len(email.sent) != 1 {
		t.Fatalf("expected owner email, got %d", len(email.sent))
	}
	if email.sent[0].To != "owner@example.com" || !strings.Contains(email.sent[0].Body, "John, call me back") {
		t.Fatalf("unexpected owner email %#v", email.sent[0])
	}
}

func TestMessageReceivedNoBookingLink(t *testing.T) {
	sms := &recordingSMS{}
	biz := testBiz()
	biz.BookingLink = ""
	svc := NewService(sms, nil, biz, "", nil)

	svc.MessageReceived(context.Background(), "CA1", "+1555", "hi")
	if len(sms.sent) != 1 {
		t.Fatalf("expected only the confirmation SMS, got %d", len(sms.sent))
	}
}
