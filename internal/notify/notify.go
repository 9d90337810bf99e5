// Package notify sends guest e-mails about their stay.
package notify

import (
	"context"
	"fmt"
	"strings"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
)

type Notifier interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking) error
	BookingCancelled(ctx context.Context, b *domain.Booking) error
	RoomChanged(ctx context.Context, b *domain.Booking, move domain.Move) error
}

// Message is a rendered plain text e-mail.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Body    string
}

// sender delivers a rendered message; the providers differ only here.
type sender interface {
	send(ctx context.Context, m Message) error
}

// mailer renders messages and hands them to a provider. Guests without an
// e-mail address are skipped.
type mailer struct {
	property string
	sender   sender
}

func (n *mailer) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	subject := fmt.Sprintf("%s: booking confirmed", n.property)
	body := fmt.Sprintf("Dear %s,\n\nyour stay at %s is confirmed.\n\n%s\nWe look forward to welcoming you.\n\n%s",
		b.GuestName, n.property, stayDetails(b), n.property)
	return n.deliver(ctx, b, subject, body)
}

func (n *mailer) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	subject := fmt.Sprintf("%s: booking cancelled", n.property)
	body := fmt.Sprintf("Dear %s,\n\nyour booking from %s to %s has been cancelled.\n\n%s",
		b.GuestName, b.CheckIn.Format("02/01/2006"), b.CheckOut.Format("02/01/2006"), n.property)
	return n.deliver(ctx, b, subject, body)
}

func (n *mailer) RoomChanged(ctx context.Context, b *domain.Booking, move domain.Move) error {
	subject := fmt.Sprintf("%s: your room has changed", n.property)
	body := fmt.Sprintf("Dear %s,\n\nfor your stay from %s to %s you will be hosted in room %d instead of room %d.\n\n%s",
		b.GuestName, b.CheckIn.Format("02/01/2006"), b.CheckOut.Format("02/01/2006"), move.ToRoomID, move.FromRoomID, n.property)
	return n.deliver(ctx, b, subject, body)
}

func (n *mailer) deliver(ctx context.Context, b *domain.Booking, subject, body string) error {
	if strings.TrimSpace(b.GuestEmail) == "" {
		logger.Debug("Guest has no e-mail address, notification skipped", "booking_id", b.ID)
		return nil
	}
	return n.sender.send(ctx, Message{ToName: b.GuestName, ToEmail: b.GuestEmail, Subject: subject, Body: body})
}

func stayDetails(b *domain.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Check-in: %s\nCheck-out: %s\nNights: %d\n",
		b.CheckIn.Format("02/01/2006"), b.CheckOut.Format("02/01/2006"), b.Nights())
	for _, r := range b.Rooms {
		fmt.Fprintf(&sb, "Room %d: %d guest(s)\n", r.RoomID, r.Guests)
	}
	if b.TotalPriceCents > 0 {
		fmt.Fprintf(&sb, "Price: %d.%02d EUR\n", b.TotalPriceCents/100, b.TotalPriceCents%100)
	}
	if b.TouristTaxCents > 0 {
		fmt.Fprintf(&sb, "Tourist tax: %d.%02d EUR\n", b.TouristTaxCents/100, b.TouristTaxCents%100)
	}
	return sb.String()
}

// Noop drops every notification.
type Noop struct{}

func (Noop) BookingConfirmed(ctx context.Context, b *domain.Booking) error { return nil }
func (Noop) BookingCancelled(ctx context.Context, b *domain.Booking) error { return nil }
func (Noop) RoomChanged(ctx context.Context, b *domain.Booking, move domain.Move) error {
	return nil
}
