package queue

import (
    "strings"
    "testing"
)

// TestFormatNotificationBooking renders a booking event as one log line.
func TestFormatNotificationBooking(t *testing.T) {
    line, err := formatNotification(Notification{
        Kind: KindBookingCreated,
        Booking: &BookingCreatedEvent{
            BookingID:    12,
            UserID:       4,
            TourSlug:     "silk-road-classic",
            BookingDate:  "2026-09-15",
            Participants: 3,
            TotalCents:   375000,
            CreatedAt:    "2026-08-30T10:00:00Z",
        },
    })
    if err != nil {
        t.Fatalf("formatNotification returned error: %v", err)
    }
    for _, want := range []string{"booking_id=12", "tour=\"silk-road-classic\"", "participants=3", "total=375000 cents"} {
        if !strings.Contains(line, want) {
            t.Errorf("line missing %q: %s", want, line)
        }
    }
    if !strings.HasSuffix(line, "\n") {
        t.Fatal("log lines must end with a newline")
    }
}

// TestFormatNotificationKinds renders the two request kinds and rejects
// envelopes whose payload does not match their kind.
func TestFormatNotificationKinds(t *testing.T) {
    if line, err := formatNotification(Notification{
        Kind:   KindTicketRequested,
        Ticket: &TicketRequestedEvent{RequestID: 5, Route: "Tashkent - Samarkand", FullName: "Aziz Karimov", Phone: "+998901234567", TravelDate: "2026-09-01", Passengers: 2},
    }); err != nil || !strings.Contains(line, "request_id=5") {
        t.Fatalf("ticket line = %q, err = %v", line, err)
    }

    if line, err := formatNotification(Notification{
        Kind:     KindTransferBooked,
        Transfer: &TransferBookedEvent{BookingID: 8, FromCity: "Tashkent", ToCity: "Samarkand", FullName: "Aziz Karimov", Phone: "+998901234567", PickupDate: "2026-09-01", Passengers: 2},
    }); err != nil || !strings.Contains(line, "route=\"Tashkent - Samarkand\"") {
        t.Fatalf("transfer line = %q, err = %v", line, err)
    }

    if _, err := formatNotification(Notification{Kind: KindBookingCreated}); err == nil {
        t.Fatal("missing payload must be rejected")
    }
    if _, err := formatNotification(Notification{Kind: "unknown.kind"}); err == nil {
        t.Fatal("unknown kind must be rejected")
    }
}
