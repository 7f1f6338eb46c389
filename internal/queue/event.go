// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a customer books a tour. It carries
// enough information for downstream consumers to notify operators or feed
// analytics without querying the primary database.
type BookingCreatedEvent struct {
    BookingID    uint64 `json:"booking_id"`
    UserID       uint64 `json:"user_id"`
    TourID       uint64 `json:"tour_id"`
    TourSlug     string `json:"tour_slug"`
    TourTitle    string `json:"tour_title"`
    BookingDate  string `json:"booking_date"`
    Participants uint32 `json:"participants"`
    TotalCents   uint32 `json:"total_cents"`
    CreatedAt    string `json:"created_at"`
}

// TicketRequestedEvent is published when a visitor asks an operator to
// arrange a train ticket.
type TicketRequestedEvent struct {
    RequestID   uint64 `json:"request_id"`
    TicketID    uint64 `json:"ticket_id"`
    Route       string `json:"route"`
    FullName    string `json:"full_name"`
    Phone       string `json:"phone"`
    Email       string `json:"email"`
    TravelDate  string `json:"travel_date"`
    Passengers  uint32 `json:"passengers"`
    RequestedAt string `json:"requested_at"`
}

// TransferBookedEvent is published when a visitor requests an airport or
// intercity transfer.
type TransferBookedEvent struct {
    BookingID   uint64 `json:"booking_id"`
    TransferID  uint64 `json:"transfer_id"`
    FromCity    string `json:"from_city"`
    ToCity      string `json:"to_city"`
    FullName    string `json:"full_name"`
    Phone       string `json:"phone"`
    PickupDate  string `json:"pickup_date"`
    Passengers  uint32 `json:"passengers"`
    RequestedAt string `json:"requested_at"`
}

// Notification is the envelope every operator-facing event is published
// inside. Exactly one of the payload pointers is set, matching Kind.
type Notification struct {
    Kind     string                `json:"kind"` // booking.created | ticket.requested | transfer.booked
    Booking  *BookingCreatedEvent  `json:"booking,omitempty"`
    Ticket   *TicketRequestedEvent `json:"ticket,omitempty"`
    Transfer *TransferBookedEvent  `json:"transfer,omitempty"`
}

// Kinds of operator notifications.
const (
    KindBookingCreated  = "booking.created"
    KindTicketRequested = "ticket.requested"
    KindTransferBooked  = "transfer.booked"
)
