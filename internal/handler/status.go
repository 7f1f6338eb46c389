package handler

import "github.com/davronbekm/silkroad-booking/internal/repository"

// Display classes for status badges. Clients map these to colors without
// having to know the full status vocabulary.
const (
    StatusClassPositive = "positive"
    StatusClassNegative = "negative"
    StatusClassNeutral  = "neutral"
)

// StatusClass maps a booking or request status to its display class.
// Confirmed and done are positive, cancelled is negative, everything else
// (pending included, and any status added later) is neutral.
func StatusClass(status string) string {
    switch status {
    case repository.BookingStatusConfirmed, repository.RequestStatusDone:
        return StatusClassPositive
    case repository.BookingStatusCancelled:
        return StatusClassNegative
    default:
        return StatusClassNeutral
    }
}
