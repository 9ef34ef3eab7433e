package models

import "time"

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// State filters accepted by the booking listing endpoints.
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StatePast     = "PAST"
	StateFuture   = "FUTURE"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

type Booking struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
	Status   string    `json:"status"`
}

// BookingInfo is the short booking view embedded into owner item payloads.
type BookingInfo struct {
	ID        int64     `json:"id"`
	BookerID  int64     `json:"bookerId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// BookingDetails is the booking payload with the booker and item resolved.
type BookingDetails struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker User      `json:"booker"`
	Item   Item      `json:"item"`
}

func (b *Booking) Info() *BookingInfo {
	if b == nil {
		return nil
	}
	return &BookingInfo{ID: b.ID, BookerID: b.BookerID, StartDate: b.Start, EndDate: b.End}
}

func (b *Booking) Details(booker User, item Item) BookingDetails {
	return BookingDetails{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: booker,
		Item:   item,
	}
}
