package models

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemShort is the reduced item view attached to item requests.
type ItemShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// ItemDetails is the full item payload: the item itself plus the owner-only
// booking info and the comment list.
type ItemDetails struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Available   bool         `json:"available"`
	LastBooking *BookingInfo `json:"lastBooking"`
	NextBooking *BookingInfo `json:"nextBooking"`
	Comments    []Comment    `json:"comments"`
	RequestID   *int64       `json:"requestId"`
}

func (i *Item) Short() ItemShort {
	return ItemShort{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}

func (i *Item) Details(last, next *Booking, comments []Comment) ItemDetails {
	if comments == nil {
		comments = []Comment{}
	}
	return ItemDetails{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		LastBooking: last.Info(),
		NextBooking: next.Info(),
		Comments:    comments,
		RequestID:   i.RequestID,
	}
}
