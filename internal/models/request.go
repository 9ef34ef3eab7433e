package models

import "time"

// ItemRequest is a posted want-ad for an item not yet listed.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	CreatorID   int64     `json:"-"`
	Created     time.Time `json:"created"`
}

// ItemRequestDetails annotates a request with the items answering it.
type ItemRequestDetails struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	Created     time.Time   `json:"created"`
	Items       []ItemShort `json:"items"`
}

func (r *ItemRequest) Details(items []ItemShort) ItemRequestDetails {
	if items == nil {
		items = []ItemShort{}
	}
	return ItemRequestDetails{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       items,
	}
}
