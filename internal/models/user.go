package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch carries partial update fields. Nil means "leave unchanged",
// a blank string is ignored as well.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
