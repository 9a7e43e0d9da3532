// Package user holds the user list data model.
package user

// User is a board member.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// State is the user store's state. CurrentUserID is a selection pointer that
// is not validated against Users and survives removal of the user it names.
type State struct {
	Users         []User  `json:"users"`
	CurrentUserID *string `json:"currentUserId"`
}

// Initial returns the empty user list with no selection.
func Initial() State {
	return State{Users: []User{}}
}
