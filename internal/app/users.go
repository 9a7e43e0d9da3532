package app

import (
	"github.com/jsamuelsen11/boardstate/internal/domain/user"
	"github.com/jsamuelsen11/boardstate/internal/platform/idgen"
	"github.com/jsamuelsen11/boardstate/internal/ports"
	"github.com/jsamuelsen11/boardstate/internal/state"
	"github.com/jsamuelsen11/boardstate/internal/store"
)

// UserStoreName is the durable slot of the user store.
const UserStoreName = "user-store"

// UserActions are the user list mutations.
type UserActions struct {
	set   state.Setter[user.State]
	newID idgen.Func
}

// AddUser appends a new user.
func (a UserActions) AddUser(name, email string) {
	id := a.newID()
	a.set(func(s user.State) user.State {
		users := make([]user.User, 0, len(s.Users)+1)
		users = append(users, s.Users...)
		s.Users = append(users, user.User{ID: id, Name: name, Email: email})
		return s
	})
}

// RemoveUser deletes the user with the given id. The current-user selection
// is left alone even if it names the removed user.
func (a UserActions) RemoveUser(id string) {
	a.set(func(s user.State) user.State {
		users := make([]user.User, 0, len(s.Users))
		for _, u := range s.Users {
			if u.ID != id {
				users = append(users, u)
			}
		}
		s.Users = users
		return s
	})
}

// SetCurrentUser selects id, or clears the selection when id is nil. The id
// is not checked against the user list.
func (a UserActions) SetCurrentUser(id *string) {
	if id != nil {
		v := *id
		id = &v
	}
	a.set(func(s user.State) user.State {
		s.CurrentUserID = id
		return s
	})
}

var _ ports.UserDirectory = (*UserStore)(nil)

// UserStore is the persisted user list.
type UserStore struct {
	*store.Handle[user.State, UserActions]
	UserActions
}

// NewUserStore builds the user store with no users. It performs no I/O.
func NewUserStore(storage ports.DurableStorage, opts ...Option) *UserStore {
	o := newOptions(opts)
	h := store.Create(UserStoreName, user.Initial(),
		func(set state.Setter[user.State]) UserActions {
			return UserActions{set: set, newID: o.newID}
		},
		storage, o.storeOpts...)
	return &UserStore{Handle: h, UserActions: h.Actions()}
}

// CurrentUser resolves the selection. It reports false when nothing is
// selected or the selected user no longer exists.
func (s *UserStore) CurrentUser() (user.User, bool) {
	st := s.State()
	if st.CurrentUserID == nil {
		return user.User{}, false
	}
	for _, u := range st.Users {
		if u.ID == *st.CurrentUserID {
			return u, true
		}
	}
	return user.User{}, false
}
