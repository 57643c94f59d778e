package core

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// UserView is the public representation of an API user, without credentials.
type UserView struct {
	ID        UserID    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserView drops the password hash from a stored user.
func ToUserView(user librarystore.User) UserView {
	return UserView{ID: user.ID, Username: user.Username, CreatedAt: user.CreatedAt}
}
