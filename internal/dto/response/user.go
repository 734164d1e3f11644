package response

import (
	"time"

	"bilemo-api/internal/data/entity"
)

const usersPath = "/api/users"

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	Links     Links     `json:"_links"`
}

func UserToResponse(u *entity.User) UserResponse {
	path := resourcePath(usersPath, u.ID.String())
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		Links: Links{
			"self":   self(path),
			"list":   list(usersPath),
			"update": update(path),
			"create": create(usersPath),
			"delete": remove(path),
		},
	}
}
