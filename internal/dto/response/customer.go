package response

import (
	"time"

	"bilemo-api/internal/data/entity"
)

const customersPath = "/api/customers"

type CustomerResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Roles     []string      `json:"roles"`
	CreatedAt time.Time     `json:"createdAt"`
	Users     []UserSummary `json:"users"`
	Links     Links         `json:"_links"`
}

// UserSummary is a user as nested in a customer representation.
type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CustomerToResponse shapes the customer with its linked users. Write links
// are only added for admins.
func CustomerToResponse(c *entity.Customer, admin bool) CustomerResponse {
	users := make([]UserSummary, 0, len(c.Users()))
	for _, u := range c.Users() {
		users = append(users, UserSummary{
			ID:        u.ID.String(),
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}

	resp := CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Roles:     c.GetRoles(),
		CreatedAt: c.CreatedAt,
		Users:     users,
		Links: Links{
			"self": self(resourcePath(customersPath, c.ID.String())),
			"list": list(customersPath),
		},
	}
	if admin {
		resp.WithAdminLinks()
	}
	return resp
}

func (r *CustomerResponse) WithAdminLinks() {
	if r.Links == nil {
		r.Links = Links{}
	}
	r.Links["update"] = update(resourcePath(customersPath, r.ID))
	r.Links["delete"] = remove(resourcePath(customersPath, r.ID))
}
