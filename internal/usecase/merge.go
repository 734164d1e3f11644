package usecase

import (
	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/dto/request"
)

// mergeCustomer applies the fields present in patch to a copy of existing.
// id and createdAt are never touched. hashedPassword replaces the stored
// hash when not empty.
func mergeCustomer(existing *entity.Customer, patch *request.CustomerUpdateRequest, hashedPassword string) *entity.Customer {
	merged := *existing

	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if hashedPassword != "" {
		merged.Password = hashedPassword
	}
	if patch.Roles != nil {
		merged.Roles = normalizeRoles(patch.Roles)
	}

	return &merged
}

func mergeUser(existing *entity.User, patch *request.UserUpdateRequest) *entity.User {
	merged := *existing

	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.FirstName != nil {
		merged.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		merged.LastName = *patch.LastName
	}

	return &merged
}

func mergePhone(existing *entity.Phone, patch *request.PhoneUpdateRequest) *entity.Phone {
	merged := *existing

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&merged.Model, patch.Model)
	assign(&merged.Manufacturer, patch.Manufacturer)
	assign(&merged.Processor, patch.Processor)
	assign(&merged.RAM, patch.RAM)
	assign(&merged.StorageCapacity, patch.StorageCapacity)
	assign(&merged.CameraDetails, patch.CameraDetails)
	assign(&merged.BatteryLife, patch.BatteryLife)
	assign(&merged.ScreenSize, patch.ScreenSize)
	assign(&merged.Price, patch.Price)

	if patch.StockQuantity != nil {
		stock := *patch.StockQuantity
		merged.StockQuantity = &stock
	}

	return &merged
}

// normalizeRoles drops duplicates. ROLE_CUSTOMER is implied and not stored.
func normalizeRoles(roles []string) []string {
	out := []string{}
	for _, role := range roles {
		if role == entity.RoleCustomer {
			continue
		}
		seen := false
		for _, r := range out {
			if r == role {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, role)
		}
	}
	return out
}
