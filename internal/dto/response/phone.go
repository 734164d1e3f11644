package response

import (
	"time"

	"bilemo-api/internal/data/entity"
)

const phonesPath = "/api/phones"

type PhoneResponse struct {
	ID              string    `json:"id"`
	Model           string    `json:"model"`
	Manufacturer    string    `json:"manufacturer"`
	Processor       string    `json:"processor"`
	RAM             string    `json:"ram"`
	StorageCapacity string    `json:"storageCapacity"`
	CameraDetails   string    `json:"cameraDetails"`
	BatteryLife     string    `json:"batteryLife"`
	ScreenSize      string    `json:"screenSize"`
	Price           string    `json:"price"`
	StockQuantity   *string   `json:"stockQuantity"`
	ReleaseDate     time.Time `json:"releaseDate"`
	Links           Links     `json:"_links"`
}

func PhoneToResponse(p *entity.Phone, admin bool) PhoneResponse {
	resp := PhoneResponse{
		ID:              p.ID.String(),
		Model:           p.Model,
		Manufacturer:    p.Manufacturer,
		Processor:       p.Processor,
		RAM:             p.RAM,
		StorageCapacity: p.StorageCapacity,
		CameraDetails:   p.CameraDetails,
		BatteryLife:     p.BatteryLife,
		ScreenSize:      p.ScreenSize,
		Price:           p.Price,
		StockQuantity:   p.StockQuantity,
		ReleaseDate:     p.ReleaseDate,
		Links: Links{
			"self": self(resourcePath(phonesPath, p.ID.String())),
			"list": list(phonesPath),
		},
	}
	if admin {
		resp.WithAdminLinks()
	}
	return resp
}

func (r *PhoneResponse) WithAdminLinks() {
	if r.Links == nil {
		r.Links = Links{}
	}
	r.Links["update"] = update(resourcePath(phonesPath, r.ID))
	r.Links["delete"] = remove(resourcePath(phonesPath, r.ID))
}
