package entity

import "time"

type Phone struct {
	Base
	Model           string    `db:"model"`
	Manufacturer    string    `db:"manufacturer"`
	Processor       string    `db:"processor"`
	RAM             string    `db:"ram"`
	StorageCapacity string    `db:"storage_capacity"`
	CameraDetails   string    `db:"camera_details"`
	BatteryLife     string    `db:"battery_life"`
	ScreenSize      string    `db:"screen_size"`
	Price           string    `db:"price"`
	StockQuantity   *string   `db:"stock_quantity"`
	ReleaseDate     time.Time `db:"release_date"`
}
