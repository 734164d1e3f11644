package request

type PhoneRequest struct {
	Model           string  `json:"model" validate:"required,notblank,max=255"`
	Manufacturer    string  `json:"manufacturer" validate:"required,notblank,max=255"`
	Processor       string  `json:"processor" validate:"required,notblank,max=255"`
	RAM             string  `json:"ram" validate:"required,notblank,max=255"`
	StorageCapacity string  `json:"storageCapacity" validate:"required,notblank,max=255"`
	CameraDetails   string  `json:"cameraDetails" validate:"required,notblank,max=255"`
	BatteryLife     string  `json:"batteryLife" validate:"required,notblank,max=255"`
	ScreenSize      string  `json:"screenSize" validate:"required,notblank,max=255"`
	Price           string  `json:"price" validate:"required,notblank,max=255,price"`
	StockQuantity   *string `json:"stockQuantity" validate:"omitempty,max=255,digits"`
}

type PhoneUpdateRequest struct {
	Model           *string `json:"model" validate:"omitempty,notblank,max=255"`
	Manufacturer    *string `json:"manufacturer" validate:"omitempty,notblank,max=255"`
	Processor       *string `json:"processor" validate:"omitempty,notblank,max=255"`
	RAM             *string `json:"ram" validate:"omitempty,notblank,max=255"`
	StorageCapacity *string `json:"storageCapacity" validate:"omitempty,notblank,max=255"`
	CameraDetails   *string `json:"cameraDetails" validate:"omitempty,notblank,max=255"`
	BatteryLife     *string `json:"batteryLife" validate:"omitempty,notblank,max=255"`
	ScreenSize      *string `json:"screenSize" validate:"omitempty,notblank,max=255"`
	Price           *string `json:"price" validate:"omitempty,notblank,max=255,price"`
	StockQuantity   *string `json:"stockQuantity" validate:"omitempty,max=255,digits"`
}
