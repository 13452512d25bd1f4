package dto

// LandCreateInput registers a field plot.
type LandCreateInput struct {
	Name      string  `json:"landName" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required"`
}

// LandUpdateInput updates a plot's name and coordinates.
type LandUpdateInput struct {
	Name      string  `json:"landName" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required"`
}
