package dto

// EnterpriseCreateInput creates a tenant together with its root user.
type EnterpriseCreateInput struct {
	Name        string   `json:"name" validate:"required"`                     // Enterprise display name (unique)
	PhoneNumber string   `json:"phoneNumber" validate:"required,phone_number"` // Root user login (unique)
	Password    string   `json:"password" validate:"required,min=6"`           // Root user initial password
	Address     string   `json:"address,omitempty"`
	RegionCodes []string `json:"regionCodes,omitempty" validate:"omitempty,len=3"` // [province, city, area] codes
	StartDate   string   `json:"startDate" validate:"required,date_string"`        // Authorization window start, inclusive
	EndDate     string   `json:"endDate" validate:"required,date_string"`          // Authorization window end, inclusive
}

// EnterpriseUpdateInput updates a tenant profile. An empty password
// keeps the root user's current credential.
type EnterpriseUpdateInput struct {
	Name        string   `json:"name" validate:"required"`
	PhoneNumber string   `json:"phoneNumber" validate:"required,phone_number"`
	Password    string   `json:"password,omitempty" validate:"omitempty,min=6"`
	Address     string   `json:"address,omitempty"`
	RegionCodes []string `json:"regionCodes,omitempty" validate:"omitempty,len=3"`
	StartDate   string   `json:"startDate" validate:"required,date_string"`
	EndDate     string   `json:"endDate" validate:"required,date_string"`
}

// EnterpriseStatusInput toggles a tenant's lifecycle status.
type EnterpriseStatusInput struct {
	Status string `json:"status" validate:"required,oneof=ENABLE DISABLE"`
}
