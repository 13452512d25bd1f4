package dto

// LoginInput is the credential payload for both enterprise-user and
// platform-operator login.
type LoginInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,phone_number"` // Login phone number
	Password    string `json:"password" validate:"required,min=6"`           // Plain-text password
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token    string      `json:"token"`    // Bearer access token
	UserName string      `json:"userName"` // Display name
	Role     string      `json:"role,omitempty"`
	Profile  interface{} `json:"profile,omitempty"`
}
