package dto

// UserCreateInput adds a user to the caller's enterprise.
type UserCreateInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,phone_number"` // Login phone number (unique)
	Password    string `json:"password" validate:"required,min=6"`
	UserName    string `json:"userName" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

// UserUpdateInput updates a user profile. Empty fields are left
// unchanged.
type UserUpdateInput struct {
	UserName string `json:"userName,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN MEMBER"`
}
