package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User role values.
const (
	UserRoleAdmin  = "ADMIN"
	UserRoleMember = "MEMBER"
)

// User is an enterprise user. IsRoot marks the enterprise's
// non-deletable root identity; every enterprise keeps exactly one root
// user at all times.
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PhoneNumber  string             `json:"phoneNumber" bson:"phoneNumber" index:"unique"`
	Password     string             `json:"-" bson:"password"` // bcrypt hash
	UserName     string             `json:"userName" bson:"userName"`
	Role         string             `json:"role" bson:"role"` // ADMIN / MEMBER
	EnterpriseID primitive.ObjectID `json:"enterpriseId" bson:"enterpriseId" index:"single"`
	IsRoot       bool               `json:"isRoot" bson:"isRoot"`
	IsDeleted    bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// AdminUser is a control-plane operator. Admin users never resolve to
// a tenant database and are exempt from enterprise lifecycle checks.
type AdminUser struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber" index:"unique"`
	Password    string             `json:"-" bson:"password"` // bcrypt hash
	UserName    string             `json:"userName" bson:"userName"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
