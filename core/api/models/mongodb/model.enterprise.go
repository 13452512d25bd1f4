package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enterprise lifecycle status values.
const (
	EnterpriseStatusEnable  = "ENABLE"
	EnterpriseStatusDisable = "DISABLE"
)

// Enterprise is one tenant: a customer owning an isolated logical
// database. DBName is derived from the enterprise id at creation and
// never changes afterwards; renaming it would orphan every per-document
// data collection inside the tenant database.
type Enterprise struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"unique"`       // Display name, unique across tenants
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber" index:"unique"` // Root operator contact, unique
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	RegionCodes []string           `json:"regionCodes,omitempty" bson:"regionCodes,omitempty"` // [province, city, area] codes
	Status      string             `json:"status" bson:"status" index:"single"` // ENABLE / DISABLE
	IsDeleted   bool               `json:"isDeleted" bson:"isDeleted" index:"single"`
	StartDate   string             `json:"startDate" bson:"startDate"` // Authorization window start, YYYY-MM-DD, inclusive
	EndDate     string             `json:"endDate" bson:"endDate"`     // Authorization window end, YYYY-MM-DD, inclusive
	DBName      string             `json:"dbName" bson:"dbName"`       // Physical tenant database name, immutable
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
