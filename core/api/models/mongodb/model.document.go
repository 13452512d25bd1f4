package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Column data type values. DEFAULT marks one of the six reserved
// breeding-record columns; those store values under the bare display
// name and are exempt from the schema diff machinery.
const (
	ColumnTypeDefault = "DEFAULT"
	ColumnTypeText    = "TEXT"
	ColumnTypeNumber  = "NUMBER"
)

// DefaultColumns are the six reserved display names available in every
// document without re-declaration.
var DefaultColumns = []string{"种子名称", "种子编号", "父本", "母本", "审定", "审定编号"}

// IsDefaultColumn reports whether name is one of the reserved columns.
func IsDefaultColumn(name string) bool {
	for _, c := range DefaultColumns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnSpec declares one column of a document: a display name and its
// declared data type.
type ColumnSpec struct {
	DataIndex string `json:"dataIndex" bson:"dataIndex"` // Display name, unique within the document
	DataType  string `json:"dataType" bson:"dataType"`   // DEFAULT / TEXT / NUMBER
}

// StorageKey returns the physical field name a record stores this
// column's value under: the bare display name for reserved columns,
// "{name}_{type}" for user-declared ones.
func (c ColumnSpec) StorageKey() string {
	if IsDefaultColumn(c.DataIndex) {
		return c.DataIndex
	}
	return c.DataIndex + "_" + c.DataType
}

// Document is one user-declared record type. Its rows live in a
// dedicated tenant-database collection named from the document id.
type Document struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"documentName" bson:"documentName" index:"single"` // Unique within the tenant (checked by the service)
	StartDate    string             `json:"startDate" bson:"startDate"`                      // Breeding cycle start, YYYY-MM-DD
	EndDate      string             `json:"endDate" bson:"endDate"`                          // Breeding cycle end, YYYY-MM-DD
	LandID       string             `json:"landId" bson:"landId"`
	Columns      []ColumnSpec       `json:"columnConfigList" bson:"columnConfigList"`
	CreateUserID string             `json:"createUserId,omitempty" bson:"createUserId,omitempty"`
	UpdateUserID string             `json:"updateUserId,omitempty" bson:"updateUserId,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// RecordCollectionName returns the tenant-database collection holding
// this document's rows. Keeping each document's rows physically apart
// lets a full wipe be a collection drop instead of a filtered delete.
func RecordCollectionName(documentID primitive.ObjectID) string {
	return "data_" + documentID.Hex()
}

// Land is a field plot a document references. Status flips to USED
// while at least one document points at it.
type Land struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"landName" bson:"landName"`
	Longitude float64            `json:"longitude" bson:"longitude"`
	Latitude  float64            `json:"latitude" bson:"latitude"`
	Status    string             `json:"status" bson:"status"` // USED / UNUSED
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
