package dto

// ColumnSpecInput declares one column of a document.
type ColumnSpecInput struct {
	DataIndex string `json:"dataIndex" validate:"required"`                       // Display name, unique within the document
	DataType  string `json:"dataType" validate:"required,oneof=DEFAULT TEXT NUMBER"` // Declared data type
}

// DocumentCreateInput declares a new document.
type DocumentCreateInput struct {
	Name      string            `json:"documentName" validate:"required"` // Unique within the tenant
	StartDate string            `json:"startDate" validate:"required,date_string"`
	EndDate   string            `json:"endDate" validate:"required,date_string"`
	LandID    string            `json:"landId,omitempty"`
	Columns   []ColumnSpecInput `json:"columnConfigList" validate:"required,min=1,dive"`
}

// DocumentUpdateInput replaces a document's profile and column
// configuration. A changed configuration also yields an advisory
// migration diff in the response.
type DocumentUpdateInput struct {
	Name      string            `json:"documentName" validate:"required"`
	StartDate string            `json:"startDate" validate:"required,date_string"`
	EndDate   string            `json:"endDate" validate:"required,date_string"`
	LandID    string            `json:"landId,omitempty"`
	Columns   []ColumnSpecInput `json:"columnConfigList" validate:"required,min=1,dive"`
}
