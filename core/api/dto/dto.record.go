package dto

// RecordInput is one row keyed by display name. The handler hands the
// map to the record store, which checks it against the declared
// schema.
type RecordInput struct {
	Values map[string]interface{} `json:"values" validate:"required"`
}

// RecordImportInput loads many rows at once.
type RecordImportInput struct {
	Mode string                   `json:"mode" validate:"required,oneof=APPEND COVER"` // APPEND keeps existing rows, COVER replaces them
	Rows []map[string]interface{} `json:"rows" validate:"required"`
}
