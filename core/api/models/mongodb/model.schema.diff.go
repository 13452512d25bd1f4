package models

// Schema diff entry kinds. A rename is modeled as delete-old plus
// add-new; there is no rename primitive.
const (
	SchemaDiffAdd        = "add"
	SchemaDiffDelete     = "delete"
	SchemaDiffChangeType = "change_type"
)

// SchemaDiffEntry describes one change between two column
// configurations of the same document. The diff is advisory metadata:
// it never rewrites rows by itself. ArchivedKey embeds the change
// timestamp so the same display name can be edited repeatedly without
// key collisions.
type SchemaDiffEntry struct {
	Kind        string `json:"kind" bson:"kind"`                                 // add / delete / change_type
	RawColumn   string `json:"rawColumn,omitempty" bson:"rawColumn,omitempty"`   // Old storage key (delete, change_type)
	ArchivedKey string `json:"archivedKey,omitempty" bson:"archivedKey,omitempty"` // "{rawColumn}_{YYYYMMDDHHMMSS}"
	NewColumn   string `json:"newColumn,omitempty" bson:"newColumn,omitempty"`   // New storage key (add, change_type)
}
