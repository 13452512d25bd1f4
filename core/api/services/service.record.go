package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
)

// Bulk import modes.
const (
	ImportModeAppend = "APPEND" // add rows after the existing ones
	ImportModeCover  = "COVER"  // replace every existing row
)

// QRCodeField is the optional per-row field carrying a generated QR
// image reference. It is not part of the declared schema and travels
// with the row as-is.
const QRCodeField = "二维码"

// recordMetaFields are bookkeeping keys in a stored row, never part of
// the declared schema.
var recordMetaFields = map[string]bool{
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
}

// RecordService is the row store of one document. Rows are submitted
// and returned keyed by display name; physically they are stored under
// storage keys in the document's data collection.
type RecordService struct {
	collection *mongo.Collection
	doc        models.Document
	base       *BaseServiceMongoImpl[bson.M]
}

// NewRecordService binds a record store to one document inside a
// tenant database.
func NewRecordService(db *mongo.Database, doc models.Document) *RecordService {
	col := db.Collection(models.RecordCollectionName(doc.ID))
	return &RecordService{
		collection: col,
		doc:        doc,
		base:       NewBaseServiceMongo[bson.M](col),
	}
}

// ValidateColumns checks a submitted row against the declared schema.
// The row must carry exactly the declared display names: anything
// declared but absent is missing, anything present but undeclared is
// extra, and either kind fails the whole row.
func (s *RecordService) ValidateColumns(row map[string]interface{}) error {
	declared := make(map[string]bool, len(s.doc.Columns))
	for _, col := range s.doc.Columns {
		declared[col.DataIndex] = true
	}

	var extra []string
	for name := range row {
		if recordMetaFields[name] || name == QRCodeField {
			continue
		}
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	var missing []string
	for _, col := range s.doc.Columns {
		if _, ok := row[col.DataIndex]; !ok {
			missing = append(missing, col.DataIndex)
		}
	}

	if len(extra) > 0 || len(missing) > 0 {
		sort.Strings(extra)
		return common.NewSchemaMismatchError(extra, missing)
	}
	return nil
}

// toStored maps a display-name row onto storage keys.
func (s *RecordService) toStored(row map[string]interface{}) bson.M {
	stored := bson.M{}
	for _, col := range s.doc.Columns {
		if value, ok := row[col.DataIndex]; ok {
			stored[col.StorageKey()] = value
		}
	}
	if qr, ok := row[QRCodeField]; ok {
		stored[QRCodeField] = qr
	}
	return stored
}

// toDisplay maps a stored row back onto display names. Values written
// under storage keys the current schema no longer declares (archived
// keys included) stay hidden.
func (s *RecordService) toDisplay(stored bson.M) map[string]interface{} {
	row := map[string]interface{}{}
	if id, ok := stored["_id"].(primitive.ObjectID); ok {
		row["id"] = id.Hex()
	}
	for _, col := range s.doc.Columns {
		if value, ok := stored[col.StorageKey()]; ok {
			row[col.DataIndex] = value
		} else {
			row[col.DataIndex] = nil
		}
	}
	if qr, ok := stored[QRCodeField]; ok {
		row[QRCodeField] = qr
	}
	return row
}

// exportRow is toDisplay without the row id. An export feeds ImportBulk,
// where the id would read as an undeclared column.
func (s *RecordService) exportRow(stored bson.M) map[string]interface{} {
	row := s.toDisplay(stored)
	delete(row, "id")
	return row
}

// Create validates and stores one row, returning it in display form.
func (s *RecordService) Create(ctx context.Context, row map[string]interface{}) (map[string]interface{}, error) {
	if err := s.ValidateColumns(row); err != nil {
		return nil, err
	}
	stored := s.toStored(row)
	now := time.Now().UnixMilli()
	stored["createdAt"] = now
	stored["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, stored)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	stored["_id"] = result.InsertedID
	return s.toDisplay(stored), nil
}

// FindByID returns one row in display form.
func (s *RecordService) FindByID(ctx context.Context, id primitive.ObjectID) (map[string]interface{}, error) {
	stored, err := s.base.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDisplay(stored), nil
}

// Update validates and replaces the values of one row.
func (s *RecordService) Update(ctx context.Context, id primitive.ObjectID, row map[string]interface{}) (map[string]interface{}, error) {
	if err := s.ValidateColumns(row); err != nil {
		return nil, err
	}
	stored, err := s.base.UpdateById(ctx, id, s.toStored(row))
	if err != nil {
		return nil, err
	}
	return s.toDisplay(stored), nil
}

// Delete removes one row.
func (s *RecordService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.base.DeleteById(ctx, id)
}

// searchFilter builds the List query. Filtering needs both a column
// and a value; either one alone leaves the query unconstrained.
func (s *RecordService) searchFilter(filterColumn, filterValue string) (bson.M, error) {
	if filterColumn == "" || filterValue == "" {
		return bson.M{}, nil
	}
	byName := make(map[string]models.ColumnSpec, len(s.doc.Columns))
	for _, col := range s.doc.Columns {
		byName[col.DataIndex] = col
	}
	col, ok := byName[filterColumn]
	if !ok {
		return nil, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Unknown filter column %s", filterColumn), common.StatusBadRequest, nil)
	}
	return bson.M{col.StorageKey(): bson.M{"$regex": filterValue}}, nil
}

// List pages through the rows, optionally filtered by one column: a
// case-sensitive contains-match on the column's stored value. The
// filter column must be declared.
func (s *RecordService) List(ctx context.Context, filterColumn, filterValue string, page, limit int64) (*models.PaginateResult[map[string]interface{}], error) {
	query, err := s.searchFilter(filterColumn, filterValue)
	if err != nil {
		return nil, err
	}

	paged, err := s.base.FindWithPagination(ctx, query, page, limit, nil)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, len(paged.Items))
	for i, stored := range paged.Items {
		items[i] = s.toDisplay(stored)
	}
	return &models.PaginateResult[map[string]interface{}]{
		Page:      paged.Page,
		Limit:     paged.Limit,
		ItemCount: paged.ItemCount,
		Items:     items,
		Total:     paged.Total,
		TotalPage: paged.TotalPage,
	}, nil
}

// ImportBulk loads many rows at once. APPEND adds them after the
// existing rows; COVER clears the collection first and then inserts.
// Every row is validated before anything is written, so a malformed
// payload never touches the store. The write itself is not
// transactional: if an insert fails midway the error says whether the
// existing rows had already been cleared.
func (s *RecordService) ImportBulk(ctx context.Context, rows []map[string]interface{}, mode string) (int, error) {
	if mode != ImportModeAppend && mode != ImportModeCover {
		return 0, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Unknown import mode %s", mode), common.StatusBadRequest, nil)
	}

	now := time.Now().UnixMilli()
	stored := make([]interface{}, len(rows))
	for i, row := range rows {
		if err := s.ValidateColumns(row); err != nil {
			if typed, ok := err.(*common.Error); ok {
				details, _ := typed.Details.(map[string]any)
				if details == nil {
					details = map[string]any{}
				}
				details["row"] = i
				typed.Details = details
			}
			return 0, err
		}
		doc := s.toStored(row)
		doc["createdAt"] = now
		doc["updatedAt"] = now
		stored[i] = doc
	}

	cleared := false
	if mode == ImportModeCover {
		if _, err := s.collection.DeleteMany(ctx, bson.D{}); err != nil {
			return 0, common.ConvertMongoError(err)
		}
		cleared = true
	}

	if len(stored) == 0 {
		return 0, nil
	}

	result, err := s.collection.InsertMany(ctx, stored)
	inserted := 0
	if result != nil {
		inserted = len(result.InsertedIDs)
	}
	if err != nil {
		// ConvertMongoError returns shared sentinels; build a fresh
		// error so the cleared flag does not leak into them.
		code := common.ErrCodeDatabaseQuery
		status := common.StatusInternalServerError
		if typed, ok := common.ConvertMongoError(err).(*common.Error); ok {
			code = typed.Code
			status = typed.StatusCode
		}
		message := "Bulk import failed partway; existing rows were kept"
		if cleared {
			message = "Bulk import failed partway; existing rows had already been cleared"
		}
		return inserted, common.NewError(code, message, status, map[string]any{
			"dataCleared":   cleared,
			"insertedCount": inserted,
		})
	}
	return inserted, nil
}

// ExportAll returns every row in display form, oldest first. Exported
// rows carry no id so the output can be fed back through ImportBulk
// unchanged.
func (s *RecordService) ExportAll(ctx context.Context) ([]map[string]interface{}, error) {
	storedRows, err := s.base.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]interface{}, len(storedRows))
	for i, stored := range storedRows {
		rows[i] = s.exportRow(stored)
	}
	return rows, nil
}

// Count returns the number of stored rows.
func (s *RecordService) Count(ctx context.Context) (int64, error) {
	return s.base.CountDocuments(ctx, bson.M{})
}

// DropAll removes every row by dropping the collection.
func (s *RecordService) DropAll(ctx context.Context) error {
	if err := s.collection.Drop(ctx); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// MigrateSchema applies an advisory diff to the stored rows: old
// storage keys of changed or removed columns are renamed to their
// archived keys, so the values stay recoverable. Added columns need no
// row work.
func (s *RecordService) MigrateSchema(ctx context.Context, diff []models.SchemaDiffEntry) error {
	rename := bson.M{}
	for _, entry := range diff {
		if entry.Kind == models.SchemaDiffChangeType || entry.Kind == models.SchemaDiffDelete {
			rename[entry.RawColumn] = entry.ArchivedKey
		}
	}
	if len(rename) == 0 {
		return nil
	}
	_, err := s.collection.UpdateMany(ctx,
		bson.M{},
		bson.M{"$rename": rename})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
