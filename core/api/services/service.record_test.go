package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
)

// recordStore builds a store over a document schema without touching a
// database; the validation and mapping paths never use the collection.
func recordStore(columns ...models.ColumnSpec) *RecordService {
	return &RecordService{doc: models.Document{Columns: columns}}
}

func TestValidateColumns_ExactMatchPasses(t *testing.T) {
	s := recordStore(
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	)
	err := s.ValidateColumns(map[string]interface{}{
		"种子名称": "金穗1号",
		"数量":   12,
	})
	assert.NoError(t, err)
}

func TestValidateColumns_MissingColumnIsNamed(t *testing.T) {
	s := recordStore(
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	)
	err := s.ValidateColumns(map[string]interface{}{
		"种子名称": "金穗1号",
	})
	require.Error(t, err)

	var typed *common.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, common.ErrCodeSchemaMismatch.Code, typed.Code.Code)

	details, ok := typed.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"数量"}, details["missingColumns"])
	assert.Empty(t, details["extraColumns"])
}

func TestValidateColumns_ExtraColumnIsNamed(t *testing.T) {
	s := recordStore(col("种子名称", models.ColumnTypeDefault))
	err := s.ValidateColumns(map[string]interface{}{
		"种子名称": "金穗1号",
		"颜色":   "yellow",
	})
	require.Error(t, err)

	var typed *common.Error
	require.ErrorAs(t, err, &typed)
	details, ok := typed.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"颜色"}, details["extraColumns"])
}

func TestValidateColumns_BothDirectionsReported(t *testing.T) {
	s := recordStore(
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	)
	err := s.ValidateColumns(map[string]interface{}{
		"种子名称": "金穗1号",
		"颜色":   "yellow",
	})
	require.Error(t, err)

	var typed *common.Error
	require.ErrorAs(t, err, &typed)
	details := typed.Details.(map[string]any)
	assert.Equal(t, []string{"颜色"}, details["extraColumns"])
	assert.Equal(t, []string{"数量"}, details["missingColumns"])
}

func TestValidateColumns_QRFieldIsIgnored(t *testing.T) {
	s := recordStore(col("种子名称", models.ColumnTypeDefault))
	err := s.ValidateColumns(map[string]interface{}{
		"种子名称":      "金穗1号",
		QRCodeField: "http://example.com/qr.png",
	})
	assert.NoError(t, err)
}

func TestToStored_MapsDisplayNamesToStorageKeys(t *testing.T) {
	s := recordStore(
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	)
	stored := s.toStored(map[string]interface{}{
		"种子名称": "金穗1号",
		"数量":   12,
	})
	assert.Equal(t, "金穗1号", stored["种子名称"])
	assert.Equal(t, 12, stored["数量_NUMBER"])
	assert.NotContains(t, stored, "数量")
}

func TestToDisplay_ProjectsStorageKeysBack(t *testing.T) {
	s := recordStore(
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	)
	id := primitive.NewObjectID()
	row := s.toDisplay(bson.M{
		"_id":       id,
		"种子名称":      "金穗1号",
		"数量_NUMBER": 12,
		"createdAt": int64(1),
	})
	assert.Equal(t, id.Hex(), row["id"])
	assert.Equal(t, "金穗1号", row["种子名称"])
	assert.Equal(t, 12, row["数量"])
	assert.NotContains(t, row, "数量_NUMBER")
	assert.NotContains(t, row, "createdAt")
}

func TestToDisplay_ArchivedKeysStayHidden(t *testing.T) {
	s := recordStore(col("数量", models.ColumnTypeText))
	row := s.toDisplay(bson.M{
		"数量_TEXT":                  "12",
		"数量_NUMBER_20250314092653": 12,
	})
	assert.Equal(t, "12", row["数量"])
	assert.NotContains(t, row, "数量_NUMBER_20250314092653")
}

func TestToDisplay_UndeclaredValueRendersNil(t *testing.T) {
	s := recordStore(
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	)
	row := s.toDisplay(bson.M{"种子名称": "金穗1号"})
	assert.Equal(t, "金穗1号", row["种子名称"])
	assert.Contains(t, row, "数量")
	assert.Nil(t, row["数量"])
}

func TestExportRow_OmitsRowID(t *testing.T) {
	s := recordStore(col("种子名称", models.ColumnTypeDefault))
	row := s.exportRow(bson.M{
		"_id":  primitive.NewObjectID(),
		"种子名称": "金穗1号",
	})
	assert.NotContains(t, row, "id")
	assert.Equal(t, "金穗1号", row["种子名称"])
}

// An exported row must survive re-import unchanged: export, validate,
// map back to storage form.
func TestExportRow_RoundTripsThroughValidation(t *testing.T) {
	s := recordStore(
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	)
	stored := bson.M{
		"_id":       primitive.NewObjectID(),
		"种子名称":      "金穗1号",
		"数量_NUMBER": 12,
		"createdAt": int64(1),
		"updatedAt": int64(1),
	}

	exported := s.exportRow(stored)
	require.NoError(t, s.ValidateColumns(exported))

	reimported := s.toStored(exported)
	assert.Equal(t, "金穗1号", reimported["种子名称"])
	assert.Equal(t, 12, reimported["数量_NUMBER"])
}

func TestSearchFilter_NeedsBothColumnAndValue(t *testing.T) {
	s := recordStore(col("种子名称", models.ColumnTypeDefault))

	query, err := s.searchFilter("种子名称", "")
	require.NoError(t, err)
	assert.Empty(t, query)

	query, err = s.searchFilter("", "金穗")
	require.NoError(t, err)
	assert.Empty(t, query)

	// An unknown column with no value is not reached by validation
	// either; the filter is simply absent.
	query, err = s.searchFilter("颜色", "")
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestSearchFilter_BuildsRegexOnStorageKey(t *testing.T) {
	s := recordStore(col("数量", models.ColumnTypeNumber))
	query, err := s.searchFilter("数量", "12")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"数量_NUMBER": bson.M{"$regex": "12"}}, query)
}

func TestSearchFilter_RejectsUnknownColumn(t *testing.T) {
	s := recordStore(col("种子名称", models.ColumnTypeDefault))
	_, err := s.searchFilter("颜色", "yellow")
	require.Error(t, err)

	var typed *common.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, common.ErrCodeValidationInput.Code, typed.Code.Code)
}
