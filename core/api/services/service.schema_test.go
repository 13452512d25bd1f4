package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
)

func col(name, typ string) models.ColumnSpec {
	return models.ColumnSpec{DataIndex: name, DataType: typ}
}

func TestValidateDeclaration_AllowsDistinctNames(t *testing.T) {
	err := ValidateDeclaration([]models.ColumnSpec{
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
		col("备注", models.ColumnTypeText),
	})
	assert.NoError(t, err)
}

func TestValidateDeclaration_RejectsDuplicateNames(t *testing.T) {
	err := ValidateDeclaration([]models.ColumnSpec{
		col("数量", models.ColumnTypeNumber),
		col("数量", models.ColumnTypeText),
	})
	require.Error(t, err)

	var typed *common.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, common.ErrCodeSchemaDuplicateColumn.Code, typed.Code.Code)

	details, ok := typed.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"数量"}, details["duplicateColumns"])
}

func TestDiffColumns_IdenticalConfigsYieldNothing(t *testing.T) {
	columns := []models.ColumnSpec{
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
	}
	diff := DiffColumns(columns, columns, time.Now())
	assert.Empty(t, diff)
}

func TestDiffColumns_DefaultColumnsAreExempt(t *testing.T) {
	oldColumns := []models.ColumnSpec{
		col("种子名称", models.ColumnTypeDefault),
		col("种子编号", models.ColumnTypeDefault),
	}
	newColumns := []models.ColumnSpec{
		col("种子名称", models.ColumnTypeDefault),
	}
	diff := DiffColumns(oldColumns, newColumns, time.Now())
	assert.Empty(t, diff)
}

func TestDiffColumns_TypeChangeArchivesOldKey(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	oldColumns := []models.ColumnSpec{col("数量", models.ColumnTypeNumber)}
	newColumns := []models.ColumnSpec{col("数量", models.ColumnTypeText)}

	diff := DiffColumns(oldColumns, newColumns, now)
	require.Len(t, diff, 1)

	entry := diff[0]
	assert.Equal(t, models.SchemaDiffChangeType, entry.Kind)
	assert.Equal(t, "数量_NUMBER", entry.RawColumn)
	assert.Equal(t, "数量_NUMBER_20250314092653", entry.ArchivedKey)
	assert.Equal(t, "数量_TEXT", entry.NewColumn)
}

func TestDiffColumns_AddedColumn(t *testing.T) {
	diff := DiffColumns(
		nil,
		[]models.ColumnSpec{col("产地", models.ColumnTypeText)},
		time.Now(),
	)
	require.Len(t, diff, 1)
	assert.Equal(t, models.SchemaDiffAdd, diff[0].Kind)
	assert.Equal(t, "产地_TEXT", diff[0].NewColumn)
	assert.Empty(t, diff[0].RawColumn)
}

func TestDiffColumns_RemovedColumnArchivesOldKey(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	diff := DiffColumns(
		[]models.ColumnSpec{col("产地", models.ColumnTypeText)},
		nil,
		now,
	)
	require.Len(t, diff, 1)
	assert.Equal(t, models.SchemaDiffDelete, diff[0].Kind)
	assert.Equal(t, "产地_TEXT", diff[0].RawColumn)
	assert.Equal(t, "产地_TEXT_20250102030405", diff[0].ArchivedKey)
	assert.Empty(t, diff[0].NewColumn)
}

func TestDiffColumns_RenameIsDeletePlusAdd(t *testing.T) {
	diff := DiffColumns(
		[]models.ColumnSpec{col("重量", models.ColumnTypeNumber)},
		[]models.ColumnSpec{col("净重", models.ColumnTypeNumber)},
		time.Now(),
	)
	require.Len(t, diff, 2)

	kinds := map[string]models.SchemaDiffEntry{}
	for _, entry := range diff {
		kinds[entry.Kind] = entry
	}
	require.Contains(t, kinds, models.SchemaDiffAdd)
	require.Contains(t, kinds, models.SchemaDiffDelete)
	assert.Equal(t, "净重_NUMBER", kinds[models.SchemaDiffAdd].NewColumn)
	assert.Equal(t, "重量_NUMBER", kinds[models.SchemaDiffDelete].RawColumn)
}

func TestStorageKeys_OrderAndMapping(t *testing.T) {
	columns := []models.ColumnSpec{
		col("种子名称", models.ColumnTypeDefault),
		col("数量", models.ColumnTypeNumber),
		col("备注", models.ColumnTypeText),
	}
	assert.Equal(t, []string{"种子名称", "数量_NUMBER", "备注_TEXT"}, StorageKeys(columns))

	byKey := DisplayNameByStorageKey(columns)
	assert.Equal(t, "数量", byKey["数量_NUMBER"])
	assert.Equal(t, "种子名称", byKey["种子名称"])
}
