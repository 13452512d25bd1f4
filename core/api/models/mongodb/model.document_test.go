package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsDefaultColumn(t *testing.T) {
	for _, name := range DefaultColumns {
		assert.True(t, IsDefaultColumn(name), name)
	}
	assert.False(t, IsDefaultColumn("数量"))
	assert.False(t, IsDefaultColumn(""))
}

func TestColumnSpec_StorageKey(t *testing.T) {
	assert.Equal(t, "种子名称", ColumnSpec{DataIndex: "种子名称", DataType: ColumnTypeDefault}.StorageKey())
	assert.Equal(t, "数量_NUMBER", ColumnSpec{DataIndex: "数量", DataType: ColumnTypeNumber}.StorageKey())
	assert.Equal(t, "备注_TEXT", ColumnSpec{DataIndex: "备注", DataType: ColumnTypeText}.StorageKey())
}

func TestRecordCollectionName(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, "data_"+id.Hex(), RecordCollectionName(id))
}
