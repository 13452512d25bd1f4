package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	models "seed_ledger/core/api/models/mongodb"
)

// Deleting a document must not touch its data collection; destroying
// the rows is a separate explicit call. The mock deployment records
// every command the service issues.
func TestDocumentDelete_KeepsRecordCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delete leaves rows untouched", func(mt *mtest.T) {
		docID := primitive.NewObjectID()
		ns := fmt.Sprintf("%s.%s", mt.DB.Name(), TenantColDocuments)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: docID},
				{Key: "documentName", Value: "2025早稻"},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := NewDocumentService(mt.DB).Delete(context.Background(), docID)
		require.NoError(mt, err)

		var commands []string
		for _, evt := range mt.GetAllStartedEvents() {
			commands = append(commands, evt.CommandName)
		}
		assert.Contains(mt, commands, "delete")
		assert.NotContains(mt, commands, "drop")
	})

	mt.Run("record drop is its own operation", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		doc := models.Document{ID: primitive.NewObjectID()}
		err := NewRecordService(mt.DB, doc).DropAll(context.Background())
		require.NoError(mt, err)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 1)
		assert.Equal(mt, "drop", events[0].CommandName)
	})
}
