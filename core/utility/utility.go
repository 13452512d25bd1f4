package utility

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"seed_ledger/core/common"
)

// String2ObjectID parses a hex string into an ObjectID.
func String2ObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid object id", common.StatusBadRequest, err)
	}
	return id, nil
}

// CurrentTimeInMilli returns the current time as Unix milliseconds.
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}
