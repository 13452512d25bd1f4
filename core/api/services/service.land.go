package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
)

// Tenant-database collection names. Record rows live in per-document
// data_{documentID} collections instead.
const (
	TenantColDocuments = "document"
	TenantColLands     = "land"
)

// Land status values.
const (
	LandStatusUsed   = "USED"
	LandStatusUnused = "UNUSED"
)

// LandService manages the field plots of one tenant. It is constructed
// per request from the tenant database handle.
type LandService struct {
	lands *BaseServiceMongoImpl[models.Land]
}

// NewLandService creates the service over a tenant database.
func NewLandService(db *mongo.Database) *LandService {
	return &LandService{
		lands: NewBaseServiceMongo[models.Land](db.Collection(TenantColLands)),
	}
}

// Create registers a plot; new plots start UNUSED.
func (s *LandService) Create(ctx context.Context, land models.Land) (models.Land, error) {
	land.Status = LandStatusUnused
	return s.lands.InsertOne(ctx, land)
}

// FindByID returns one plot.
func (s *LandService) FindByID(ctx context.Context, id primitive.ObjectID) (models.Land, error) {
	return s.lands.FindOneById(ctx, id)
}

// List pages through the tenant's plots, optionally filtered by
// status.
func (s *LandService) List(ctx context.Context, status string, page, limit int64) (*models.PaginateResult[models.Land], error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.lands.FindWithPagination(ctx, filter, page, limit, nil)
}

// Update modifies a plot's name and coordinates. Status is managed by
// the documents that reference the plot, not edited directly.
func (s *LandService) Update(ctx context.Context, id primitive.ObjectID, name string, longitude, latitude float64) (models.Land, error) {
	return s.lands.UpdateById(ctx, id, bson.M{
		"landName":  name,
		"longitude": longitude,
		"latitude":  latitude,
	})
}

// Delete removes a plot. Plots in use by a document stay.
func (s *LandService) Delete(ctx context.Context, id primitive.ObjectID) error {
	land, err := s.lands.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if land.Status == LandStatusUsed {
		return common.NewError(common.ErrCodeBusinessState, "Land is referenced by a document and cannot be deleted", common.StatusBadRequest, nil)
	}
	return s.lands.DeleteById(ctx, id)
}

// SetStatus marks a plot USED or UNUSED.
func (s *LandService) SetStatus(ctx context.Context, id string, status string) error {
	if id == "" {
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrInvalidFormat
	}
	_, err = s.lands.UpdateById(ctx, objID, bson.M{"status": status})
	return err
}
