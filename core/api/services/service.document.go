package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
	"seed_ledger/core/logger"
)

// DocumentService manages one tenant's documents: the declared record
// types whose rows live in per-document data collections. It is
// constructed per request from the tenant database handle.
type DocumentService struct {
	db        *mongo.Database
	documents *BaseServiceMongoImpl[models.Document]
	lands     *LandService
}

// NewDocumentService creates the service over a tenant database.
func NewDocumentService(db *mongo.Database) *DocumentService {
	return &DocumentService{
		db:        db,
		documents: NewBaseServiceMongo[models.Document](db.Collection(TenantColDocuments)),
		lands:     NewLandService(db),
	}
}

// DocumentListFilter narrows a document listing. Zero values mean "no
// constraint".
type DocumentListFilter struct {
	StartDate string // documents starting on or after this date
	EndDate   string // documents ending on or before this date
	LandID    string
	Keyword   string // case-sensitive fragment of the document name
}

// Create declares a new document. The name must be unique within the
// tenant and the column configuration free of duplicate display
// names. The referenced plot flips to USED.
func (s *DocumentService) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	if err := ValidateDeclaration(doc.Columns); err != nil {
		return models.Document{}, err
	}
	exists, err := s.documents.DocumentExists(ctx, bson.M{"documentName": doc.Name})
	if err != nil {
		return models.Document{}, err
	}
	if exists {
		return models.Document{}, common.NewError(common.ErrCodeDatabaseQuery, "Document name already exists", common.StatusConflict, nil)
	}

	created, err := s.documents.InsertOne(ctx, doc)
	if err != nil {
		return models.Document{}, err
	}

	if err := s.lands.SetStatus(ctx, created.LandID, LandStatusUsed); err != nil {
		logger.GetAppLogger().WithError(err).WithField("landId", created.LandID).
			Warn("Failed to mark land as used")
	}
	return created, nil
}

// Update modifies a document's profile and column configuration. When
// the configuration changed it also returns the advisory migration
// diff; applying the diff to stored rows is a separate step. When the
// referenced plot changed, the old one is released and the new one
// claimed.
func (s *DocumentService) Update(ctx context.Context, id primitive.ObjectID, doc models.Document) (models.Document, []models.SchemaDiffEntry, error) {
	if err := ValidateDeclaration(doc.Columns); err != nil {
		return models.Document{}, nil, err
	}
	existing, err := s.documents.FindOneById(ctx, id)
	if err != nil {
		return models.Document{}, nil, err
	}

	if doc.Name != existing.Name {
		taken, err := s.documents.DocumentExists(ctx, bson.M{"documentName": doc.Name, "_id": bson.M{"$ne": id}})
		if err != nil {
			return models.Document{}, nil, err
		}
		if taken {
			return models.Document{}, nil, common.NewError(common.ErrCodeDatabaseQuery, "Document name already exists", common.StatusConflict, nil)
		}
	}

	diff := DiffColumns(existing.Columns, doc.Columns, time.Now())

	updated, err := s.documents.UpdateById(ctx, id, bson.M{
		"documentName":     doc.Name,
		"startDate":        doc.StartDate,
		"endDate":          doc.EndDate,
		"landId":           doc.LandID,
		"columnConfigList": doc.Columns,
		"updateUserId":     doc.UpdateUserID,
	})
	if err != nil {
		return models.Document{}, nil, err
	}

	if doc.LandID != existing.LandID {
		if err := s.lands.SetStatus(ctx, existing.LandID, LandStatusUnused); err != nil {
			logger.GetAppLogger().WithError(err).WithField("landId", existing.LandID).
				Warn("Failed to release previous land")
		}
		if err := s.lands.SetStatus(ctx, doc.LandID, LandStatusUsed); err != nil {
			logger.GetAppLogger().WithError(err).WithField("landId", doc.LandID).
				Warn("Failed to mark land as used")
		}
	}
	return updated, diff, nil
}

// FindByID returns one document.
func (s *DocumentService) FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	return s.documents.FindOneById(ctx, id)
}

// List pages through the tenant's documents.
func (s *DocumentService) List(ctx context.Context, filter DocumentListFilter, page, limit int64) (*models.PaginateResult[models.Document], error) {
	query := bson.M{}
	if filter.StartDate != "" {
		query["startDate"] = bson.M{"$gte": filter.StartDate}
	}
	if filter.EndDate != "" {
		query["endDate"] = bson.M{"$lte": filter.EndDate}
	}
	if filter.LandID != "" {
		query["landId"] = filter.LandID
	}
	if filter.Keyword != "" {
		query["documentName"] = bson.M{"$regex": filter.Keyword}
	}
	return s.documents.FindWithPagination(ctx, query, page, limit, nil)
}

// Delete removes a document and releases its plot. The data collection
// stays untouched: destroying the rows is a separate, explicit action
// through the record store's DropAll.
func (s *DocumentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	doc, err := s.documents.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documents.DeleteById(ctx, id); err != nil {
		return err
	}
	if err := s.lands.SetStatus(ctx, doc.LandID, LandStatusUnused); err != nil {
		logger.GetAppLogger().WithError(err).WithField("landId", doc.LandID).
			Warn("Failed to release land")
	}
	return nil
}

// Records returns the record store bound to one document.
func (s *DocumentService) Records(doc models.Document) *RecordService {
	return NewRecordService(s.db, doc)
}
