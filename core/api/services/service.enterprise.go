package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
	"seed_ledger/core/global"
	"seed_ledger/core/logger"
)

// EnterpriseService manages the tenant directory: creating an
// enterprise together with its root user, updating its profile and
// authorization window, and toggling its lifecycle status.
type EnterpriseService struct {
	enterprises *BaseServiceMongoImpl[models.Enterprise]
	users       *BaseServiceMongoImpl[models.User]
}

// NewEnterpriseService creates the service over the registered
// control-plane collections.
func NewEnterpriseService() (*EnterpriseService, error) {
	enterpriseCol, err := controlPlaneCollection(global.MongoDB_ColNames.Enterprises)
	if err != nil {
		return nil, err
	}
	userCol, err := controlPlaneCollection(global.MongoDB_ColNames.Users)
	if err != nil {
		return nil, err
	}
	return &EnterpriseService{
		enterprises: NewBaseServiceMongo[models.Enterprise](enterpriseCol),
		users:       NewBaseServiceMongo[models.User](userCol),
	}, nil
}

// EnterpriseInput carries the fields an operator submits when creating
// or updating an enterprise.
type EnterpriseInput struct {
	Name        string
	PhoneNumber string
	Password    string
	Address     string
	RegionCodes []string
	StartDate   string
	EndDate     string
}

// Create registers a new enterprise and its root user. The tenant
// database name is derived from the new enterprise id and is fixed for
// the life of the tenant.
func (s *EnterpriseService) Create(ctx context.Context, input EnterpriseInput) (models.Enterprise, error) {
	if err := s.checkUnique(ctx, primitive.NilObjectID, input.Name, input.PhoneNumber); err != nil {
		return models.Enterprise{}, err
	}

	enterprise, err := s.enterprises.InsertOne(ctx, models.Enterprise{
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		RegionCodes: input.RegionCodes,
		Status:      models.EnterpriseStatusEnable,
		IsDeleted:   false,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	})
	if err != nil {
		return models.Enterprise{}, err
	}

	enterprise, err = s.enterprises.UpdateById(ctx, enterprise.ID, bson.M{"dbName": TenantDBName(enterprise.ID)})
	if err != nil {
		return models.Enterprise{}, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return models.Enterprise{}, err
	}
	_, err = s.users.InsertOne(ctx, models.User{
		PhoneNumber:  input.PhoneNumber,
		Password:     hashed,
		UserName:     input.Name,
		Role:         models.UserRoleAdmin,
		EnterpriseID: enterprise.ID,
		IsRoot:       true,
	})
	if err != nil {
		// Roll the directory entry back so a retry is not blocked by
		// the unique name index.
		if delErr := s.enterprises.DeleteById(ctx, enterprise.ID); delErr != nil {
			logger.GetErrorLogger().WithError(delErr).WithField("enterpriseId", enterprise.ID.Hex()).
				Error("Failed to roll back enterprise after root user creation failed")
		}
		return models.Enterprise{}, err
	}

	return enterprise, nil
}

// Update modifies an enterprise profile. Credential changes are kept
// in sync with the root user; DBName is never touched.
func (s *EnterpriseService) Update(ctx context.Context, id primitive.ObjectID, input EnterpriseInput) (models.Enterprise, error) {
	enterprise, err := s.FindByID(ctx, id)
	if err != nil {
		return models.Enterprise{}, err
	}

	if err := s.checkUnique(ctx, id, input.Name, input.PhoneNumber); err != nil {
		return models.Enterprise{}, err
	}

	set := bson.M{
		"name":        input.Name,
		"phoneNumber": input.PhoneNumber,
		"address":     input.Address,
		"startDate":   input.StartDate,
		"endDate":     input.EndDate,
	}
	if input.RegionCodes != nil {
		set["regionCodes"] = input.RegionCodes
	}
	updated, err := s.enterprises.UpdateById(ctx, id, set)
	if err != nil {
		return models.Enterprise{}, err
	}

	rootSet := bson.M{
		"phoneNumber": input.PhoneNumber,
		"userName":    input.Name,
	}
	if input.Password != "" {
		hashed, err := HashPassword(input.Password)
		if err != nil {
			return models.Enterprise{}, err
		}
		rootSet["password"] = hashed
	}
	_, err = s.users.UpdateOne(ctx,
		bson.M{"enterpriseId": enterprise.ID, "isRoot": true},
		rootSet, nil)
	if err != nil {
		return models.Enterprise{}, err
	}

	return updated, nil
}

// FindByID returns one live enterprise.
func (s *EnterpriseService) FindByID(ctx context.Context, id primitive.ObjectID) (models.Enterprise, error) {
	return s.enterprises.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}, nil)
}

// List pages through live enterprises, optionally filtered by a
// case-sensitive name fragment.
func (s *EnterpriseService) List(ctx context.Context, keyword string, page, limit int64) (*models.PaginateResult[models.Enterprise], error) {
	filter := bson.M{"isDeleted": false}
	if keyword != "" {
		filter["name"] = bson.M{"$regex": keyword}
	}
	return s.enterprises.FindWithPagination(ctx, filter, page, limit, nil)
}

// SetStatus enables or disables an enterprise. Disabling locks every
// user of the tenant out at the gateway; the tenant's data is kept.
func (s *EnterpriseService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Enterprise, error) {
	if status != models.EnterpriseStatusEnable && status != models.EnterpriseStatusDisable {
		return models.Enterprise{}, common.ErrInvalidInput
	}
	if _, err := s.FindByID(ctx, id); err != nil {
		return models.Enterprise{}, err
	}
	return s.enterprises.UpdateById(ctx, id, bson.M{"status": status})
}

// Delete soft-deletes an enterprise and its users. The tenant database
// itself is retained; only the directory entry is tombstoned.
func (s *EnterpriseService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.enterprises.UpdateById(ctx, id, bson.M{"isDeleted": true}); err != nil {
		return err
	}
	_, err := s.users.UpdateMany(ctx,
		bson.M{"enterpriseId": id},
		bson.M{"isDeleted": true}, nil)
	return err
}

// CheckLifecycle applies the tenant gate in a fixed order: status
// first, then the deletion tombstone, then the authorization window.
// The window is inclusive on both ends and compared at day
// granularity.
func CheckLifecycle(enterprise models.Enterprise, now time.Time) error {
	if enterprise.Status != models.EnterpriseStatusEnable {
		return common.ErrTenantDisabled
	}
	if enterprise.IsDeleted {
		return common.ErrTenantDeleted
	}
	today := now.Format("2006-01-02")
	if enterprise.StartDate != "" && today < enterprise.StartDate {
		return common.ErrTenantAuthorizationExpired
	}
	if enterprise.EndDate != "" && today > enterprise.EndDate {
		return common.ErrTenantAuthorizationExpired
	}
	return nil
}

func (s *EnterpriseService) checkUnique(ctx context.Context, excludeID primitive.ObjectID, name, phoneNumber string) error {
	filter := bson.M{
		"isDeleted": false,
		"$or":       []bson.M{{"name": name}, {"phoneNumber": phoneNumber}},
	}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	exists, err := s.enterprises.DocumentExists(ctx, filter)
	if err != nil {
		return err
	}
	if exists {
		return common.NewError(common.ErrCodeDatabaseQuery, "Enterprise name or phone number is already in use", common.StatusConflict, nil)
	}
	return nil
}
