package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
	"seed_ledger/core/global"
)

// TenantDirectoryService answers the control-plane lookups the request
// gateway needs: resolve a token subject to a user, resolve the user's
// enterprise, and derive the tenant database name.
type TenantDirectoryService struct {
	enterprises *BaseServiceMongoImpl[models.Enterprise]
	users       *BaseServiceMongoImpl[models.User]
	admins      *BaseServiceMongoImpl[models.AdminUser]
}

// NewTenantDirectoryService creates the directory over the registered
// control-plane collections.
func NewTenantDirectoryService() (*TenantDirectoryService, error) {
	enterpriseCol, err := controlPlaneCollection(global.MongoDB_ColNames.Enterprises)
	if err != nil {
		return nil, err
	}
	userCol, err := controlPlaneCollection(global.MongoDB_ColNames.Users)
	if err != nil {
		return nil, err
	}
	adminCol, err := controlPlaneCollection(global.MongoDB_ColNames.AdminUsers)
	if err != nil {
		return nil, err
	}
	return &TenantDirectoryService{
		enterprises: NewBaseServiceMongo[models.Enterprise](enterpriseCol),
		users:       NewBaseServiceMongo[models.User](userCol),
		admins:      NewBaseServiceMongo[models.AdminUser](adminCol),
	}, nil
}

// controlPlaneCollection fetches a registered admin-database collection.
func controlPlaneCollection(name string) (*mongo.Collection, error) {
	col, exists := global.RegistryCollections.Get(name)
	if !exists {
		return nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Collection %s has not been registered", name), common.StatusInternalServerError, nil)
	}
	return col, nil
}

// FindEnterpriseByID looks up one enterprise by id.
func (s *TenantDirectoryService) FindEnterpriseByID(ctx context.Context, id primitive.ObjectID) (models.Enterprise, error) {
	return s.enterprises.FindOneById(ctx, id)
}

// FindUserBySubject resolves a token subject id to an enterprise user.
func (s *TenantDirectoryService) FindUserBySubject(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.users.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}, nil)
}

// FindAdminBySubject resolves a token subject id to a platform admin.
func (s *TenantDirectoryService) FindAdminBySubject(ctx context.Context, id primitive.ObjectID) (models.AdminUser, error) {
	return s.admins.FindOneById(ctx, id)
}

// TenantDBName derives the physical database name for an enterprise.
func TenantDBName(enterpriseID primitive.ObjectID) string {
	return global.ServerConfig.TenantDBPrefix + enterpriseID.Hex()
}
