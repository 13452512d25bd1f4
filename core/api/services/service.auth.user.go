package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
	"seed_ledger/core/global"
)

// UserService manages enterprise users and handles their login.
type UserService struct {
	users  *BaseServiceMongoImpl[models.User]
	tokens *TokenService
}

// NewUserService creates the service over the registered users
// collection.
func NewUserService(tokens *TokenService) (*UserService, error) {
	col, err := controlPlaneCollection(global.MongoDB_ColNames.Users)
	if err != nil {
		return nil, err
	}
	return &UserService{
		users:  NewBaseServiceMongo[models.User](col),
		tokens: tokens,
	}, nil
}

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Failed to hash password", common.StatusInternalServerError, err)
	}
	return string(hashed), nil
}

// CheckPassword compares a plain-text password against a bcrypt hash.
func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// Login authenticates an enterprise user by phone number and password
// and returns the user together with a fresh access token.
func (s *UserService) Login(ctx context.Context, phoneNumber, password string) (models.User, string, error) {
	user, err := s.users.FindOne(ctx, bson.M{"phoneNumber": phoneNumber, "isDeleted": false}, nil)
	if err != nil {
		return models.User{}, "", common.ErrInvalidCredentials
	}
	if !CheckPassword(user.Password, password) {
		return models.User{}, "", common.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Create adds a user to an enterprise. Phone numbers are unique across
// the whole directory.
func (s *UserService) Create(ctx context.Context, user models.User) (models.User, error) {
	exists, err := s.users.DocumentExists(ctx, bson.M{"phoneNumber": user.PhoneNumber})
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, common.NewError(common.ErrCodeDatabaseQuery, "Phone number is already in use", common.StatusConflict, nil)
	}
	hashed, err := HashPassword(user.Password)
	if err != nil {
		return models.User{}, err
	}
	user.Password = hashed
	user.IsDeleted = false
	return s.users.InsertOne(ctx, user)
}

// FindByID returns one user.
func (s *UserService) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.users.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}, nil)
}

// ListByEnterprise pages through the users of one enterprise.
func (s *UserService) ListByEnterprise(ctx context.Context, enterpriseID primitive.ObjectID, page, limit int64) (*models.PaginateResult[models.User], error) {
	filter := bson.M{"enterpriseId": enterpriseID, "isDeleted": false}
	return s.users.FindWithPagination(ctx, filter, page, limit, nil)
}

// Update modifies a user's profile. An empty password leaves the
// stored credential unchanged.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, userName, password, role string) (models.User, error) {
	set := bson.M{}
	if userName != "" {
		set["userName"] = userName
	}
	if role != "" {
		set["role"] = role
	}
	if password != "" {
		hashed, err := HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		set["password"] = hashed
	}
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}
	return s.users.UpdateById(ctx, id, set)
}

// Delete soft-deletes a user. The enterprise root user cannot be
// deleted; it is managed through the enterprise itself.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsRoot {
		return common.NewError(common.ErrCodeBusinessOperation, "The enterprise root user cannot be deleted", common.StatusBadRequest, nil)
	}
	_, err = s.users.UpdateById(ctx, id, bson.M{"isDeleted": true})
	return err
}

// AdminService handles platform-operator login and bootstrap.
type AdminService struct {
	admins *BaseServiceMongoImpl[models.AdminUser]
	tokens *TokenService
}

// NewAdminService creates the service over the registered admin-users
// collection.
func NewAdminService(tokens *TokenService) (*AdminService, error) {
	col, err := controlPlaneCollection(global.MongoDB_ColNames.AdminUsers)
	if err != nil {
		return nil, err
	}
	return &AdminService{
		admins: NewBaseServiceMongo[models.AdminUser](col),
		tokens: tokens,
	}, nil
}

// Login authenticates a platform operator.
func (s *AdminService) Login(ctx context.Context, phoneNumber, password string) (models.AdminUser, string, error) {
	admin, err := s.admins.FindOne(ctx, bson.M{"phoneNumber": phoneNumber}, nil)
	if err != nil {
		return models.AdminUser{}, "", common.ErrInvalidCredentials
	}
	if !CheckPassword(admin.Password, password) {
		return models.AdminUser{}, "", common.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(admin.ID.Hex())
	if err != nil {
		return models.AdminUser{}, "", err
	}
	return admin, token, nil
}

// EnsureBootstrapAdmin creates the initial platform operator when the
// directory is empty. Safe to call on every startup.
func (s *AdminService) EnsureBootstrapAdmin(ctx context.Context, phoneNumber, password string) error {
	if phoneNumber == "" || password == "" {
		return nil
	}
	exists, err := s.admins.DocumentExists(ctx, bson.M{"phoneNumber": phoneNumber})
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.admins.InsertOne(ctx, models.AdminUser{
		PhoneNumber: phoneNumber,
		Password:    hashed,
		UserName:    "admin",
	})
	return err
}
