package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"seed_ledger/core/api/services"
	"seed_ledger/core/common"
	"seed_ledger/core/global"
	"seed_ledger/core/logger"
)

// TenantGate is the single place every tenant-scoped request passes
// through: it verifies the credential, resolves the subject to a user
// and its enterprise, applies the enterprise lifecycle checks and
// binds the tenant database handle into the request context.
type TenantGate struct {
	Tokens    *services.TokenService
	Directory *services.TenantDirectoryService
	Provider  *services.TenantDBProvider
}

var (
	tenantGateInstance *TenantGate
	tenantGateOnce     sync.Once
)

// GetTenantGate returns the process-wide gate instance.
func GetTenantGate() *TenantGate {
	tenantGateOnce.Do(func() {
		var err error
		tenantGateInstance, err = newTenantGate()
		if err != nil {
			panic(err)
		}
	})
	return tenantGateInstance
}

func newTenantGate() (*TenantGate, error) {
	directory, err := services.NewTenantDirectoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant directory service: %v", err)
	}
	return &TenantGate{
		Tokens: services.NewTokenService(
			global.ServerConfig.JwtSecret,
			time.Duration(global.ServerConfig.TokenLifetime)*time.Hour,
		),
		Directory: directory,
		Provider:  services.NewTenantDBProvider(),
	}, nil
}

// bearerToken extracts the credential from the Authorization header.
// An "Authorization" query parameter is accepted as a fallback for
// clients that cannot set headers (file download links).
func bearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Query("Authorization"); token != "" {
			return token, nil
		}
		return "", common.ErrTokenMissing
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", common.ErrTokenInvalid
	}
	return parts[1], nil
}

// subjectLookupFailure maps a failed user-then-admin directory lookup
// onto the response error. Unknown in both tables means the subject
// does not exist; a storage failure in either lookup surfaces as-is so
// it is not mistaken for a bad credential.
func subjectLookupFailure(userErr, adminErr error) error {
	if !errors.Is(userErr, common.ErrNotFound) {
		return userErr
	}
	if !errors.Is(adminErr, common.ErrNotFound) {
		return adminErr
	}
	return common.ErrSubjectNotFound
}

// verifySubject runs the credential checks shared by both gates and
// returns the subject id.
func (g *TenantGate) verifySubject(c fiber.Ctx) (primitive.ObjectID, error) {
	token, err := bearerToken(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	subjectID, err := g.Tokens.Verify(token)
	if err != nil {
		return primitive.NilObjectID, err
	}
	objID, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return objID, nil
}

// TenantMiddleware authenticates an enterprise user and binds the
// request to its tenant. The checks run in a fixed order: credential
// present, credential valid, credential unexpired, subject exists,
// enterprise exists, enterprise enabled, not deleted, authorization
// window current. The first failure wins; nothing later runs. The
// subject is looked up as a tenant user first and as a platform
// operator second; operators are admitted with no tenant binding.
func TenantMiddleware() fiber.Handler {
	gate := GetTenantGate()

	return func(c fiber.Ctx) error {
		subjectID, err := gate.verifySubject(c)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		user, err := gate.Directory.FindUserBySubject(context.Background(), subjectID)
		if err != nil {
			// The subject may be a platform operator; operators pass the
			// gate without a tenant binding.
			admin, adminErr := gate.Directory.FindAdminBySubject(context.Background(), subjectID)
			if adminErr == nil {
				c.Locals("admin", admin)
				c.Locals("user_id", admin.ID.Hex())
				return c.Next()
			}
			HandleErrorResponse(c, subjectLookupFailure(err, adminErr))
			return nil
		}

		enterprise, err := gate.Directory.FindEnterpriseByID(context.Background(), user.EnterpriseID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":       user.ID.Hex(),
				"enterprise_id": user.EnterpriseID.Hex(),
				"path":          c.Path(),
			}).Warn("Subject resolved but its enterprise is missing")
			HandleErrorResponse(c, common.ErrTenantNotFound)
			return nil
		}

		if err := services.CheckLifecycle(enterprise, time.Now()); err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		dbName := enterprise.DBName
		if dbName == "" {
			dbName = services.TenantDBName(enterprise.ID)
		}
		tenantDB, err := gate.Provider.OpenDatabase(dbName)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID.Hex())
		c.Locals("enterprise_id", enterprise.ID.Hex())
		c.Locals("tenant_db", tenantDB)
		return c.Next()
	}
}

// AdminMiddleware authenticates a platform operator. Admin requests
// never bind a tenant database and skip the lifecycle checks.
func AdminMiddleware() fiber.Handler {
	gate := GetTenantGate()

	return func(c fiber.Ctx) error {
		subjectID, err := gate.verifySubject(c)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		admin, err := gate.Directory.FindAdminBySubject(context.Background(), subjectID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				err = common.ErrSubjectNotFound
			}
			HandleErrorResponse(c, err)
			return nil
		}

		c.Locals("admin", admin)
		c.Locals("user_id", admin.ID.Hex())
		return c.Next()
	}
}
