package services

import (
	"go.mongodb.org/mongo-driver/mongo"

	"seed_ledger/core/global"
)

// TenantDBProvider hands out tenant database handles. Handles are
// pooled in the global tenant registry so every request for the same
// enterprise reuses one *mongo.Database.
type TenantDBProvider struct {
	client *mongo.Client
}

// NewTenantDBProvider creates a provider over the shared MongoDB session.
func NewTenantDBProvider() *TenantDBProvider {
	return &TenantDBProvider{client: global.MongoDB_Session}
}

// OpenDatabase returns the pooled handle for the named tenant
// database, creating it on first use.
func (p *TenantDBProvider) OpenDatabase(dbName string) (*mongo.Database, error) {
	return global.RegistryTenantDB.GetOrCreate(dbName, func() (*mongo.Database, error) {
		return p.client.Database(dbName), nil
	})
}
