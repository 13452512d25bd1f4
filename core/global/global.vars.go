package global

import (
	"seed_ledger/config"
	"seed_ledger/core/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Admin_CollectionName holds the control-plane collection
// names. Tenant databases name their own collections (the document
// table plus one data_{documentID} collection per document).
type MongoDB_Admin_CollectionName struct {
	Enterprises string // Enterprise (tenant) directory
	AdminUsers  string // Platform operators
	Users       string // Enterprise users, all tenants
}

// Process-wide singletons, assigned once during startup.
var Validate *validator.Validate                 // DTO validator
var MongoDB_Session *mongo.Client                // MongoDB connection
var ServerConfig *config.Configuration           // Server configuration
var MongoDB_ColNames MongoDB_Admin_CollectionName // Control-plane collection names

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Control-plane collections
var RegistryTenantDB = registry.NewRegistry[*mongo.Database]()      // Pooled tenant database handles, keyed by physical name
