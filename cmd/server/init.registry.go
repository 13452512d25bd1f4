package main

import (
	"github.com/sirupsen/logrus"

	"seed_ledger/core/global"
)

// InitRegistry registers the control-plane collections so the services
// can look them up by name.
func InitRegistry() {
	dbName := global.ServerConfig.MongoDB_DBName_Admin
	adminDB := global.MongoDB_Session.Database(dbName)

	colNames := []string{
		global.MongoDB_ColNames.Enterprises,
		global.MongoDB_ColNames.AdminUsers,
		global.MongoDB_ColNames.Users,
	}
	for _, name := range colNames {
		if _, err := global.RegistryCollections.Register(name, adminDB.Collection(name)); err != nil {
			logrus.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}

	logrus.Infof("Registered %d control-plane collections", len(colNames))
}
