package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"seed_ledger/config"
	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/database"
	"seed_ledger/core/global"
)

// InitGlobal initializes the process-wide singletons, in dependency
// order.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase_MongoDB()
}

// initColNames sets the control-plane collection names.
func initColNames() {
	global.MongoDB_ColNames.Enterprises = "enterprises"
	global.MongoDB_ColNames.AdminUsers = "admin_users"
	global.MongoDB_ColNames.Users = "users"

	logrus.Info("Initialized collection names")
}

// initValidator registers the custom validation rules.
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig loads the server configuration from the environment.
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB connects to MongoDB, ensures the control-plane
// collections exist and builds their indexes.
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	dbName := global.ServerConfig.MongoDB_DBName_Admin
	adminDB := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), adminDB.Collection(global.MongoDB_ColNames.Enterprises), models.Enterprise{})
	database.CreateIndexes(context.TODO(), adminDB.Collection(global.MongoDB_ColNames.AdminUsers), models.AdminUser{})
	database.CreateIndexes(context.TODO(), adminDB.Collection(global.MongoDB_ColNames.Users), models.User{})
}
