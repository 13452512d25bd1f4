package main

import (
	"context"
	"time"

	"seed_ledger/core/api/services"
	"seed_ledger/core/global"
	"seed_ledger/core/logger"
)

// InitDefaultData seeds the initial platform operator when INITMODE is
// enabled and none exists yet.
func InitDefaultData() {
	cfg := global.ServerConfig
	if !cfg.InitMode {
		return
	}

	log := logger.GetAppLogger()

	tokens := services.NewTokenService(cfg.JwtSecret, time.Duration(cfg.TokenLifetime)*time.Hour)
	adminService, err := services.NewAdminService(tokens)
	if err != nil {
		log.WithError(err).Fatal("Failed to create admin service for bootstrap")
	}

	if err := adminService.EnsureBootstrapAdmin(context.Background(), cfg.AdminPhone, cfg.AdminPassword); err != nil {
		log.WithError(err).Fatal("Failed to seed bootstrap admin")
	}
	log.WithField("phoneNumber", cfg.AdminPhone).Info("Bootstrap admin ensured")
}
