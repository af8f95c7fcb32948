package main

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mgvega/tienda-backend/internal/config"
	"github.com/mgvega/tienda-backend/internal/httpapi"
	"github.com/mgvega/tienda-backend/internal/session"
	"github.com/mgvega/tienda-backend/models"
)

func main() {
	cfg := config.FromEnv()

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	sess, err := session.Open(cfg.SessionFile)
	if err != nil {
		log.Fatal("Failed to open session store: ", err)
	}

	admin, err := httpapi.AdminAuth(cfg.OIDCIssuer, cfg.OIDCClientID)
	if err != nil {
		log.Fatal("Failed to set up OIDC: ", err)
	}

	r := httpapi.SetupRouter(db, sess, admin)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func openDB(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	}
}
