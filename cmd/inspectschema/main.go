package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/database"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/logger"
)

// Prints the SQLite DDL that AutoMigrate generates for every model
func main() {
	var dbType string
	flag.StringVar(&dbType, "db", "sqlite-pure", "sqlite or sqlite-pure")
	var dir string
	flag.StringVar(&dir, "dir", ".", "directory for the scratch database file")
	flag.Parse()

	log := logger.New("warn")

	cfg := &config.Config{
		DBType:     dbType,
		DBDatabase: filepath.Join(dir, "inspect-schema.db"),
	}
	dialector, err := database.Dialector(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build dialector")
	}
	db, err := database.Open(dialector)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close(db)

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate")
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var ddl string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&ddl)
		fmt.Println(ddl)
	}
}
