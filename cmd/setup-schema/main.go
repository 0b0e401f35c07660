// Command setup-schema applies the application schema to the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"sdtech_backend/internal/config"
	"sdtech_backend/internal/database"
	"sdtech_backend/pkg/utils"
)

func main() {
	schemaPath := flag.String("schema", "", "path to a schema file; the embedded schema is used when empty")
	printOnly := flag.Bool("print", false, "print the embedded schema and exit")
	flag.Parse()

	if *printOnly {
		fmt.Print(database.Schema())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", false)
		utils.LogError(err, "Failed to load configuration")
		os.Exit(1)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogPretty)

	path := *schemaPath
	if path == "" {
		path = cfg.DBSchemaPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.StorageBackend, cfg.DatabaseDSN(), database.PoolOptions{MaxOpenConns: 1})
	if err != nil {
		utils.LogError(err, "Failed to connect to the database")
		os.Exit(1)
	}
	defer db.Close()

	if err := database.ApplySchema(ctx, db, path); err != nil {
		utils.LogError(err, "Failed to apply database schema")
		os.Exit(1)
	}
	utils.LogInfo("Schema is up to date", map[string]interface{}{"backend": db.Backend()})
}
