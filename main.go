package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/lilyle-2211/game-analytics-dashboard/adapters/excel"
	"github.com/lilyle-2211/game-analytics-dashboard/adapters/warehouse"
	"github.com/lilyle-2211/game-analytics-dashboard/app"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/config"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/insights"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/migration"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/testkit"
	"github.com/lilyle-2211/game-analytics-dashboard/ports"
	"github.com/lilyle-2211/game-analytics-dashboard/reports"
	"github.com/lilyle-2211/game-analytics-dashboard/ui"
)

// initWarehouse connects to the Postgres warehouse and ensures the
// schema exists
func initWarehouse(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Warehouse.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to warehouse")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping warehouse")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "warehouse migration failed")
	}
	log.Printf("[Main] warehouse schema at version %s", migrator.Version())

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	// An empty DATABASE_URL switches the dashboard into demo mode on
	// synthetic fixture data.
	var executor ports.QueryExecutor
	if appConfig.Warehouse.URL != "" {
		db, err := initWarehouse(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize warehouse: %v", err)
		}
		defer db.Close()

		executor = warehouse.NewExecutor(db, warehouse.Config{
			MaxConcurrentQueries: appConfig.Warehouse.MaxConcurrentQueries,
			QueryTimeout:         appConfig.Warehouse.QueryTimeout,
		})
		log.Println("[Main] warehouse executor initialized")
	} else {
		executor = testkit.NewFixtureExecutor()
		log.Println("[Main] DATABASE_URL not set, serving synthetic demo data")
	}

	registry := reports.NewRegistry()
	dashboard := app.NewDashboardService(registry, executor)
	analyst := insights.NewAnalyst(registry, executor)

	server, err := ui.NewServer(dashboard, analyst, excel.NewExporter())
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Ops router exposes /healthz and pprof on its own port
	if appConfig.Ops.Enabled {
		go func() {
			log.Printf("[Main] ops server starting on :%s", appConfig.Ops.Port)
			if err := http.ListenAndServe(":"+appConfig.Ops.Port, ui.NewOpsRouter()); err != nil {
				log.Printf("[Main] ops server failed: %v", err)
			}
		}()
	}

	log.Printf("[Main] starting dashboard on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
