package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"staffhub/internal/auth"
	"staffhub/internal/cache"
	"staffhub/internal/config"
	"staffhub/internal/db"
	"staffhub/internal/graph"
	"staffhub/internal/model"
	"staffhub/internal/repository"
	"staffhub/internal/router"
	"staffhub/internal/service"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Employee{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Employee{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	employeeService := service.NewEmployeeService(employeeRepo, cacheClient)
	dashboardService := service.NewDashboardService(employeeRepo, cacheClient)

	// Build the GraphQL schema
	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:      authService,
		Employees: employeeService,
		Dashboard: dashboardService,
	})
	if err != nil {
		log.Fatalf("build schema: %v", err)
	}

	// Register routes
	router.Register(e, authService, schema)

	addr := ":" + cfg.ServerPort
	log.Printf("GraphQL endpoint available at http://localhost%s/graphql", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
