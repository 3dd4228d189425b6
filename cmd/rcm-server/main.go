package main

import (
	"context"
	"fmt"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "rcm-workflow/docs"
	"rcm-workflow/internal/api"
	"rcm-workflow/internal/api/handler"
	"rcm-workflow/internal/client"
	"rcm-workflow/internal/config"
	"rcm-workflow/internal/ingest"
	"rcm-workflow/internal/match"
	"rcm-workflow/internal/model"
	"rcm-workflow/internal/store"
	"rcm-workflow/pkg/router"
)

// @title RCM Workflow API
// @version 1.0
// @description Upload ingestion, shape validation and claim rule processing for the revenue cycle management workflow.
// @BasePath /api/v1
func main() {
	cfg := config.Load()

	// Init DB
	if err := store.InitDB(cfg.DBPath); err != nil {
		panic(err)
	}

	// Claim engine with persisted audit trail
	engine := match.NewEngine(func(ev model.Event) {
		if err := store.SaveEvent(ev); err != nil {
			fmt.Printf("❌ Failed to persist event %s: %v\n", ev.EventType, err)
		}
	})
	fmt.Printf("🌱 Seeded %d match rules\n", engine.Seed())

	// Optional Postgres claim tracking
	var claimStore *store.ClaimStore
	if cfg.ClaimStoreURL != "" {
		cs, err := store.NewClaimStore(context.Background(), cfg.ClaimStoreURL)
		if err != nil {
			fmt.Printf("⚠️ Claim store disabled: %v\n", err)
		} else {
			claimStore = cs
			defer cs.Close()
		}
	}

	handler.Init(engine, ingest.NewOrchestrator(), client.New(cfg.SubmitBaseURL), claimStore)

	// Create router
	r := router.New()
	r.SetCORS(cfg.FrontendOrigins)

	// Register API routes
	api.RegisterRoutes(r)
	r.Mount("/swagger/", httpSwagger.WrapHandler)

	// Start server
	r.Start(cfg.Addr())
}
