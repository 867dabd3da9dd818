package main

import (
	"log"

	"examportal/app"
	config "examportal/configs"
)

func main() {
	cfg := config.LoadConfig()

	web := app.New(cfg)

	log.Printf("✅ Exam portal client running on port %s (backend: %s)", cfg.Port, cfg.BackendURL)
	if err := web.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
