package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/valyala/fasthttp"

	"finance-engine/internal/config"
	"finance-engine/internal/handler"
	"finance-engine/internal/scheduleregistry"
)

func main() {
	log.SetPrefix("[finance-engine] ")

	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	registry := scheduleregistry.New(cfg.ScheduleRegistryURL, cfg.ScheduleRegistryTimeout)
	if registry.Enabled() {
		log.Printf("Tax schedule registry at %s", cfg.ScheduleRegistryURL)
	}

	h := handler.New(cfg, registry)

	log.Printf("Finance engine starting on port %d (%d trials per simulation)", cfg.Port, cfg.TrialCount)
	if err := fasthttp.ListenAndServe(":"+strconv.Itoa(cfg.Port), h.Route); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
