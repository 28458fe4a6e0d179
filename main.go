package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/example/certtrack/internal/api"
	"github.com/example/certtrack/internal/config"
	"github.com/example/certtrack/internal/db"
	"github.com/example/certtrack/internal/mcp"
	"github.com/example/certtrack/pkg/audit"
	"github.com/mark3labs/mcp-go/server"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "version":
		fmt.Printf("certtrack %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`certtrack — hardware test lab reference board

Usage:
  certtrack serve [--config config.toml] [--addr :8080]
  certtrack mcp   [--config config.toml]
  certtrack version
  certtrack help

Commands:
  serve     Start the HTTP server
  mcp       Serve catalog tools over MCP stdio
  version   Print version
  help      Show this help`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	addr := fs.String("addr", "", "listen address (overrides config)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	retryDB, manualDB, waiverDB := openStores(cfg)
	defer retryDB.Close()
	defer manualDB.Close()
	defer waiverDB.Close()

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatalf("creating uploads dir: %v", err)
	}

	apiHandler := api.New(retryDB, manualDB, waiverDB, cfg.Uploads)

	mux := http.NewServeMux()
	apiHandler.RegisterRoutes(mux)

	// Uploaded files live under the configured dir, not inside static/
	uploadsFS := http.FileServer(http.Dir(cfg.Uploads.Dir))
	mux.Handle("GET /static/uploads/", api.NoCacheStatic(http.StripPrefix("/static/uploads/", uploadsFS)))

	// Serve static pages
	staticFS := http.FileServer(http.Dir("static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "static/index.html")
	})

	log.Printf("certtrack %s listening on %s", version, cfg.Server.Addr)
	log.Printf("retry store: %s", cfg.Database.RetryPath)
	log.Printf("manual store: %s", cfg.Database.ManualPath)
	log.Printf("waiver store: %s", cfg.Database.WaiverPath)

	if err := http.ListenAndServe(cfg.Server.Addr, api.SecurityHeaders(mux)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	retryDB, manualDB, waiverDB := openStores(cfg)
	defer retryDB.Close()
	defer manualDB.Close()
	defer waiverDB.Close()

	auditLog := audit.NewSQLiteLogger(manualDB.DB)
	if err := auditLog.Init(); err != nil {
		log.Fatalf("initializing audit log: %v", err)
	}
	defer auditLog.Close()

	srv := mcp.NewServer(retryDB, manualDB, waiverDB, auditLog)
	if err := server.ServeStdio(srv); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}

func openStores(cfg *config.Config) (*db.RetryDB, *db.ManualDB, *db.WaiverDB) {
	retryDB, err := db.OpenRetry(cfg.Database.RetryPath)
	if err != nil {
		log.Fatalf("opening retry store: %v", err)
	}
	manualDB, err := db.OpenManual(cfg.Database.ManualPath)
	if err != nil {
		log.Fatalf("opening manual store: %v", err)
	}
	waiverDB, err := db.OpenWaiver(cfg.Database.WaiverPath)
	if err != nil {
		log.Fatalf("opening waiver store: %v", err)
	}
	return retryDB, manualDB, waiverDB
}
