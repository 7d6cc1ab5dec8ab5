// Command elyx drives the generative health-data pipeline, the role-scoped
// RAG API, and the offline chat simulator from a single binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/elyx-health/conductor/internal/api"
	"github.com/elyx-health/conductor/internal/chatsim"
	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/genclient"
	"github.com/elyx-health/conductor/internal/index"
	"github.com/elyx-health/conductor/internal/rag"
	"github.com/elyx-health/conductor/internal/simulate"
	"github.com/elyx-health/conductor/internal/storage"
	"github.com/elyx-health/conductor/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: elyx <generate|serve|chatsim> [flags]")
		os.Exit(1)
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	loadDotEnv()

	ctx := context.Background()

	switch subcommand {
	case "generate":
		runGenerate(ctx, args)
	case "serve":
		runServe(ctx, args)
	case "chatsim":
		runChatSim(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q (want generate|serve|chatsim)\n", subcommand)
		os.Exit(1)
	}
}

func loadDotEnv() {
	configDir := getEnv("CONFIG_DIR", "./deploy/config")
	envPath := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("could not load .env file, continuing with existing environment", "path", envPath, "error", err)
	} else {
		slog.Info("loaded environment file", "path", envPath)
	}
}

// runGenerate executes C1-C9: seed, simulate every table, write CSVs,
// persist to Postgres, and rebuild the vector index.
func runGenerate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configDir := fs.String("config-dir", getEnv("CONFIG_DIR", "./deploy/config"), "path to profile.yaml/rules.yaml")
	outDir := fs.String("out-dir", getEnv("OUT_DIR", "./out"), "directory to write CSV tables to")
	_ = fs.Parse(args)

	slog.Info("starting pipeline generation", "version", version.Full(), "config_dir", *configDir)

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	output := simulate.Run(cfg)
	slog.Info("pipeline generation complete",
		"days", len(output.Daily), "events", len(output.Events), "interventions", len(output.Interventions),
		"chats", len(output.Chats))

	if err := writeCSVTables(*outDir, output); err != nil {
		slog.Error("failed to write CSV tables", "error", err)
		os.Exit(1)
	}

	dbCfg, err := storage.LoadConfigFromEnv()
	if err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}
	dbClient, err := storage.NewClient(ctx, dbCfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := storage.SaveOutput(ctx, dbClient.DB(), cfg.Profile.MemberID,
		output.Events, output.Daily, output.Labs, output.Fitness, output.BodyComp,
		output.Interventions, output.Chats, output.KPIMonths); err != nil {
		slog.Error("failed to persist canonical tables", "error", err)
		os.Exit(1)
	}
	slog.Info("persisted canonical tables to postgres")

	docs := index.BuildDocuments(cfg.Profile, output.Events, output.Daily, output.Labs,
		output.Fitness, output.BodyComp, output.Interventions, output.Chats, output.KPIMonths)

	store := index.NewStore(dbClient.DB())
	if err := store.Rebuild(ctx, docs); err != nil {
		slog.Error("failed to rebuild vector index", "error", err)
		os.Exit(1)
	}
	slog.Info("rebuilt vector index", "documents", len(docs))
}

func writeCSVTables(outDir string, output simulate.Output) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	writers := map[string]func(f *os.File) error{
		"daily.csv":         func(f *os.File) error { return storage.WriteDaily(f, output.Daily) },
		"events.csv":        func(f *os.File) error { return storage.WriteEvents(f, output.Events) },
		"labs.csv":          func(f *os.File) error { return storage.WriteLabs(f, output.Labs) },
		"fitness.csv":       func(f *os.File) error { return storage.WriteFitness(f, output.Fitness) },
		"body_comp.csv":     func(f *os.File) error { return storage.WriteBodyComp(f, output.BodyComp) },
		"interventions.csv": func(f *os.File) error { return storage.WriteInterventions(f, output.Interventions) },
		"chats.csv":         func(f *os.File) error { return storage.WriteChats(f, output.Chats) },
		"kpi_months.csv":    func(f *os.File) error { return storage.WriteKPIMonths(f, output.KPIMonths) },
	}

	for name, write := range writers {
		path := filepath.Join(outDir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		err = write(f)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("close %s: %w", path, closeErr)
		}
	}
	return nil
}

// runServe exposes the RAG HTTP API (C10-C14).
func runServe(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", getEnv("HTTP_ADDR", ":8080"), "address to listen on")
	genEndpoint := fs.String("generator-endpoint", getEnv("GENERATOR_ENDPOINT", "http://localhost:9000/generate"), "generator backend endpoint")
	_ = fs.Parse(args)

	slog.Info("starting rag api server", "version", version.Full(), "addr", *addr)

	dbCfg, err := storage.LoadConfigFromEnv()
	if err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}
	dbClient, err := storage.NewClient(ctx, dbCfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	creds, err := genclient.CredentialsFromEnv("ELYX_GENERATOR_KEYS")
	if err != nil {
		slog.Error("failed to load generator credentials", "error", err)
		os.Exit(1)
	}
	ring := genclient.NewCredentialRing(creds)
	driver := genclient.NewRotatingDriver(*genEndpoint, func(endpoint string, cred genclient.Credential) genclient.Driver {
		return genclient.NewHTTPDriver(endpoint, cred.Key)
	}, ring, []string{"large", "small"}, 3)

	store := index.NewStore(dbClient.DB())
	facts := rag.NewFactsAssembler(dbClient.DB())
	retriever := rag.NewRetriever(store)
	orchestrator := rag.NewOrchestrator(facts, retriever, driver, 3)

	server := api.NewServer()
	server.SetOrchestrator(orchestrator)
	if err := server.ValidateWiring(); err != nil {
		slog.Error("server wiring incomplete", "error", err)
		os.Exit(1)
	}

	slog.Info("rag api server listening", "addr", *addr)
	if err := server.Start(*addr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// runChatSim drives the live API with a simulated conversational trace (C15).
func runChatSim(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("chatsim", flag.ExitOnError)
	apiBase := fs.String("api-base", getEnv("ELYX_API_BASE", "http://localhost:8080"), "base URL of a running serve instance")
	configDir := fs.String("config-dir", getEnv("CONFIG_DIR", "./deploy/config"), "path to profile.yaml/rules.yaml")
	outFile := fs.String("out", getEnv("CHATSIM_OUT", "./out/chatsim_trace.csv"), "path to write the conversational trace")
	_ = fs.Parse(args)

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	dbCfg, err := storage.LoadConfigFromEnv()
	if err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}
	dbClient, err := storage.NewClient(ctx, dbCfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	events, err := chatsim.LoadScheduledEvents(ctx, dbClient.DB(), cfg.Profile.MemberID)
	if err != nil {
		slog.Error("failed to load scheduled events", "error", err)
		os.Exit(1)
	}

	sim := chatsim.NewSimulator(*apiBase, cfg.Profile.StartDate, cfg.Profile.EndDate, events)
	trace, err := sim.Run(ctx)
	if err != nil {
		slog.Error("chat simulation failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outFile), 0o755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	f, err := os.Create(*outFile)
	if err != nil {
		slog.Error("failed to create trace file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := chatsim.WriteTrace(f, trace); err != nil {
		slog.Error("failed to write trace", "error", err)
		os.Exit(1)
	}
	slog.Info("chat simulation complete", "messages", len(trace), "out", *outFile)
}
