package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/task-manager-api/modules/annotation"
	"github.com/example/task-manager-api/modules/api"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/cache"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/database"
	"github.com/example/task-manager-api/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var envFile string

	flagSet := pflag.NewFlagSet("task-manager-api", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		log.Printf("Error: %v", err)
		return 2
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return 0
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file loaded, using process environment", envFile)
	}
	cfg := loadConfig()

	args := flagSet.Args()
	command := "serve"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "serve":
		return serve(cfg)
	case "db":
		if len(args) < 2 {
			log.Println("Error: db requires one of: create, drop, seed")
			return 2
		}
		if err := runDB(context.Background(), cfg.Database, args[1]); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		return 0
	default:
		log.Printf("Error: unknown command %q", command)
		printHelp(flagSet)
		return 2
	}
}

func serve(cfg Config) int {
	log.Println("=== Task Manager API ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.Database.Driver)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Printf("Failed to create application: %v", err)
		return 1
	}
	logger := app.Logger()

	// Plugins are handed to modules through SetPlugin under their alias.
	if err := app.RegisterPlugin(database.NewPluginModule(cfg.Database, logger), "db"); err != nil {
		log.Printf("Failed to register database plugin: %v", err)
		return 1
	}
	if cfg.Cache.Addr != "" {
		log.Printf("Redis: %s (category cache, login rate limiting)", cfg.Cache.Addr)
		if err := app.RegisterPlugin(cache.NewPluginModule(cfg.Cache, logger), "cache"); err != nil {
			log.Printf("Failed to register cache plugin: %v", err)
			return 1
		}
	} else {
		log.Println("Redis: disabled (REDIS_ADDR not set)")
	}

	// Order: providers first, then modules depending on them.
	modules := []mono.Module{
		auth.NewModule(cfg.Tokens, logger),
		catalog.NewModule(logger),
		task.NewModule(logger),
		annotation.NewModule(logger),
		api.NewModule(cfg.APIConfig(), logger),
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Printf("Failed to register %s module: %v", m.Name(), err)
			return 1
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Printf("Failed to start application: %v", err)
		return 1
	}

	printStartupInfo(cfg.HTTPPort)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	return exitCode
}

var closeDatabase = database.Close

// runDB executes one of the schema maintenance commands. A failure to close
// the connection is reported unless the command itself failed.
func runDB(ctx context.Context, cfg database.Config, action string) (err error) {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeDatabase(db); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
	}()

	switch action {
	case "create":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("Database tables created")
	case "drop":
		if err := database.Drop(db); err != nil {
			return err
		}
		log.Println("Database tables dropped")
	case "seed":
		if err := database.Migrate(db); err != nil {
			return err
		}
		if err := database.Seed(ctx, db, auth.NewPasswordHasher().Hash, time.Now()); err != nil {
			return err
		}
		log.Println("Database seeded")
	default:
		return fmt.Errorf("unknown db command %q (want create, drop or seed)", action)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: task-manager-api [flags] [serve | db create | db drop | db seed]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprint(os.Stderr, flagSet.FlagUsages())
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  POST   /auth/register                          - Register a user")
	log.Println("  POST   /auth/login                             - Obtain a bearer token")
	log.Println("  PUT    /auth/users                             - Update name or password")
	log.Println("  GET    /categories/                            - List categories with tasks")
	log.Println("  POST   /categories/tasks/:task_id/categories   - Create a category for a task")
	log.Println("  GET    /tasks/                                 - List tasks")
	log.Println("  POST   /tasks/                                 - Create a task")
	log.Println("  POST   /tasks/:task_id/comments/               - Comment on a task")
	log.Println("  POST   /tasks/:task_id/task_trackings/         - Track time on a task")
	log.Println("  GET    /health                                 - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
