package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/config"
	"github.com/iliyamo/task-vault/internal/handler"
	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/queue"
	"github.com/iliyamo/task-vault/internal/repository"
	"github.com/iliyamo/task-vault/internal/router"
	"github.com/iliyamo/task-vault/internal/session"
	"github.com/iliyamo/task-vault/internal/store"
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()
	cfg := config.Load()

	users, err := store.NewFileCollection[model.User](cfg.DataDir, "users")
	if err != nil {
		log.Fatal(err)
	}
	tasks, err := store.NewFileCollection[model.Task](cfg.DataDir, "tasks")
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepo(users, cfg.BcryptCost)
	taskRepo := repository.NewTaskRepo(tasks)
	sessions := newSessionStore(cfg)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, sessions), sessions, userRepo)
	router.RegisterTasks(e, handler.NewTaskHandler(taskRepo, cfg.EventsEnabled), sessions, userRepo)

	if cfg.EventsEnabled {
		// Background consumer appends task events to logs/tasks.log and
		// reconnects on its own; it never takes the server down.
		go func() {
			if err := queue.StartTaskConsumer(); err != nil {
				log.Printf("task consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, data=%s, sessions=%s)", addr, cfg.Env, cfg.DataDir, cfg.SessionBackend)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// newSessionStore picks the session backend. Redis is only used when
// explicitly requested AND reachable; anything else degrades to the
// in-memory store so the service always starts.
func newSessionStore(cfg config.Config) session.Store {
	if cfg.SessionBackend == "redis" {
		if client := config.NewRedisClient(); client != nil {
			return session.NewRedisStore(client, cfg.SessionTTL)
		}
		log.Print("redis unreachable, falling back to in-memory sessions")
	}
	mem := session.NewMemoryStore(cfg.SessionTTL)
	mem.StartSweep(context.Background(), time.Hour)
	return mem
}
