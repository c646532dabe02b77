package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-social-api/internal/config"
	"go-social-api/internal/database"
	"go-social-api/internal/event"
	"go-social-api/internal/handler"
	"go-social-api/internal/middleware"
	"go-social-api/internal/repository"
	"go-social-api/internal/repository/memory"
	"go-social-api/internal/router"
	"go-social-api/internal/service"
	"go-social-api/internal/token"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

// stores is the set of persistence backends chosen by STORE_DRIVER.
type stores struct {
	users       service.UserStore
	revocations service.RevocationStore
	posts       service.PostStore
	comments    service.CommentStore
	likes       service.LikeStore
	audit       service.AuditStore
	health      func(ctx context.Context) error
	close       func()
}

func New(cfg *config.Config) (*App, error) {
	st, err := openStores(cfg)
	if err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	hasher, err := service.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	bus := event.NewBus()
	ledger := service.NewRevocationLedger(st.revocations, nil)
	gate := service.NewGate(ledger, codec, st.users)

	authService := service.NewAuthService(st.users, ledger, codec, hasher, bus)
	userService := service.NewUserService(st.users, hasher, bus)
	auditService := service.NewAuditService(st.audit)
	postService := service.NewPostService(st.posts)
	commentService := service.NewCommentService(st.comments, st.posts)
	likeService := service.NewLikeService(st.likes, st.posts)

	authMiddleware := middleware.NewAuthMiddleware(gate, handler.WriteError)
	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Audit:   handler.NewAuditHandler(auditService),
		Post:    handler.NewPostHandler(postService),
		Comment: handler.NewCommentHandler(commentService),
		Like:    handler.NewLikeHandler(likeService),
		Health:  st.health,
	})

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())
	events, unsubscribe := bus.Subscribe()
	go auditService.Consume(backgroundCtx, events)
	go ledger.Run(backgroundCtx, cfg.RevocationReapInterval)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			backgroundCancel,
			unsubscribe,
			st.close,
		},
	}, nil
}

func openStores(cfg *config.Config) (stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		mem := memory.New()
		return stores{
			users:       mem.Users(),
			revocations: mem.Revocations(),
			posts:       mem.Posts(),
			comments:    mem.Comments(),
			likes:       mem.Likes(),
			audit:       mem.Audit(),
			close:       func() {},
		}, nil
	}

	slog.Info("connecting to PostgreSQL")
	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return stores{}, fmt.Errorf("failed to open database: %w", err)
	}

	pool := db.Pool
	return stores{
		users:       repository.NewUserRepository(pool),
		revocations: repository.NewRevocationRepository(pool),
		posts:       repository.NewPostRepository(pool),
		comments:    repository.NewCommentRepository(pool),
		likes:       repository.NewLikeRepository(pool),
		audit:       repository.NewAuditRepository(pool),
		health:      db.Health,
		close:       db.Close,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.Close()
	slog.Info("server stopped")
	return runErr
}

// Close stops background work and releases the store.
func (a *App) Close() {
	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}
	a.cleanupFuncs = nil
}
