package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/compras-sa/aprovacao-cotacao/internal/admin"
	"github.com/compras-sa/aprovacao-cotacao/internal/aprovacao"
	"github.com/compras-sa/aprovacao-cotacao/internal/broker"
	"github.com/compras-sa/aprovacao-cotacao/internal/config"
	"github.com/compras-sa/aprovacao-cotacao/internal/db"
	"github.com/compras-sa/aprovacao-cotacao/internal/handlers"
	"github.com/compras-sa/aprovacao-cotacao/internal/repository"
)

// cmd/api/main.go
func main() {
	cfg := config.Load() // .env

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed":
			// conecta somente o necessário para o seed
			client, err := db.NewMongoClient(cfg.MongoURI)
			if err != nil {
				slog.Error("mongo_connect_error", "err", err)
				os.Exit(1)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			database := client.Database(cfg.MongoDB)
			users := repository.NewUserRepository(database)
			memberships := repository.NewMembershipRepository(database)
			if err := admin.SeedUsuarios(context.Background(), users, memberships, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			slog.Info("seed_done")
			return // encerra o processo sem subir HTTP
		default:
			slog.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	// conecta Mongo
	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	// publisher (Rabbit) - trilha de auditoria das aprovações
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbitmq connect error: %v", err)
	}
	defer pub.Close()

	database := client.Database(cfg.MongoDB)
	quotes := repository.NewQuoteRepository(database)
	approvals := repository.NewApprovalRepository(database)
	users := repository.NewUserRepository(database)
	memberships := repository.NewMembershipRepository(database)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := approvals.EnsureIndexes(ctx)
		cancel()
		if err != nil {
			log.Fatalf("ensure indexes error: %v", err)
		}
	}

	perms := aprovacao.NewPermissionResolver(memberships)
	svc := aprovacao.NewService(quotes, approvals, users, perms, pub, slog.Default())
	h := handlers.NewCotacaoHandler(quotes, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/api/cotacoes", h.Cotacoes)
	mux.HandleFunc("/api/cotacoes/", h.CotacaoSubtree)
	mux.HandleFunc("/api/usuarios/", h.UsuarioNiveis)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           logMiddleware(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown error", "err", err)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		dur := time.Since(start)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "dur", fmtDuration(dur))
	})
}

func fmtDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
