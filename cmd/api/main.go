package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/mugna-shop/backend/internal/config"
	"github.com/mugna-shop/backend/internal/email"
	"github.com/mugna-shop/backend/internal/modules/admin"
	"github.com/mugna-shop/backend/internal/modules/product"
	"github.com/mugna-shop/backend/internal/modules/user"
	"github.com/mugna-shop/backend/internal/modules/verification"
	"github.com/mugna-shop/backend/internal/uploads"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, relying on process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}
	log.Info().Msg("connected to database")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(&log))
	router.Use(middleware.Recoverer)

	var mailer email.Mailer
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		mailer = email.NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.EmailFrom, &log)
	} else {
		log.Warn().Msg("mailgun not configured, verification codes will be logged")
		mailer = &email.LogMailer{Log: &log}
	}

	imageStore := uploads.NewDiskStore(cfg.UploadDir)

	productRepo := product.NewPostgresRepository(db, &log)
	productService := product.NewService(productRepo, imageStore)
	product.NewHandler(productService).RegisterRoutes(router)

	verificationRepo := verification.NewPostgresRepository(db, &log)
	verificationService := verification.NewService(verificationRepo, mailer)
	verification.NewHandler(verificationService).RegisterRoutes(router)

	userRepo := user.NewPostgresRepository(db, &log)
	userService := user.NewService(userRepo, verificationService, &log)
	user.NewHandler(userService).RegisterRoutes(router)

	adminService := admin.NewService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
	admin.NewHandler(adminService, userService, productService).RegisterRoutes(router)

	// Stored images are served straight off disk under their public path.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	log.Info().Str("port", cfg.Port).Msg("mugna api listening")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// requestLogger emits one zerolog line per request.
func requestLogger(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("requestId", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
