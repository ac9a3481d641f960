package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/shifo-uz/clinicbackend/config"
	"github.com/shifo-uz/clinicbackend/database"
	"github.com/shifo-uz/clinicbackend/handlers"
	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/repository"
	"github.com/shifo-uz/clinicbackend/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	var store media.Store
	switch cfg.StorageDriver {
	case config.StorageDriverMinio:
		store, err = media.NewObjectStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		store, err = media.NewLocalStorage(cfg.UploadsPath)
	}
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureBuckets(ctx, media.AllBuckets()); err != nil {
		cancel()
		log.Fatalf("FATAL: Failed to prepare storage buckets: %v", err)
	}
	cancel()

	thumbGen := workers.NewThumbnailGenerator(db, store, cfg.ThumbnailMaxSize, cfg.ThumbnailQueueSize, cfg.NumThumbnailWorkers)
	defer thumbGen.Stop()

	branchRepo := repository.NewBranchRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	receptionRepo := repository.NewReceptionRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	contentRepo := repository.NewContentRepository(db)

	seedAdmin(adminRepo)

	secretKey := []byte(cfg.SecretKey)
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour

	authHandler := handlers.NewAuthHandler(adminRepo, db, secretKey, tokenTTL)
	branchHandler := handlers.NewBranchHandler(branchRepo, store, thumbGen)
	doctorHandler := handlers.NewDoctorHandler(doctorRepo, store, thumbGen)
	galleryHandler := handlers.NewGalleryHandler(galleryRepo, store, thumbGen)
	newsHandler := handlers.NewNewsHandler(newsRepo, store, thumbGen)
	patientHandler := handlers.NewPatientHandler(patientRepo, store, thumbGen)
	receptionHandler := handlers.NewReceptionHandler(receptionRepo, store, thumbGen, secretKey, tokenTTL)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo)
	contentHandler := handlers.NewContentHandler(contentRepo)
	assetServer := handlers.NewAssetServer(store)

	authed := handlers.AuthMiddleware(secretKey)
	adminOnly := handlers.RequireRoles(models.RoleAdmin)
	staffOnly := handlers.RequireRoles(models.RoleAdmin, models.RoleReception)

	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Get("/uploads/*", assetServer.ServeHTTP)

	r.Route("/branch", func(r chi.Router) {
		r.Get("/", branchHandler.List)
		r.Get("/{id}", branchHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", branchHandler.Create)
			r.Patch("/{id}", branchHandler.Edit)
			r.Delete("/{id}", branchHandler.Delete)
		})
	})

	r.Route("/doctor", func(r chi.Router) {
		r.Get("/", doctorHandler.List)
		r.Get("/{id}", doctorHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", doctorHandler.Create)
			r.Patch("/{id}", doctorHandler.Edit)
			r.Delete("/{id}", doctorHandler.Delete)
		})
	})

	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", galleryHandler.List)
		r.Get("/{id}", galleryHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", galleryHandler.Create)
			r.Patch("/{id}", galleryHandler.Edit)
			r.Delete("/{id}", galleryHandler.Delete)
		})
	})

	r.Route("/news", func(r chi.Router) {
		r.Get("/", newsHandler.List)
		r.Get("/{id}", newsHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", newsHandler.Create)
			r.Patch("/{id}", newsHandler.Edit)
			r.Delete("/{id}", newsHandler.Delete)
		})
	})

	r.Route("/patient", func(r chi.Router) {
		r.Post("/", patientHandler.Create)
		r.Group(func(r chi.Router) {
			r.Use(authed, staffOnly)
			r.Get("/", patientHandler.List)
			r.Get("/history", patientHandler.History)
			r.Get("/{id}", patientHandler.Get)
			r.Patch("/{id}", patientHandler.Edit)
			r.Delete("/{id}", patientHandler.Delete)
		})
	})

	r.Route("/reception", func(r chi.Router) {
		r.Post("/login", receptionHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authed, staffOnly)
			r.Get("/me", receptionHandler.Me)
			r.Patch("/me", receptionHandler.EditMe)
		})
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/", receptionHandler.List)
			r.Post("/", receptionHandler.Create)
			r.Get("/{id}", receptionHandler.Get)
			r.Patch("/{id}", receptionHandler.Edit)
			r.Delete("/{id}", receptionHandler.Delete)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", authHandler.Create)
			r.Get("/profile", authHandler.Profile)
			r.Patch("/username", authHandler.EditUsername)
			r.Patch("/password", authHandler.EditPassword)
			r.Get("/dashboard", authHandler.Dashboard)
		})
	})

	r.Route("/feedback", func(r chi.Router) {
		r.Post("/", feedbackHandler.Create)
		r.Get("/", feedbackHandler.ListApproved)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/all", feedbackHandler.ListAll)
			r.Patch("/{id}", feedbackHandler.SetApproval)
			r.Delete("/{id}", feedbackHandler.Delete)
		})
	})

	r.Route("/contact", func(r chi.Router) {
		r.Get("/", contentHandler.ListContacts)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", contentHandler.CreateContact)
			r.Patch("/{id}", contentHandler.UpdateContact)
			r.Delete("/{id}", contentHandler.DeleteContact)
		})
	})

	r.Route("/statistics", func(r chi.Router) {
		r.Get("/", contentHandler.ListStatistics)
		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", contentHandler.CreateStatistic)
			r.Patch("/{id}", contentHandler.UpdateStatistic)
			r.Delete("/{id}", contentHandler.DeleteStatistic)
		})
	})

	r.Route("/about/us", func(r chi.Router) {
		r.Get("/", contentHandler.GetAboutUs)
		r.With(authed, adminOnly).Patch("/", contentHandler.UpdateAboutUs)
	})

	r.Route("/additional/info", func(r chi.Router) {
		r.Get("/", contentHandler.GetAdditionalInfo)
		r.With(authed, adminOnly).Patch("/", contentHandler.UpdateAdditionalInfo)
	})

	addr := ":" + cfg.AppPort
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// long enough for a full-size multipart upload on a slow link
		ReadTimeout:  15 * time.Minute,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("starting server on %s (storage driver: %s)", addr, cfg.StorageDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("FATAL: Server failed: %v", err)
	}
}

// seedAdmin creates the bootstrap admin account on an empty database so the
// panel is reachable on first run.
func seedAdmin(adminRepo *repository.AdminRepository) {
	count, err := adminRepo.Count()
	if err != nil {
		log.Fatalf("FATAL: Failed to check admin accounts: %v", err)
	}
	if count > 0 {
		return
	}

	username := "admin"
	password := "admin123"
	if _, err := adminRepo.Create(username, password); err != nil {
		log.Fatalf("FATAL: Failed to seed admin account: %v", err)
	}
	log.Printf("WARNING: seeded default admin account %q; change its password immediately", username)
}
