package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsm00037/terauja-backend/core/config"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/llm"
	"github.com/fsm00037/terauja-backend/core/loader"
	"github.com/fsm00037/terauja-backend/core/logger"
	"github.com/fsm00037/terauja-backend/core/mail"
	"github.com/fsm00037/terauja-backend/core/middleware/rayid"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/core/push"
	"github.com/fsm00037/terauja-backend/core/storage"

	"github.com/fsm00037/terauja-backend/feature/assignments"
	"github.com/fsm00037/terauja-backend/feature/audit"
	"github.com/fsm00037/terauja-backend/feature/auth"
	"github.com/fsm00037/terauja-backend/feature/chat"
	"github.com/fsm00037/terauja-backend/feature/dashboard"
	"github.com/fsm00037/terauja-backend/feature/messages"
	"github.com/fsm00037/terauja-backend/feature/notes"
	"github.com/fsm00037/terauja-backend/feature/notifications"
	"github.com/fsm00037/terauja-backend/feature/patients"
	"github.com/fsm00037/terauja-backend/feature/psychologists"
	"github.com/fsm00037/terauja-backend/feature/questionnaires"
	"github.com/fsm00037/terauja-backend/feature/scheduler"
	"github.com/fsm00037/terauja-backend/feature/sessions"
	"github.com/fsm00037/terauja-backend/feature/stats"
	"github.com/fsm00037/terauja-backend/feature/superadmin"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	_ "github.com/fsm00037/terauja-backend/docs/swagger"
)

// @title Terauja Backend API
// @version 1.0
// @description Backend API for the psychology practice platform.
// @BasePath /

const swaggerPage = `<!DOCTYPE html>
<html>
<head>
  <title>Terauja Backend API</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: "/docs/doc.json", dom_id: "#swagger-ui"});
  </script>
</body>
</html>`

const redocPage = `<!DOCTYPE html>
<html>
<head>
  <title>Terauja Backend API</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
  <redoc spec-url="/docs/doc.json"></redoc>
  <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the backend server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database and migrate the schema
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			logg.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		if err := bootstrapAdmin(db, logg); err != nil {
			logg.Fatal("Failed to bootstrap default admin", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 5. Initialize shared services
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		} else {
			logg.Info("Object storage disabled, photo uploads unavailable")
		}

		var llmClient llm.Client
		if client, err := llm.NewClient(cfg.LLM, logg); err != nil {
			logg.Warn("LLM client unavailable, chat suggestions disabled", zap.Error(err))
		} else {
			llmClient = client
		}

		recorder := audit.NewRecorder(db, logg)
		mailer := mail.NewMailer(cfg.Mail, logg)
		pushSender := push.NewSender(cfg.Push, logg)

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		mgr.Register(auth.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(psychologists.NewFeature(db, cfg.Auth, recorder, mailer, store, cfg.Storage.Bucket, logg))
		mgr.Register(patients.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(questionnaires.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(assignments.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(messages.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(notes.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(sessions.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(stats.NewFeature(db, cfg.Auth, recorder, logg))
		mgr.Register(audit.NewFeature(db, cfg.Auth, logg))
		mgr.Register(dashboard.NewFeature(db, cfg.Auth, logg))
		mgr.Register(chat.NewFeature(db, cfg.Auth, llmClient, logg))
		mgr.Register(notifications.NewFeature(db, cfg.Auth, pushSender, logg))
		mgr.Register(superadmin.NewFeature(db, cfg.Auth, mailer, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. CORS for the web frontend
		app.Use(cors.New(cors.Config{
			AllowOriginsFunc: func(origin string) bool { return true },
			AllowCredentials: true,
		}))

		// 3. Request logging (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 4. API Documentation (Public)
		app.Get("/docs", func(c *fiber.Ctx) error {
			c.Type("html")
			return c.SendString(swaggerPage)
		})
		app.Get("/docs/*", swagger.HandlerDefault)
		app.Get("/redoc", func(c *fiber.Ctx) error {
			c.Type("html")
			return c.SendString(redocPage)
		})

		// 5. Health root
		app.Get("/", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"message": "Psychology Backend API is running"})
		})

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Background scheduler
		sched := scheduler.New(db, logg)
		if err := sched.Start(); err != nil {
			logg.Fatal("Failed to start scheduler", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		sched.Stop()
		_ = app.Shutdown()
	},
}

// bootstrapAdmin creates the default administrator account on first boot so
// the platform is reachable before any user exists.
func bootstrapAdmin(db *gorm.DB, logg *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Psychologist{}).
		Where("role IN ?", []string{models.RoleAdmin, models.RoleSuperadmin}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.Psychologist{
		Name:     "Super Admin",
		Email:    "admin@psicouja.com",
		Password: string(hash),
		Role:     models.RoleAdmin,
		Schedule: "Siempre Disponible",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logg.Info("Default admin created", zap.String("email", admin.Email))
	return nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
