package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/arenadesk/arenadesk/config"
	"github.com/arenadesk/arenadesk/internal/auth"
	"github.com/arenadesk/arenadesk/internal/events"
	"github.com/arenadesk/arenadesk/internal/handlers"
	"github.com/arenadesk/arenadesk/internal/mail"
	"github.com/arenadesk/arenadesk/internal/middlewares"
	"github.com/arenadesk/arenadesk/internal/repository"
	"github.com/arenadesk/arenadesk/internal/store"
	"github.com/arenadesk/arenadesk/internal/teams"
	"github.com/arenadesk/arenadesk/internal/users"
	"github.com/arenadesk/arenadesk/model"
	"github.com/arenadesk/arenadesk/params"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fredis "github.com/gofiber/storage/redis/v3"
	"github.com/urfave/cli/v2"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "Event and team management service"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func initLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func initDatabase(cfg config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if err := db.AutoMigrate(model.Models...); err != nil {
		return nil, err
	}
	return db, nil
}

func initLoginStateStore(redisURL string) store.Store[auth.LoginState] {
	if redisURL == "" {
		return store.NewMemoryStore[auth.LoginState]()
	}
	storage := fredis.New(fredis.Config{URL: redisURL})
	return store.NewRedisStore[auth.LoginState](storage.Conn(), "login:")
}

func initMailSender(cfg config.SMTPConfig) mail.MailSender {
	if cfg.Host == "" {
		slog.Warn("SMTP is not configured, verification links will be echoed in responses")
		return nil
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return mail.NewSMTPMailSender(dialer, cfg.From)
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	initLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	db, err := initDatabase(cfg.MySQL)
	if err != nil {
		slog.Error("Could not connect to database.", "error", err)
		return err
	}

	var (
		userRepo  = repository.NewUserRepository(db)
		eventRepo = repository.NewEventRepository(db)
		teamRepo  = repository.NewTeamRepository(db)
	)

	var (
		tokenIssuer  = auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionMaxAge)
		userService  = users.NewUserService(userRepo, cfg.Auth.RequireEmailVerification, cfg.Auth.VerificationMaxAge)
		authService  = auth.NewAuthenticateService(userService, tokenIssuer, initLoginStateStore(cfg.RedisURL), cfg.Auth.MaxLoginFails, cfg.Auth.LoginLockDuration)
		eventService = events.NewEventService(eventRepo)
		teamService  = teams.NewTeamService(teamRepo)
	)

	var (
		authHandler  = handlers.NewAuthHandler(userService, authService, initMailSender(cfg.SMTP), cfg.BaseURL)
		adminHandler = handlers.NewAdminHandler(userService)
		eventHandler = handlers.NewEventHandler(eventService)
		teamHandler  = handlers.NewTeamHandler(teamService)
		statsHandler = handlers.NewStatsHandler(eventService, teamService)
	)

	router := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    params.ServerBodyLimit,
		IdleTimeout:  params.ServerIdleTimeout,
		ReadTimeout:  params.ServerReadTimeout,
		WriteTimeout: params.ServerWriteTimeout,
		ErrorHandler: middlewares.ErrorHandler,
	})
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowOrigins, ","),
	}))

	requireAuth := middlewares.RequireAuth(tokenIssuer, userService)
	requireAdmin := middlewares.RequireAdmin()

	router.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": "API is running..."})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.PostRegister)
	authGroup.Post("/login", authHandler.PostLogin)
	authGroup.Get("/verify-email/:token", authHandler.GetVerifyEmail)
	authGroup.Post("/resend-verification", authHandler.PostResendVerification)
	authGroup.Get("/profile", requireAuth, authHandler.GetProfile)

	adminGroup := api.Group("/admin", requireAuth, requireAdmin)
	adminGroup.Get("/users", adminHandler.GetUsers)
	adminGroup.Get("/users/pending", adminHandler.GetPendingUsers)
	adminGroup.Put("/users/:id/approve", adminHandler.PutApproveUser)
	adminGroup.Put("/users/:id/reject", adminHandler.PutRejectUser)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)

	eventGroup := api.Group("/events", requireAuth)
	eventGroup.Post("/", eventHandler.PostEvent)
	eventGroup.Get("/", eventHandler.GetEvents)
	eventGroup.Get("/:id", eventHandler.GetEvent)
	eventGroup.Put("/:id", eventHandler.PutEvent)
	eventGroup.Delete("/:id", eventHandler.DeleteEvent)

	teamGroup := api.Group("/teams", requireAuth)
	teamGroup.Post("/", teamHandler.PostTeam)
	teamGroup.Get("/", teamHandler.GetTeams)
	teamGroup.Get("/search", teamHandler.GetSearchTeams)
	teamGroup.Get("/:id", teamHandler.GetTeam)
	teamGroup.Put("/:id", teamHandler.PutTeam)
	teamGroup.Delete("/:id", teamHandler.DeleteTeam)

	api.Get("/stats", requireAuth, statsHandler.GetStats)

	slog.Info("Starting server", "address", cfg.ListenAddr)
	return router.Listen(cfg.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
