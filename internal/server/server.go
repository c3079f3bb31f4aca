package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Evayanr/hike-organizer/internal/activity"
	"github.com/Evayanr/hike-organizer/internal/config"
	"github.com/Evayanr/hike-organizer/internal/faq"
	"github.com/Evayanr/hike-organizer/internal/member"
	"github.com/Evayanr/hike-organizer/internal/notify"
	"github.com/Evayanr/hike-organizer/internal/poster"
	"github.com/Evayanr/hike-organizer/internal/route"
	"github.com/Evayanr/hike-organizer/internal/weather"
	"github.com/Evayanr/hike-organizer/internal/workflow"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routeSvc := route.NewService(s.DB)
	activitySvc := activity.NewService(s.DB)
	weatherClient := weather.NewClient(s.Cfg, s.Redis)
	compositor := poster.NewCompositor(s.Cfg)
	bot := notify.NewBot(s.Cfg)
	workflowSvc := workflow.NewService(routeSvc, weatherClient, compositor, activitySvc, bot, s.Cfg)

	route.RegisterRoutes(s.App.Group("/routes"), routeSvc, route.NewDiscoverer(s.Cfg))
	activity.RegisterRoutes(s.App.Group("/activities"), activitySvc)
	workflow.RegisterRoutes(s.App.Group("/workflows"), workflowSvc)
	faq.RegisterRoutes(s.App.Group("/faq"), faq.NewService(s.DB))
	member.RegisterRoutes(s.App.Group("/"), member.NewService(s.DB))
}
