package main

import (
	"context"
	"time"

	"github.com/DedS3t/monopoly-server/app/controllers"
	"github.com/DedS3t/monopoly-server/pkg"
	"github.com/DedS3t/monopoly-server/pkg/auth"
	"github.com/DedS3t/monopoly-server/pkg/routes"
	"github.com/DedS3t/monopoly-server/platform/cache"
	"github.com/DedS3t/monopoly-server/platform/config"
	"github.com/DedS3t/monopoly-server/platform/database"
	"github.com/DedS3t/monopoly-server/platform/logging"
	"github.com/DedS3t/monopoly-server/platform/queries"
	"github.com/DedS3t/monopoly-server/platform/rooms"
	socket "github.com/DedS3t/monopoly-server/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg)

	db := database.PostgreSQLConnection(cfg)
	defer db.Close()
	if err := database.CreateSchema(db); err != nil {
		log.WithError(err).Fatal("creating schema failed")
	}
	lobby := queries.Lobby{DB: db}

	opts := []rooms.Option{
		rooms.WithIds(func() string { return pkg.RandString(8) }),
		rooms.WithAuctionTimeout(cfg.AuctionTimeout),
		rooms.OnDestroy(func(id string) {
			if err := lobby.RemoveGame(id); err != nil {
				log.WithField("room", id).WithError(err).Warn("removing game row failed")
			}
		}),
	}
	var mirror *cache.Mirror
	if cfg.RedisURL != "" {
		pool := cache.CreateRedisPool(cfg.RedisURL)
		defer pool.Close()
		mirror = cache.NewMirror(pool)
		opts = append(opts, rooms.WithMirror(mirror))
	}
	manager := rooms.NewManager(opts...)
	defer manager.Close()

	var restored []string
	if mirror != nil {
		restored = restore(mirror, manager)
	}
	if err := queries.PruneGames(restored, db); err != nil {
		log.WithError(err).Warn("pruning stale games failed")
	}

	realtime, err := socket.NewServer(manager, func(token string) (string, error) {
		return auth.Parse(cfg.JWTSecret, token)
	}, lobby, cfg.AllowedOrigins)
	if err != nil {
		log.WithError(err).Fatal("creating realtime server failed")
	}
	go func() {
		if err := realtime.ListenAndServe(cfg.SocketAddr); err != nil {
			log.WithError(err).Fatal("realtime server stopped")
		}
	}()

	app := fiber.New()
	app.Use(cors.New())

	h := controllers.New(lobby, manager, cfg)
	routes.AuthRoutes(app, h)
	routes.GameRoutes(app, h)
	routes.PrivateRoutes(app, cfg.JWTSecret)

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("http server stopped")
	}
}

// restore reopens every running game found in redis and drops the rest.
// It returns the ids of the reopened rooms.
func restore(mirror *cache.Mirror, manager *rooms.Manager) []string {
	ids, err := mirror.Rooms()
	if err != nil {
		log.WithError(err).Warn("listing mirrored rooms failed")
		return nil
	}
	var restored []string
	for _, id := range ids {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		g, err := mirror.Load(id)
		if err == nil {
			_, err = manager.Restore(ctx, g)
		}
		cancel()
		if err != nil {
			log.WithField("room", id).WithError(err).Warn("dropping mirrored room")
			if err := mirror.Purge(id); err != nil {
				log.WithField("room", id).WithError(err).Warn("purging mirror failed")
			}
			continue
		}
		restored = append(restored, id)
	}
	return restored
}
