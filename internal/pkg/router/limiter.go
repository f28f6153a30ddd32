package router

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/FelixBraun92/PawPantry/internal/pkg/cache"
	"github.com/FelixBraun92/PawPantry/internal/pkg/constants"
	"github.com/FelixBraun92/PawPantry/internal/pkg/env"
)

// newRateLimiter builds the per-client request limiter. Counters live in
// Redis so every instance behind the load balancer shares the same budget.
func newRateLimiter() fiber.Handler {
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient := cache.GetClient(); cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	// Database 1 keeps limiter counters out of the cache keyspace.
	storage := redisstorage.New(redisstorage.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1,
		Reset:    false,
	})

	max := 120
	if v, err := strconv.Atoi(env.GetEnv("RATE_LIMIT_PER_MINUTE", "120")); err == nil && v > 0 {
		max = v
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		Storage:    storage,
		Next: func(c *fiber.Ctx) bool {
			path := c.Path()
			return path == constants.HealthRoute ||
				path == constants.MetricsRoute ||
				strings.HasPrefix(path, constants.DocsRoute)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Too many requests",
			})
		},
	})
}
