package health

import (
	"database/sql"
	"time"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthHTTP "github.com/hellofresh/health-go/v5/checks/http"
	healthPostgres "github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"
)

type Endpoints struct {
	DB          *sql.DB
	RedisClient *redis.Client
}

func NewHealthHandler(cfg *config.Config, _ *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "hotel-booking-platform",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: healthPostgres.New(healthPostgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				}),
			},
			health.Config{
				Name:      "booking-backend",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check: healthHTTP.New(healthHTTP.Config{
					URL: cfg.BookingBackend.BaseURL + "/hotels",
				}),
			},
		),
	)
	if err != nil {
		return nil, err
	}

	return h, nil
}
