package health

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const componentVersion = "1.0.0"

// NewHealthHandler reports the state of the stores checkout and payment
// reconciliation depend on. The gateway is not probed: it calls us.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{Name: cfg.Otel.ServiceName, Version: componentVersion}),
		health.WithSystemInfo(),
		health.WithChecks(storeChecks(cfg)...),
	)
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}

	return h, nil
}

func storeChecks(cfg *config.Config) []health.Config {
	return []health.Config{
		{
			// orders and transactions live here, nothing works without it
			Name:    "postgres",
			Timeout: 3 * time.Second,
			Check:   postgres.New(postgres.Config{DSN: cfg.Database.GetDSN()}),
		},
		{
			// notification markers fall back to the unique transaction index
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check:     healthRedis.New(healthRedis.Config{DSN: cfg.RedisConnect.GetDSN()}),
		},
	}
}
