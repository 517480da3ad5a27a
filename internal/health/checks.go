package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/yankhoury/homeplate/internal/config"
)

// NewHealthHandler wires the liveness endpoint: the ordering backend must be
// reachable, and redis must answer when it backs the cart store.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "ordering-backend",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Upstream.BaseURL, nil)
				if err != nil {
					return fmt.Errorf("failed to build backend probe: %w", err)
				}

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return fmt.Errorf("ordering backend unreachable: %w", err)
				}

				defer resp.Body.Close()

				if resp.StatusCode >= http.StatusInternalServerError {
					return fmt.Errorf("ordering backend unhealthy: status %d", resp.StatusCode)
				}

				return nil
			},
		},
	}

	if cfg.CartStore.Backend == "redis" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.Redis.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "homeplate",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
