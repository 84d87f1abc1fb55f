package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const version = "1.0.0"

type HealthDeps struct {
	DB          *sql.DB
	DSN         string
	RabbitMQURL string
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// Health reports liveness in three grades: healthy (200), degraded (206) and
// unhealthy (503). A deliberately unconfigured database keeps the service
// healthy; a configured but unreachable one degrades it.
func Health(deps *HealthDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		services := map[string]string{}
		status := "healthy"

		switch {
		case deps.DSN == "":
			services["database"] = "not_configured"
		case deps.DB == nil:
			services["database"] = "disconnected"
			status = "degraded"
		default:
			if err := deps.DB.PingContext(ctx); err != nil {
				services["database"] = "disconnected"
				status = "degraded"
			} else {
				services["database"] = "connected"
			}
		}

		if deps.RabbitMQURL != "" {
			conn, err := amqp.Dial(deps.RabbitMQURL)
			if err != nil {
				services["events"] = "disconnected"
				if status == "healthy" {
					status = "degraded"
				}
			} else {
				_ = conn.Close()
				services["events"] = "connected"
			}
		} else {
			services["events"] = "not_configured"
		}

		code := http.StatusOK
		switch status {
		case "degraded":
			code = http.StatusPartialContent
		case "unhealthy":
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, healthResponse{
			Status:    status,
			Timestamp: time.Now().UTC(),
			Services:  services,
			Version:   version,
		})
	}
}
