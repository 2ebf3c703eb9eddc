package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status" enum:"ok,unavailable"`
}

// RegisterHealth adds a liveness probe backed by db.
func RegisterHealth(api huma.API, db Pinger) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Report service health",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*Output[HealthResponse], error) {
		if err := db.Ping(ctx); err != nil {
			return nil, huma.Error503ServiceUnavailable("database unavailable", err)
		}
		return &Output[HealthResponse]{Body: HealthResponse{Status: "ok"}}, nil
	})
}
