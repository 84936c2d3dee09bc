package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"echomap/fieldstore/internal/storage"
)

// ServiceStatus describes one dependency in the health report.
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// HealthCheckResponse is the /healthCheck body.
type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(slot storage.Slot, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]ServiceStatus)

		// Probe the durable slot
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		slotStatus := "ok"
		slotDetails := "Storage slot reachable"
		if _, err := slot.Read(ctx); err != nil && err != storage.ErrNotFound {
			slotStatus = "down"
			slotDetails = err.Error()
		}
		services["storage"] = ServiceStatus{
			Status:  slotStatus,
			Details: slotDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
