package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSimulationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/simulations/drive", handler.SimulateDriveGame)
	mux.HandleFunc("POST /v1/simulations/projection", handler.SimulateProjectionGame)
	mux.HandleFunc("POST /v1/simulations/drive/batch", handler.RunDriveBatch)
	mux.HandleFunc("POST /v1/simulations/projection/batch", handler.RunProjectionBatch)
	mux.HandleFunc("GET /v1/simulations", handler.ListSimulations)
	mux.HandleFunc("GET /v1/simulations/{simulationID}", handler.GetSimulation)
}
