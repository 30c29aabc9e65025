package server

import (
	"encoding/json"
	"net/http"
	"time"

	"vision_go/internal/api"
	"vision_go/internal/websocket"
)

// setupRoutes configura todas as rotas do servidor
func (s *Server) setupRoutes() {
	// Criar handlers
	wsHandler := websocket.NewHandler(s.wsHub)

	apiRouter := api.NewRouter(s.estimator, s.visionService, s.scheduler, s.routines(), "/api")
	apiRouter.Setup()

	// Endpoint de saúde
	s.router.HandleFunc("/health", s.healthHandler)

	// Endpoint de informações do servidor
	s.router.HandleFunc("/info", s.infoHandler)

	// Endpoint de descoberta manual
	s.router.HandleFunc("/api/discover", s.discoverHandler)

	// WebSocket
	s.router.Handle("/ws", wsHandler)
	s.router.HandleFunc("/ws/health", wsHandler.GetHealthHandler())

	// API REST de diagnóstico
	s.router.Handle("/api/", apiRouter)
}

// healthHandler responde com o status de saúde do servidor
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Verificar status dos serviços
	visionStatus := "ok"
	if s.visionService != nil && !s.visionService.IsRunning() {
		visionStatus = "offline"
	}

	storeStatus := "ok"
	if s.store != nil && !s.store.Connected() {
		storeStatus = "offline"
	}

	driveStatus := "disabled"
	if s.config.Drive.Enabled {
		if s.driveSystem != nil && s.driveSystem.Connected() {
			driveStatus = "ok"
		} else {
			driveStatus = "offline"
		}
	}

	discoveryStatus := "ok"
	if s.discoveryService != nil && !s.discoveryService.IsRunning() {
		discoveryStatus = "offline"
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"services": map[string]string{
			"vision":    visionStatus,
			"telemetry": storeStatus,
			"drive":     driveStatus,
			"websocket": "ok",
			"discovery": discoveryStatus,
		},
	}

	// Se algum serviço crítico estiver offline, alterar status geral
	if visionStatus == "offline" || storeStatus == "offline" {
		response["status"] = "degraded"
	}

	json.NewEncoder(w).Encode(response)
}

// infoHandler retorna informações básicas sobre o servidor
func (s *Server) infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	info := s.GetServerInfo()
	uptime := time.Since(info.StartTime).Round(time.Second)

	response := map[string]interface{}{
		"name":        "Vision Target Monitor",
		"version":     info.Version,
		"ip":          info.IP,
		"port":        info.Port,
		"websocket":   info.WebSocketURL,
		"api":         info.APIURL,
		"startTime":   info.StartTime,
		"uptime":      uptime.String(),
		"connections": info.Connections,
	}

	json.NewEncoder(w).Encode(response)
}

// discoverHandler fornece informações para descoberta manual
func (s *Server) discoverHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	info := s.GetServerInfo()

	response := map[string]interface{}{
		"name":        "Vision Target Monitor",
		"ip":          info.IP,
		"port":        info.Port,
		"wsUrl":       info.WebSocketURL,
		"apiUrl":      info.APIURL,
		"version":     info.Version,
		"wsEndpoint":  "/ws",
		"apiEndpoint": "/api",
	}

	json.NewEncoder(w).Encode(response)
}
