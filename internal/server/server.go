package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"vision_go/internal/auton"
	"vision_go/internal/command"
	"vision_go/internal/config"
	"vision_go/internal/discovery"
	"vision_go/internal/drive"
	"vision_go/internal/telemetry"
	"vision_go/internal/vision"
	"vision_go/internal/websocket"
	"vision_go/pkg/logger"
)

// Server encapsula o servidor HTTP com todos os componentes
type Server struct {
	config           *config.Config
	httpServer       *http.Server
	router           *http.ServeMux
	store            telemetry.Store
	estimator        *vision.Estimator
	visionService    *vision.Service
	driveSystem      *drive.S7Drive
	scheduler        *command.Scheduler
	wsHub            *websocket.Hub
	discoveryService *discovery.DiscoveryService
	serverInfo       ServerInfo
}

// ServerInfo contém informações sobre o servidor
type ServerInfo struct {
	IP           string
	Port         int
	StartTime    time.Time
	Connections  int
	Version      string
	WebSocketURL string
	APIURL       string
}

// NewServer cria uma nova instância do servidor
func NewServer(cfg *config.Config) (*Server, error) {
	server := &Server{
		config: cfg,
		router: http.NewServeMux(),
		serverInfo: ServerInfo{
			StartTime: time.Now(),
			Version:   "1.0.0",
			Port:      cfg.Server.Port,
		},
	}

	// Determinar IP do servidor
	ip, err := server.getLocalIP()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter IP local: %w", err)
	}
	server.serverInfo.IP = ip

	// Configurar URLs
	server.serverInfo.WebSocketURL = fmt.Sprintf("ws://%s:%d/ws", ip, cfg.Server.Port)
	server.serverInfo.APIURL = fmt.Sprintf("http://%s:%d/api", ip, cfg.Server.Port)

	// Inicializar componentes
	if err := server.initComponents(); err != nil {
		return nil, err
	}

	// Configurar rotas
	server.setupRoutes()

	// Configurar servidor HTTP
	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return server, nil
}

// initComponents inicializa todos os componentes do servidor
func (s *Server) initComponents() error {
	// Inicializar hub WebSocket
	s.wsHub = websocket.NewHub()
	go s.wsHub.Run()

	// Inicializar armazenamento de telemetria
	if s.config.Redis.Enabled {
		store, err := telemetry.NewRedisStore(s.config.Redis)
		if err != nil {
			return fmt.Errorf("erro ao inicializar armazenamento de telemetria: %w", err)
		}
		s.store = store
	} else {
		logger.Info("Redis desabilitado por configuração, usando armazenamento em memória")
		s.store = telemetry.NewMemoryStore()
	}

	// Inicializar estimador
	s.estimator = vision.NewEstimator(s.store, s.config.Estimator)

	// Inicializar serviço da câmera de visão
	visionService, err := vision.NewService(s.config.Vision, s.store, s.estimator, s.wsHub)
	if err != nil {
		return fmt.Errorf("erro ao inicializar serviço de visão: %w", err)
	}
	s.visionService = visionService

	// Conectar os provedores sob demanda do hub
	s.wsHub.SetSnapshotProvider(s.estimator.Snapshot)
	s.wsHub.SetStatusProvider(s.visionService.GetStatus)

	// Inicializar agendador de rotinas
	s.scheduler = command.NewScheduler()

	// Inicializar subsistema de tração (se habilitado)
	if s.config.Drive.Enabled {
		s.driveSystem = drive.NewS7Drive(s.config.Drive)
	}

	// Inicializar serviço de descoberta
	s.discoveryService = discovery.NewDiscoveryService(s.config.Server.Port)

	return nil
}

// routines monta o mapa de rotinas autônomas disponíveis na API
func (s *Server) routines() map[string]func() command.Command {
	if s.driveSystem == nil {
		return nil
	}
	return auton.Routines(s.driveSystem)
}

// Start inicia o servidor e todos os serviços
func (s *Server) Start() error {
	// Iniciar serviço de descoberta
	if err := s.discoveryService.Start(); err != nil {
		logger.Warnf("Erro ao iniciar serviço de descoberta: %v", err)
		// Não abortar operação se falhar
	}

	// Iniciar serviço da câmera
	if err := s.visionService.Start(); err != nil {
		return fmt.Errorf("erro ao iniciar serviço de visão: %w", err)
	}

	// Conectar ao PLC da tração (se habilitado)
	if s.driveSystem != nil {
		if err := s.driveSystem.Connect(); err != nil {
			logger.Errorf("Erro ao conectar ao PLC da tração: %v", err)
			// Não abortar se o PLC falhar
		}
	}

	// Mostrar informações do servidor
	s.logServerInfo()

	// Iniciar servidor HTTP
	logger.Infof("Iniciando servidor HTTP na porta %d", s.config.Server.Port)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("erro ao iniciar servidor HTTP: %w", err)
	}

	return nil
}

// Shutdown encerra graciosamente o servidor e todos os serviços
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Iniciando shutdown do servidor")

	// Encerrar o servidor HTTP
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Erro ao encerrar servidor HTTP: %v", err)
	}

	// Encerrar serviço de descoberta
	if s.discoveryService != nil {
		s.discoveryService.Stop()
	}

	// Encerrar rotinas em andamento
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}

	// Encerrar serviços
	if s.visionService != nil {
		s.visionService.Stop()
	}

	if s.driveSystem != nil {
		s.driveSystem.Disconnect()
	}

	if s.wsHub != nil {
		s.wsHub.Shutdown()
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logger.Errorf("Erro ao fechar armazenamento de telemetria: %v", err)
		}
	}

	logger.Info("Shutdown completo")
	return nil
}

// getLocalIP obtém o endereço IP local
func (s *Server) getLocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}

	return "localhost", nil
}

// GetServerInfo retorna informações sobre o servidor
func (s *Server) GetServerInfo() ServerInfo {
	info := s.serverInfo
	info.Connections = s.wsHub.ClientCount()
	return info
}

// logServerInfo exibe informações do servidor no log
func (s *Server) logServerInfo() {
	logger.Info("===============================================")
	logger.Info("          Vision Target Monitor Server         ")
	logger.Info("===============================================")
	logger.Infof("Versão: %s", s.serverInfo.Version)
	logger.Infof("Endereço IP: %s", s.serverInfo.IP)
	logger.Infof("Porta HTTP: %d", s.serverInfo.Port)
	logger.Infof("WebSocket URL: %s", s.serverInfo.WebSocketURL)
	logger.Infof("API URL: %s", s.serverInfo.APIURL)
	logger.Infof("mDNS: %s.%s.%s",
		s.discoveryService.GetInstanceName(),
		discovery.ServiceType,
		discovery.ServiceDomain)
	logger.Info("===============================================")
	logger.Info("Servidor pronto para conexões!")
}
