package vision

import (
	"context"
	"sync"
	"time"

	"vision_go/internal/config"
	"vision_go/internal/models"
	"vision_go/internal/telemetry"
	"vision_go/internal/websocket"
	"vision_go/pkg/logger"
)

// FrameHandler é um tipo de função para receber quadros da câmera
type FrameHandler func(frame models.VisionFrame)

// Service executa o processo do sensor: lê a câmera em ciclo, publica os
// campos no armazenamento de telemetria e distribui leituras derivadas.
type Service struct {
	client            *SensorClient
	config            config.VisionConfig
	store             telemetry.Store
	estimator         *Estimator
	wsHub             *websocket.Hub
	ctx               context.Context
	cancel            context.CancelFunc
	running           bool
	mutex             sync.RWMutex
	status            models.SensorStatus
	consecutiveErrors int
	lastErrorMsg      string
	lastFrame         *models.VisionFrame
	frameHandlers     []FrameHandler
	handlersLock      sync.RWMutex
}

// NewService cria um novo serviço para a câmera de visão
func NewService(cfg config.VisionConfig, store telemetry.Store, estimator *Estimator, wsHub *websocket.Hub) (*Service, error) {
	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		client:    NewSensorClient(cfg.Host, cfg.Port),
		config:    cfg,
		store:     store,
		estimator: estimator,
		wsHub:     wsHub,
		ctx:       ctx,
		cancel:    cancel,
		status: models.SensorStatus{
			Status:    "initializing",
			Timestamp: time.Now(),
		},
	}, nil
}

// Start inicia o serviço da câmera
func (s *Service) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return nil
	}

	logger.Infof("Iniciando serviço de visão (host: %s, porta: %d)", s.config.Host, s.config.Port)

	// Tentar conectar à câmera; o loop de coleta tenta de novo se falhar
	if err := s.client.Connect(); err != nil {
		logger.Warnf("Erro na conexão inicial com a câmera: %v. Tentando novamente no ciclo de coleta.", err)
	}

	go s.collectData()

	s.running = true
	return nil
}

// Stop para o serviço da câmera
func (s *Service) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	logger.Info("Parando serviço de visão")
	s.cancel()
	s.client.Close()
	s.running = false
}

// IsRunning verifica se o serviço está em execução
func (s *Service) IsRunning() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.running
}

// RegisterFrameHandler registra uma função para receber quadros da câmera
func (s *Service) RegisterFrameHandler(handler FrameHandler) {
	s.handlersLock.Lock()
	defer s.handlersLock.Unlock()
	s.frameHandlers = append(s.frameHandlers, handler)
}

// GetStatus retorna o status atual do sensor
func (s *Service) GetStatus() models.SensorStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.status
}

// GetLastFrame retorna o último quadro coletado
func (s *Service) GetLastFrame() *models.VisionFrame {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastFrame
}

// collectData executa o loop principal de coleta de dados da câmera
func (s *Service) collectData() {
	ticker := time.NewTicker(s.config.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.processTick()
		}
	}
}

// processTick processa um ciclo de coleta de dados
func (s *Service) processTick() {
	response, err := s.client.ReadFrame()
	if err != nil {
		s.handleConnectionError(err)
		return
	}

	// Resetar contador de erros se a comunicação foi restaurada
	if s.consecutiveErrors > 0 {
		logger.Infof("Comunicação com a câmera restaurada após %d tentativas", s.consecutiveErrors)
		s.consecutiveErrors = 0
		s.updateStatus("ok", "")
	}

	frame, err := decodeFrame(response)
	if err != nil {
		logger.Errorf("Erro ao decodificar quadro: %v", err)
		return
	}

	// Publicar os campos no armazenamento de telemetria
	s.publishFrame(frame)

	// Atualizar quadro interno
	s.mutex.Lock()
	frameCopy := *frame
	s.lastFrame = &frameCopy
	s.mutex.Unlock()

	// Distribuir a leitura derivada via WebSocket
	if s.wsHub != nil {
		s.wsHub.BroadcastSnapshot(s.estimator.Snapshot())
	}

	// Notificar handlers de quadro
	s.notifyFrameHandlers(*frame)

	if s.config.Debug {
		logger.Debugf("Quadro publicado: tv=%t tx=%.2f ty=%.2f ta=%.2f",
			frame.TargetVisible, frame.HorizontalOffset, frame.VerticalOffset, frame.TargetArea)
	}
}

// publishFrame escreve os campos do quadro no armazenamento de telemetria
func (s *Service) publishFrame(frame *models.VisionFrame) {
	writes := []struct {
		field string
		err   error
	}{
		{fieldTargetVisible, s.store.SetBool(fieldTargetVisible, frame.TargetVisible)},
		{fieldHorizontalOffset, s.store.SetFloat(fieldHorizontalOffset, frame.HorizontalOffset)},
		{fieldVerticalOffset, s.store.SetFloat(fieldVerticalOffset, frame.VerticalOffset)},
		{fieldSkew, s.store.SetFloat(fieldSkew, frame.Skew)},
		{fieldTargetArea, s.store.SetFloat(fieldTargetArea, frame.TargetArea)},
		{fieldTargetID, s.store.SetFloat(fieldTargetID, frame.TargetID)},
		{fieldBotPose, s.store.SetFloats(fieldBotPose, frame.BotPose[:])},
	}

	for _, w := range writes {
		if w.err != nil {
			logger.Errorf("Erro ao publicar campo %s: %v", w.field, w.err)
		}
	}
}

// handleConnectionError trata erros de conexão com a câmera
func (s *Service) handleConnectionError(err error) {
	s.consecutiveErrors++
	s.lastErrorMsg = err.Error()

	logger.Errorf("Erro ao comunicar com a câmera: %v. Tentativa %d", err, s.consecutiveErrors)

	s.client.SetConnected(false)

	if s.consecutiveErrors > s.config.MaxConsecutiveErrors {
		s.updateStatus("falha_comunicacao", s.lastErrorMsg)

		// Sem câmera, o alvo deixa de ser visível; manter o campo coerente
		if err := s.store.SetBool(fieldTargetVisible, false); err != nil {
			logger.Debugf("Erro ao limpar campo de presença: %v", err)
		}

		time.Sleep(s.config.ReconnectDelay)
	}
}

// updateStatus atualiza o status do sensor
func (s *Service) updateStatus(status string, errorMsg string) {
	s.mutex.Lock()
	s.status = models.SensorStatus{
		Status:     status,
		Timestamp:  time.Now(),
		LastError:  errorMsg,
		ErrorCount: s.consecutiveErrors,
	}
	current := s.status
	s.mutex.Unlock()

	if s.wsHub != nil {
		s.wsHub.BroadcastStatus(current)
	}

	if status != "ok" {
		logger.Warnf("Status da câmera alterado para %s: %s", status, errorMsg)
	} else {
		logger.Info("Status da câmera restaurado para 'ok'")
	}
}

// notifyFrameHandlers notifica todos os handlers registrados
func (s *Service) notifyFrameHandlers(frame models.VisionFrame) {
	s.handlersLock.RLock()
	handlers := s.frameHandlers
	s.handlersLock.RUnlock()

	for _, handler := range handlers {
		handler(frame)
	}
}
