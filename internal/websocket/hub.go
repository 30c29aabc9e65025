package websocket

import (
	"context"
	"sync"
	"time"

	"vision_go/internal/models"
	"vision_go/pkg/logger"
)

// SnapshotProvider fornece uma leitura derivada fresca sob demanda
type SnapshotProvider func() models.TargetSnapshot

// StatusProvider fornece o status atual do sensor sob demanda
type StatusProvider func() models.SensorStatus

// Hub gerencia todas as conexões WebSocket e a distribuição de mensagens
type Hub struct {
	// Clientes registrados
	clients map[*Client]bool

	// Canais de registro e desregistro de clientes
	register   chan *Client
	unregister chan *Client

	// Canal para mensagens de broadcast
	broadcast chan []byte

	// Comandos recebidos dos clientes
	commands chan models.ClientCommand

	// Mutex para operações concorrentes no mapa de clientes
	mu sync.RWMutex

	// Provedores de dados sob demanda, definidos na montagem do servidor
	snapshotProvider SnapshotProvider
	statusProvider   StatusProvider
	providersLock    sync.RWMutex

	// Controle de taxa do broadcast de snapshots
	lastSnapshotTime time.Time
	snapshotLock     sync.Mutex

	// Estatísticas
	stats struct {
		totalMessages      int64
		totalClients       int64
		messagesPerSecond  float64
		lastStatsReset     time.Time
		messagesSinceReset int64
	}
	statsLock sync.Mutex

	// Sinal para encerramento do hub
	ctx    context.Context
	cancel context.CancelFunc

	// Fechado quando o loop Run termina
	runDone chan struct{}
}

// NewHub cria uma nova instância do Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		commands:   make(chan models.ClientCommand, 100),
		ctx:        ctx,
		cancel:     cancel,
		runDone:    make(chan struct{}),
	}

	h.stats.lastStatsReset = time.Now()

	return h
}

// SetSnapshotProvider define o provedor de leituras derivadas
func (h *Hub) SetSnapshotProvider(provider SnapshotProvider) {
	h.providersLock.Lock()
	defer h.providersLock.Unlock()
	h.snapshotProvider = provider
}

// SetStatusProvider define o provedor de status do sensor
func (h *Hub) SetStatusProvider(provider StatusProvider) {
	h.providersLock.Lock()
	defer h.providersLock.Unlock()
	h.statusProvider = provider
}

// Run inicia o loop principal do hub para gerenciar clientes e mensagens
func (h *Hub) Run() {
	logger.Info("Iniciando WebSocket Hub")
	defer close(h.runDone)

	// Ticker para estatísticas periódicas
	statsTicker := time.NewTicker(30 * time.Second)
	defer statsTicker.Stop()

	// Ticker para manter conexões ativas
	keepaliveTicker := time.NewTicker(5 * time.Second)
	defer keepaliveTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			logger.Info("Encerrando WebSocket Hub")
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()

			logger.Infof("Novo cliente WebSocket conectado. ID: %s. Total: %d", client.id, clientCount)

			h.statsLock.Lock()
			h.stats.totalClients++
			h.statsLock.Unlock()

			go h.sendInitialDataToClient(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()

				logger.Infof("Cliente WebSocket desconectado. ID: %s. Total: %d", client.id, len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			clientCount := len(h.clients)

			h.statsLock.Lock()
			h.stats.totalMessages++
			h.stats.messagesSinceReset++
			h.statsLock.Unlock()

			if clientCount == 0 {
				h.mu.RUnlock()
				continue
			}

			// Clientes com canal cheio são marcados para desconexão
			deadClients := make([]*Client, 0, 4)

			for client := range h.clients {
				if !client.trySend(message) {
					deadClients = append(deadClients, client)
				}
			}
			h.mu.RUnlock()

			// Remover diretamente: reencaminhar para h.unregister aqui
			// travaria o loop, que é o único receptor daquele canal
			for _, client := range deadClients {
				h.removeClient(client)
			}

		case cmd := <-h.commands:
			go h.handleClientCommand(cmd)

		case <-statsTicker.C:
			h.logStats()

		case <-keepaliveTicker.C:
			h.sendPingToAllClients()
		}
	}
}

// BroadcastSnapshot envia uma leitura derivada para todos os clientes.
// Envios são limitados a um a cada 50ms.
func (h *Hub) BroadcastSnapshot(snapshot models.TargetSnapshot) {
	h.snapshotLock.Lock()
	elapsed := time.Since(h.lastSnapshotTime)
	if elapsed < 50*time.Millisecond {
		h.snapshotLock.Unlock()
		return
	}
	h.lastSnapshotTime = time.Now()
	h.snapshotLock.Unlock()

	message := NewSnapshotMessage(snapshot)

	if jsonMessage, err := SerializeMessage(message); err == nil {
		h.broadcast <- jsonMessage
	} else {
		logger.Error("Erro ao serializar mensagem de snapshot", err)
	}
}

// BroadcastStatus envia atualização de status para todos os clientes
func (h *Hub) BroadcastStatus(status models.SensorStatus) {
	message := NewStatusMessage(status)

	if jsonMessage, err := SerializeMessage(message); err == nil {
		h.broadcast <- jsonMessage
	} else {
		logger.Error("Erro ao serializar mensagem de status", err)
	}
}

// handleClientCommand processa comandos recebidos dos clientes
func (h *Hub) handleClientCommand(cmd models.ClientCommand) {
	logger.Debugf("Comando recebido do cliente %s: %s", cmd.ClientID, cmd.Command)

	switch cmd.Command {
	case "get_snapshot":
		h.sendSnapshot(cmd.ClientID)
	case "get_status":
		h.sendStatus(cmd.ClientID)
	case "ping":
		h.sendPong(cmd.ClientID, cmd.Params)
	default:
		logger.Warnf("Comando desconhecido: %s", cmd.Command)
	}
}

// sendSnapshot envia uma leitura derivada fresca para um cliente específico
func (h *Hub) sendSnapshot(clientID string) {
	client := h.getClientByID(clientID)
	if client == nil {
		return
	}

	h.providersLock.RLock()
	provider := h.snapshotProvider
	h.providersLock.RUnlock()

	if provider == nil {
		return
	}

	if jsonMsg, err := SerializeMessage(NewSnapshotMessage(provider())); err == nil {
		client.trySend(jsonMsg)
	}
}

// sendStatus envia o status atual para um cliente específico
func (h *Hub) sendStatus(clientID string) {
	client := h.getClientByID(clientID)
	if client == nil {
		return
	}

	h.providersLock.RLock()
	provider := h.statusProvider
	h.providersLock.RUnlock()

	if provider == nil {
		return
	}

	if jsonMsg, err := SerializeMessage(NewStatusMessage(provider())); err == nil {
		client.trySend(jsonMsg)
	}
}

// sendPong envia resposta de pong para um cliente específico
func (h *Hub) sendPong(clientID string, params interface{}) {
	client := h.getClientByID(clientID)
	if client == nil {
		return
	}

	var pingTime int64
	if paramsMap, ok := params.(map[string]interface{}); ok {
		if timeVal, ok := paramsMap["time"].(float64); ok {
			pingTime = int64(timeVal)
		}
	}

	pong := models.PongMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "pong",
			Timestamp: time.Now(),
		},
		Time:       pingTime,
		ServerTime: time.Now().UnixNano() / int64(time.Millisecond),
	}

	if jsonMsg, err := SerializeMessage(pong); err == nil {
		client.trySend(jsonMsg)
	}
}

// sendInitialDataToClient envia dados iniciais para um novo cliente
func (h *Hub) sendInitialDataToClient(client *Client) {
	welcome := models.WebSocketMessage{
		Type:      "welcome",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message":  "Conectado ao servidor Vision Target Monitor",
			"clientId": client.id,
		},
	}

	if jsonMsg, err := SerializeMessage(welcome); err == nil {
		client.trySend(jsonMsg)
	}

	// Enviar também uma leitura inicial, se o provedor estiver montado
	h.providersLock.RLock()
	provider := h.snapshotProvider
	h.providersLock.RUnlock()

	if provider != nil {
		if jsonMsg, err := SerializeMessage(NewSnapshotMessage(provider())); err == nil {
			client.trySend(jsonMsg)
		}
	}
}

// logStats calcula e registra as estatísticas do hub
func (h *Hub) logStats() {
	h.statsLock.Lock()
	elapsed := time.Since(h.stats.lastStatsReset).Seconds()
	if elapsed > 0 {
		h.stats.messagesPerSecond = float64(h.stats.messagesSinceReset) / elapsed
	}
	h.stats.messagesSinceReset = 0
	h.stats.lastStatsReset = time.Now()

	mps := h.stats.messagesPerSecond
	total := h.stats.totalMessages
	h.statsLock.Unlock()

	h.mu.RLock()
	clientCount := len(h.clients)
	h.mu.RUnlock()

	logger.Infof("Estatísticas WebSocket: %d clientes, %.2f msgs/seg, total: %d mensagens",
		clientCount, mps, total)
}

// Shutdown encerra graciosamente o hub. Só retorna depois que o loop
// Run fechar todos os clientes e terminar.
func (h *Hub) Shutdown() {
	h.cancel()
	<-h.runDone
}

// removeClient descarta um cliente diretamente, sem passar pelo canal
// de desregistro
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()

		logger.Infof("Cliente WebSocket removido por buffer cheio. ID: %s. Total: %d", client.id, len(h.clients))
	}
	h.mu.Unlock()
}

// closeAllClients fecha todas as conexões dos clientes
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("Fechando todas as conexões de clientes WebSocket")
	for client := range h.clients {
		client.closeSend()
		delete(h.clients, client)
	}
}

// ClientCount retorna o número atual de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// getClientByID retorna um cliente pelo seu ID
func (h *Hub) getClientByID(clientID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.id == clientID {
			return client
		}
	}
	return nil
}

// sendPingToAllClients envia ping para todos os clientes
func (h *Hub) sendPingToAllClients() {
	ping := models.PingMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "ping",
			Timestamp: time.Now(),
		},
		Time: time.Now().UnixNano() / int64(time.Millisecond),
	}

	if jsonMsg, err := SerializeMessage(ping); err == nil {
		h.mu.RLock()
		if len(h.clients) > 0 {
			h.broadcast <- jsonMsg
		}
		h.mu.RUnlock()
	}
}
