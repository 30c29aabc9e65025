package vision

import (
	"fmt"
	"net"
	"sync"
	"time"

	"vision_go/pkg/logger"
)

// dataCommand é o comando de leitura do quadro de telemetria da câmera
const dataCommand = "sRN VISIONDATA"

// SensorClient gerencia a comunicação TCP com a câmera de visão
type SensorClient struct {
	conn      net.Conn
	host      string
	port      int
	connected bool
	mutex     sync.Mutex
}

// NewSensorClient cria uma nova instância do cliente da câmera
func NewSensorClient(host string, port int) *SensorClient {
	return &SensorClient{
		host: host,
		port: port,
	}
}

// Connect estabelece conexão com a câmera
func (c *SensorClient) Connect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.connected {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	logger.Infof("Tentando conectar à câmera em %s...", addr)

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("erro ao conectar à câmera: %w", err)
	}

	c.conn = conn
	c.connected = true
	logger.Infof("Conectado à câmera em %s", addr)
	return nil
}

// ReadFrame solicita e lê um quadro de telemetria da câmera
func (c *SensorClient) ReadFrame() (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.connected {
		if err := c.connect(); err != nil {
			return "", err
		}
	}

	// Comando emoldurado com STX (0x02) e ETX (0x03)
	command := fmt.Sprintf("\x02%s\x03", dataCommand)
	if _, err := c.conn.Write([]byte(command)); err != nil {
		c.connected = false
		return "", fmt.Errorf("erro ao enviar comando: %w", err)
	}

	buffer := make([]byte, 4096)
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, err := c.conn.Read(buffer)
	if err != nil {
		c.connected = false
		return "", fmt.Errorf("erro ao ler resposta: %w", err)
	}

	return string(buffer[:n]), nil
}

// connect estabelece a conexão sem adquirir o mutex. Chamar com mutex travado.
func (c *SensorClient) connect() error {
	addr := fmt.Sprintf("%s:%d", c.host, c.port)

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("erro ao conectar à câmera: %w", err)
	}

	c.conn = conn
	c.connected = true
	return nil
}

// SetConnected define o estado de conexão
func (c *SensorClient) SetConnected(connected bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.connected = connected
}

// IsConnected verifica se o cliente está conectado
func (c *SensorClient) IsConnected() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.connected
}

// Close fecha a conexão com a câmera
func (c *SensorClient) Close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.connected = false
		logger.Info("Conexão com a câmera fechada")
	}
}
