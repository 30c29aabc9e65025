package websocket

import (
	"encoding/json"
	"time"

	"vision_go/internal/models"
)

// Funções utilitárias para criação e processamento de mensagens WebSocket

// NewSnapshotMessage cria uma nova mensagem de leitura derivada
func NewSnapshotMessage(snapshot models.TargetSnapshot) *models.SnapshotMessage {
	return &models.SnapshotMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "snapshot",
			Timestamp: time.Now(),
		},
		Snapshot: snapshot,
	}
}

// NewStatusMessage cria uma nova mensagem de status
func NewStatusMessage(status models.SensorStatus) *models.StatusMessage {
	return &models.StatusMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "status",
			Timestamp: time.Now(),
		},
		Status:     status.Status,
		LastError:  status.LastError,
		ErrorCount: status.ErrorCount,
	}
}

// NewErrorMessage cria uma nova mensagem de erro
func NewErrorMessage(message string, errorCode string) models.WebSocketMessage {
	return models.WebSocketMessage{
		Type:      "error",
		Timestamp: time.Now(),
		Error:     message,
		Data: map[string]string{
			"code": errorCode,
		},
	}
}

// SerializeMessage serializa uma mensagem para JSON
func SerializeMessage(message interface{}) ([]byte, error) {
	return json.Marshal(message)
}
