package models

import "time"

// VisionFrame armazena uma leitura bruta decodificada da câmera de visão.
// Os campos seguem o esquema de telemetria do sensor (tv, tx, ty, ts, ta, tid, botpose).
type VisionFrame struct {
	TargetVisible    bool       `json:"tv"`
	HorizontalOffset float64    `json:"tx"` // graus
	VerticalOffset   float64    `json:"ty"` // graus
	Skew             float64    `json:"ts"` // graus, intervalo (-90, 0]
	TargetArea       float64    `json:"ta"` // percentual do quadro
	TargetID         float64    `json:"tid"`
	BotPose          [6]float64 `json:"botpose"` // x, y, z, pitch, yaw, roll
	Timestamp        time.Time  `json:"timestamp"`
	Status           string     `json:"status"`
}

// TargetSnapshot é a visão derivada exposta pelo estimador para diagnóstico.
// Campos angulares são ponteiros: nil representa "sem dado válido" (sem alvo),
// distinto de zero, que é uma leitura legítima.
type TargetSnapshot struct {
	HasTarget        bool       `json:"hasTarget"`
	HorizontalOffset *float64   `json:"horizontalOffset"` // graus
	VerticalOffset   *float64   `json:"verticalOffset"`   // graus
	Skew             *float64   `json:"skew"`             // graus
	TargetArea       *float64   `json:"targetArea"`       // percentual
	ForwardDistance  *float64   `json:"forwardDistance"`  // metros
	TargetID         *float64   `json:"targetId"`
	Pipeline         int        `json:"pipeline"`
	BotPose          [6]float64 `json:"botPose"`
	Timestamp        time.Time  `json:"timestamp"`
}

// SensorStatus representa o status atual da câmera de visão
type SensorStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	LastError      string    `json:"lastError,omitempty"`
	ErrorCount     int       `json:"errorCount,omitempty"`
	ConnectionInfo string    `json:"connectionInfo,omitempty"`
}
