package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server    ServerConfig    `json:"server"`
	Vision    VisionConfig    `json:"vision"`
	Redis     RedisConfig     `json:"redis"`
	Drive     DriveConfig     `json:"drive"`
	Estimator EstimatorConfig `json:"estimator"`
}

// ServerConfig contém configurações do servidor HTTP/WebSocket
type ServerConfig struct {
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

// VisionConfig contém configurações da câmera de visão (Limelight)
type VisionConfig struct {
	Host                 string        `json:"host"`
	Port                 int           `json:"port"`
	SampleRate           time.Duration `json:"sampleRate"`
	MaxConsecutiveErrors int           `json:"maxConsecutiveErrors"`
	ReconnectDelay       time.Duration `json:"reconnectDelay"`
	Debug                bool          `json:"debug"`
}

// RedisConfig contém configurações do armazenamento de telemetria no Redis
type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
	Enabled  bool   `json:"enabled"`
}

// DriveConfig contém configurações do subsistema de tração via PLC S7
type DriveConfig struct {
	Enabled      bool          `json:"enabled"`
	Host         string        `json:"host"`
	Rack         int           `json:"rack"`
	Slot         int           `json:"slot"`
	DBNumber     int           `json:"dbNumber"`
	PollRate     time.Duration `json:"pollRate"`
	ReadTimeout  time.Duration `json:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout"`
}

// EstimatorConfig contém a calibração do estimador de distância por faixas.
// Os limites de faixa são em graus e as alturas de montagem em metros.
type EstimatorConfig struct {
	MaxLowDeg  float64 `json:"maxLowDeg"`
	MaxMedDeg  float64 `json:"maxMedDeg"`
	MaxHighDeg float64 `json:"maxHighDeg"`
	HeightLow  float64 `json:"heightLow"`
	HeightMed  float64 `json:"heightMed"`
	HeightHigh float64 `json:"heightHigh"`
}

// Load carrega a configuração do arquivo ou usa valores padrão
func Load() (*Config, error) {
	config := getDefaultConfig()

	// Verificar se existe um arquivo de configuração
	if _, err := os.Stat("config.json"); err == nil {
		file, err := os.Open("config.json")
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return nil, err
		}
	}

	// Sobrescrever com variáveis de ambiente, se existirem
	applyEnvironmentOverrides(&config)

	return &config, nil
}

// applyEnvironmentOverrides sobrescreve configurações com variáveis de ambiente
func applyEnvironmentOverrides(config *Config) {
	if v := os.Getenv("VISION_HOST"); v != "" {
		config.Vision.Host = v
	}
	if v := os.Getenv("VISION_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Vision.Port = port
		}
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		config.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Redis.Port = port
		}
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("PLC_HOST"); v != "" {
		config.Drive.Host = v
	}
}
