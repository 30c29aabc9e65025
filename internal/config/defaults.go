package config

import "time"

// getDefaultConfig retorna uma configuração padrão
func getDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Vision: VisionConfig{
			Host:                 "10.0.15.11",
			Port:                 5800,
			SampleRate:           50 * time.Millisecond,
			MaxConsecutiveErrors: 5,
			ReconnectDelay:       2 * time.Second,
			Debug:                false,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			Password: "",
			DB:       0,
			Prefix:   "limelight",
			Enabled:  true,
		},
		Drive: DriveConfig{
			Enabled:      false,
			Host:         "192.168.1.100",
			Rack:         0,
			Slot:         1,
			DBNumber:     20,
			PollRate:     100 * time.Millisecond,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		// Calibração levantada em campo com os três níveis de alvo.
		// Limites em graus, alturas em metros.
		Estimator: EstimatorConfig{
			MaxLowDeg:  15.0,
			MaxMedDeg:  40.0,
			MaxHighDeg: 90.0,
			HeightLow:  0.46,
			HeightMed:  0.72,
			HeightHigh: 1.17,
		},
	}
}
