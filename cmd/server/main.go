package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"vision_go/internal/config"
	"vision_go/internal/server"
	"vision_go/pkg/logger"
)

func main() {
	// Configurar diretório de logs
	logDir := filepath.Join(".", "logs")
	os.MkdirAll(logDir, 0755)

	// Inicializar logger
	logger.Init()
	logger.SetLevel(logger.INFO)
	logger.EnableFileLogging(logDir, "vision")
	defer logger.Sync()

	// Exibir banner de inicialização
	displayBanner()

	logger.Info("Iniciando Vision Target Monitor")

	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Erro ao carregar configurações", err)
	}

	// Garantir que temos a taxa de amostragem correta para desempenho ideal
	if cfg.Vision.SampleRate > 100*time.Millisecond {
		logger.Warn("Taxa de amostragem muito baixa. Definindo para 100ms (10Hz)")
		cfg.Vision.SampleRate = 100 * time.Millisecond
	}

	logger.Infof("Configuração carregada: câmera em %s:%d, Redis em %s:%d",
		cfg.Vision.Host, cfg.Vision.Port, cfg.Redis.Host, cfg.Redis.Port)
	logger.Infof("Taxa de amostragem: %v", cfg.Vision.SampleRate)

	// Criar e iniciar o servidor
	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("Erro ao criar servidor", err)
	}

	// Iniciar o servidor em uma goroutine separada
	go func() {
		logger.Infof("Servidor iniciado na porta %d", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			logger.Fatal("Erro ao iniciar o servidor", err)
		}
	}()

	// Configurar captura de sinais para shutdown gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Desligando servidor...")

	// Criar contexto com timeout para o shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Desligar o servidor
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Erro durante o shutdown do servidor", err)
	}

	logger.Info("Servidor encerrado com sucesso")
}

// displayBanner exibe um banner de inicialização
func displayBanner() {
	banner := `
 _    _ _____ _______ _____  _____  __   _
  \  /    |   |______   |   |     | | \  |
   \/   __|__ ______| __|__ |_____| |  \_|

 _______ _______  ______  ______ _______ _______      _______  _____  __   _ _____ _______  _____   ______
    |    |_____| |_____/ |  ____ |______    |         |  |  | |     | | \  |   |      |    |     | |_____/
    |    |     | |    \_ |_____| |______    |         |  |  | |_____| |  \_| __|__    |    |_____| |    \_  v1.0
 `
	fmt.Println(banner)
	fmt.Printf("Iniciando em %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
}
