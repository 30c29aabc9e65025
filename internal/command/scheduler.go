package command

import (
	"context"
	"fmt"
	"sync"

	"vision_go/pkg/logger"
)

// Scheduler executa uma rotina por vez em uma goroutine própria.
// O chamador não bloqueia: a suspensão de comandos Wait pertence ao
// agendador, não à thread de quem submete.
type Scheduler struct {
	mutex   sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	current context.CancelFunc
	busy    bool
	done    chan struct{}
}

// NewScheduler cria um novo agendador de rotinas
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit agenda uma rotina para execução assíncrona. Retorna erro se já
// houver uma rotina em andamento.
func (s *Scheduler) Submit(cmd Command) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("agendador encerrado: %w", err)
	}
	if s.busy {
		return fmt.Errorf("rotina em andamento, comando %s rejeitado", cmd.Name())
	}

	runCtx, runCancel := context.WithCancel(s.ctx)
	s.current = runCancel
	s.busy = true
	s.done = make(chan struct{})
	done := s.done

	logger.Infof("Rotina %s agendada", cmd.Name())

	go func() {
		defer close(done)
		defer runCancel()

		if err := cmd.Run(runCtx); err != nil {
			logger.Errorf("Rotina %s encerrada com erro: %v", cmd.Name(), err)
		} else {
			logger.Infof("Rotina %s concluída", cmd.Name())
		}

		s.mutex.Lock()
		s.busy = false
		s.current = nil
		s.mutex.Unlock()
	}()

	return nil
}

// Busy indica se há uma rotina em execução
func (s *Scheduler) Busy() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.busy
}

// CancelCurrent cancela a rotina em execução, se houver
func (s *Scheduler) CancelCurrent() {
	s.mutex.Lock()
	cancel := s.current
	s.mutex.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait bloqueia até a rotina atual terminar. Sem rotina ativa, retorna logo.
func (s *Scheduler) Wait() {
	s.mutex.Lock()
	done := s.done
	s.mutex.Unlock()

	if done != nil {
		<-done
	}
}

// Shutdown cancela qualquer rotina em execução e encerra o agendador
func (s *Scheduler) Shutdown() {
	s.cancel()
	s.Wait()
}
