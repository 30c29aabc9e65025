// Package command fornece a primitiva assíncrona de sequenciamento usada pelas
// rotinas de autoteste e pelas rotinas autônomas: comandos discretos compostos
// em sequência e executados por um agendador com cancelamento por contexto.
package command

import (
	"context"
	"fmt"
	"time"
)

// Command é uma ação discreta executável pelo agendador
type Command interface {
	// Name identifica o comando em logs
	Name() string

	// Run executa o comando, respeitando o cancelamento do contexto
	Run(ctx context.Context) error
}

// funcCommand adapta uma função em um Command
type funcCommand struct {
	name string
	fn   func(ctx context.Context) error
}

func (c *funcCommand) Name() string {
	return c.name
}

func (c *funcCommand) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.fn(ctx)
}

// New cria um comando a partir de uma função que respeita contexto
func New(name string, fn func(ctx context.Context) error) Command {
	return &funcCommand{name: name, fn: fn}
}

// Instant cria um comando que executa uma ação imediata, sem suspensão
func Instant(name string, fn func() error) Command {
	return &funcCommand{
		name: name,
		fn: func(ctx context.Context) error {
			return fn()
		},
	}
}

// Wait cria um comando que apenas aguarda a duração informada. A espera é um
// ponto de suspensão do agendador, cancelável pelo contexto.
func Wait(d time.Duration) Command {
	return &funcCommand{
		name: fmt.Sprintf("wait(%s)", d),
		fn: func(ctx context.Context) error {
			timer := time.NewTimer(d)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		},
	}
}

// sequence executa comandos em ordem, parando no primeiro erro
type sequence struct {
	name     string
	commands []Command
}

func (s *sequence) Name() string {
	return s.name
}

func (s *sequence) Run(ctx context.Context) error {
	for _, cmd := range s.commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cmd.Run(ctx); err != nil {
			return fmt.Errorf("comando %s falhou: %w", cmd.Name(), err)
		}
	}
	return nil
}

// Sequence compõe comandos em uma sequência executada em ordem
func Sequence(name string, commands ...Command) Command {
	return &sequence{name: name, commands: commands}
}
