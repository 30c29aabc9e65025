package drive

import (
	"context"
	"fmt"
	"time"

	"vision_go/internal/command"
	"vision_go/internal/config"
	"vision_go/internal/geometry"
	"vision_go/pkg/logger"
	"vision_go/pkg/utils"
)

// Códigos de comando escritos no bloco de setpoints do PLC
const (
	opIdle   int16 = 0
	opDrive  int16 = 1
	opRotate int16 = 2
	opStop   int16 = 3
)

// Layout do bloco de setpoints no DB da tração:
//
//	byte 0  REAL velocidade normalizada (-1.0 a 1.0)
//	byte 4  REAL distância em metros
//	byte 8  REAL ângulo alvo em graus
//	byte 12 INT  código do comando
//	byte 14 BYTE status do PLC (bit 0 = em posição)
const (
	offsetSpeed    = 0
	offsetDistance = 4
	offsetAngle    = 8
	offsetOpcode   = 12
	offsetStatus   = 14

	setpointFrameLen = 14

	inPositionBit = 0
)

// Drive é o subsistema de tração. Os métodos constroem rotinas que só
// executam quando agendadas; nada é escrito no PLC na construção.
type Drive interface {
	DriveDistance(speed, meters float64) command.Command
	RotateToAngle(rot geometry.Rotation2D) command.Command
	Stop() error
	Connected() bool
}

// S7Drive implementa Drive escrevendo setpoints em um PLC S7.
// O PLC executa a malha de controle e reporta o bit de em posição.
type S7Drive struct {
	client   *S7Client
	config   config.DriveConfig
	pollRate time.Duration
}

// NewS7Drive cria o subsistema de tração sobre um PLC S7
func NewS7Drive(cfg config.DriveConfig) *S7Drive {
	pollRate := cfg.PollRate
	if pollRate <= 0 {
		pollRate = 100 * time.Millisecond
	}

	return &S7Drive{
		client:   NewS7Client(cfg),
		config:   cfg,
		pollRate: pollRate,
	}
}

// Connect estabelece a conexão com o PLC
func (d *S7Drive) Connect() error {
	return d.client.Connect()
}

// Disconnect encerra a conexão com o PLC
func (d *S7Drive) Disconnect() {
	d.client.Disconnect()
}

// Connected informa se o PLC está acessível
func (d *S7Drive) Connected() bool {
	return d.client.IsConnected()
}

// DriveDistance constrói uma rotina que avança a distância dada na
// velocidade dada e espera o PLC sinalizar que chegou.
func (d *S7Drive) DriveDistance(speed, meters float64) command.Command {
	name := fmt.Sprintf("drive-%sm", utils.FormatFloat(meters, 2))

	return command.New(name, func(ctx context.Context) error {
		frame := buildSetpointFrame(opDrive, float32(speed), float32(meters), 0)
		if err := d.client.WriteDataBlock(d.config.DBNumber, 0, frame); err != nil {
			return fmt.Errorf("erro ao enviar setpoint de avanço: %w", err)
		}

		logger.Infof("Avanço enviado ao PLC: %.2f m a %.2f", meters, speed)
		return d.awaitInPosition(ctx)
	})
}

// RotateToAngle constrói uma rotina que gira a base até o ângulo dado
// e espera o PLC sinalizar que chegou.
func (d *S7Drive) RotateToAngle(rot geometry.Rotation2D) command.Command {
	degrees := utils.WrapDegrees(rot.Degrees())
	name := fmt.Sprintf("rotate-%sdeg", utils.FormatFloat(degrees, 1))

	return command.New(name, func(ctx context.Context) error {
		frame := buildSetpointFrame(opRotate, 0, 0, float32(degrees))
		if err := d.client.WriteDataBlock(d.config.DBNumber, 0, frame); err != nil {
			return fmt.Errorf("erro ao enviar setpoint de rotação: %w", err)
		}

		logger.Infof("Rotação enviada ao PLC: %.1f graus", degrees)
		return d.awaitInPosition(ctx)
	})
}

// Stop escreve um comando de parada imediata no PLC
func (d *S7Drive) Stop() error {
	frame := buildSetpointFrame(opStop, 0, 0, 0)
	if err := d.client.WriteDataBlock(d.config.DBNumber, 0, frame); err != nil {
		return fmt.Errorf("erro ao enviar comando de parada: %w", err)
	}

	logger.Info("Comando de parada enviado ao PLC")
	return nil
}

// awaitInPosition espera o bit de em posição do PLC ou o cancelamento
// do contexto. No cancelamento, envia parada antes de retornar.
func (d *S7Drive) awaitInPosition(ctx context.Context) error {
	ticker := time.NewTicker(d.pollRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := d.Stop(); err != nil {
				logger.Error("Erro ao parar a tração no cancelamento", err)
			}
			return ctx.Err()

		case <-ticker.C:
			inPosition, err := d.client.ReadBool(d.config.DBNumber, offsetStatus, inPositionBit)
			if err != nil {
				return fmt.Errorf("erro ao ler status da tração: %w", err)
			}
			if inPosition {
				return nil
			}
		}
	}
}

// buildSetpointFrame monta o quadro de setpoints no layout do DB
func buildSetpointFrame(opcode int16, speed, distance, angleDeg float32) []byte {
	frame := make([]byte, setpointFrameLen)

	copy(frame[offsetSpeed:], utils.Float32ToBytes(speed))
	copy(frame[offsetDistance:], utils.Float32ToBytes(distance))
	copy(frame[offsetAngle:], utils.Float32ToBytes(angleDeg))
	copy(frame[offsetOpcode:], utils.Int16ToBytes(opcode))

	return frame
}
