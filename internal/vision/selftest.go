package vision

import (
	"time"

	"vision_go/internal/command"
)

// selfTestHold é quanto tempo os LEDs ficam piscando durante o autoteste
const selfTestHold = 2 * time.Second

// SelfTestRoutine monta a rotina de autoteste do sensor: pisca os LEDs,
// segura por um tempo fixo e restaura o padrão do pipeline. A rotina
// exercita o caminho de escrita da telemetria sem validar leituras; a
// espera é um ponto de suspensão do agendador, não desta thread.
func (e *Estimator) SelfTestRoutine() command.Command {
	return command.Sequence("vision-selftest",
		command.Instant("indicator-blink", func() error {
			return e.SetIndicatorMode(IndicatorBlink)
		}),
		command.Wait(selfTestHold),
		command.Instant("indicator-default", func() error {
			return e.SetIndicatorMode(IndicatorPipelineDefault)
		}),
	)
}
