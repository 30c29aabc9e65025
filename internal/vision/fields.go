package vision

// Campos publicados pela câmera no armazenamento de telemetria.
// Os nomes seguem o esquema do sensor.
const (
	fieldTargetVisible    = "tv"      // booleano: alvo visível no quadro
	fieldHorizontalOffset = "tx"      // graus: desvio horizontal do retículo ao alvo
	fieldVerticalOffset   = "ty"      // graus: desvio vertical do retículo ao alvo
	fieldSkew             = "ts"      // graus, intervalo (-90, 0]
	fieldTargetArea       = "ta"      // percentual do quadro ocupado pelo alvo
	fieldTargetID         = "tid"     // identidade do marcador fiducial
	fieldBotPose          = "botpose" // array[6]: x, y, z, pitch, yaw, roll
	fieldPipeline         = "pipeline"
	fieldIndicator        = "ledMode"
)

// PipelineMode identifica o algoritmo de detecção selecionado no sensor
type PipelineMode int

const (
	// PipelineTape detecta fita retrorrefletiva
	PipelineTape PipelineMode = 0
	// PipelineFiducial detecta marcadores fiduciais com identidade
	PipelineFiducial PipelineMode = 1
)

func (m PipelineMode) String() string {
	switch m {
	case PipelineTape:
		return "tape"
	case PipelineFiducial:
		return "fiducial"
	default:
		return "unknown"
	}
}

// IndicatorMode controla os LEDs indicadores do sensor
type IndicatorMode int

const (
	// IndicatorPipelineDefault segue o padrão do pipeline ativo
	IndicatorPipelineDefault IndicatorMode = 0
	// IndicatorOff desliga os LEDs
	IndicatorOff IndicatorMode = 1
	// IndicatorBlink pisca os LEDs
	IndicatorBlink IndicatorMode = 2
	// IndicatorOn liga os LEDs continuamente
	IndicatorOn IndicatorMode = 3
)
