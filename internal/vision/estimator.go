package vision

import (
	"math"
	"time"

	"vision_go/internal/config"
	"vision_go/internal/geometry"
	"vision_go/internal/models"
	"vision_go/internal/telemetry"
	"vision_go/pkg/utils"
)

// Estimator deriva grandezas de controle a partir da telemetria da câmera:
// desvios angulares, área, identidade do alvo, pose 2D e distância frontal.
//
// O estimador não guarda estado entre chamadas. Toda consulta relê o
// armazenamento de telemetria, e toda grandeza dependente do alvo é
// validada contra a presença dele: sem alvo, consultas reais retornam NaN
// (nunca zero, que é uma leitura legítima) e a identidade fica ausente.
type Estimator struct {
	store telemetry.Store
	cal   config.EstimatorConfig
}

// NewEstimator cria um estimador sobre um armazenamento de telemetria
func NewEstimator(store telemetry.Store, cal config.EstimatorConfig) *Estimator {
	return &Estimator{
		store: store,
		cal:   cal,
	}
}

// snapshot concentra as leituras de validade feitas por toda consulta:
// presença do alvo e modo de pipeline. Lido fresco a cada chamada.
type snapshot struct {
	hasTarget bool
	pipeline  PipelineMode
}

func (e *Estimator) readSnapshot() snapshot {
	return snapshot{
		hasTarget: e.store.GetBool(fieldTargetVisible, false),
		pipeline:  e.readPipeline(),
	}
}

// readPipeline lê o modo atual. O armazenamento é autoritativo e escritas
// não são validadas aqui; a leitura colapsa qualquer valor diferente de 1
// para o modo fita, de forma que o acessor só reporta um dos dois modos.
func (e *Estimator) readPipeline() PipelineMode {
	if e.store.GetInt(fieldPipeline, 0) == 1 {
		return PipelineFiducial
	}
	return PipelineTape
}

// HasTarget indica se a câmera tem um alvo adquirido
func (e *Estimator) HasTarget() bool {
	return e.store.GetBool(fieldTargetVisible, false)
}

// Pipeline retorna o modo de detecção atual (fita ou fiducial)
func (e *Estimator) Pipeline() PipelineMode {
	return e.readPipeline()
}

// SetPipeline seleciona o modo de detecção do sensor
func (e *Estimator) SetPipeline(mode PipelineMode) error {
	return e.store.SetInt(fieldPipeline, int(mode))
}

// TogglePipeline alterna entre os modos fita e fiducial
func (e *Estimator) TogglePipeline() error {
	if e.readPipeline() == PipelineTape {
		return e.SetPipeline(PipelineFiducial)
	}
	return e.SetPipeline(PipelineTape)
}

// SetIndicatorMode define o modo dos LEDs indicadores do sensor
func (e *Estimator) SetIndicatorMode(mode IndicatorMode) error {
	return e.store.SetInt(fieldIndicator, int(mode))
}

// gatedFloat lê um campo real validado pela presença do alvo.
// Sem alvo o resultado é NaN, o sentinela de "sem dado válido".
func (e *Estimator) gatedFloat(field string) float64 {
	if !e.HasTarget() {
		return math.NaN()
	}
	return e.store.GetFloat(field, 0.0)
}

// HorizontalOffset retorna o desvio horizontal em graus até o alvo, ou NaN
func (e *Estimator) HorizontalOffset() float64 {
	return e.gatedFloat(fieldHorizontalOffset)
}

// VerticalOffset retorna o desvio vertical em graus até o alvo, ou NaN
func (e *Estimator) VerticalOffset() float64 {
	return e.gatedFloat(fieldVerticalOffset)
}

// Skew retorna a inclinação do alvo em graus (intervalo (-90, 0]), ou NaN
func (e *Estimator) Skew() float64 {
	return e.gatedFloat(fieldSkew)
}

// TargetArea retorna o percentual do quadro ocupado pelo alvo, ou NaN
func (e *Estimator) TargetArea() float64 {
	return e.gatedFloat(fieldTargetArea)
}

// IsLookingLeft indica se o robô aponta à esquerda do alvo.
// Sem alvo o desvio é NaN, e NaN < 0 é falso: o resultado é
// deterministicamente false nesse caso.
func (e *Estimator) IsLookingLeft() bool {
	return e.HorizontalOffset() < 0
}

// TargetID retorna a identidade do marcador fiducial visado. A identidade
// só existe com o pipeline em modo fiducial E um alvo adquirido; fora
// disso retorna ok=false (ausente, não um número sentinela).
func (e *Estimator) TargetID() (float64, bool) {
	snap := e.readSnapshot()
	if snap.pipeline != PipelineFiducial || !snap.hasTarget {
		return 0, false
	}
	return e.store.GetFloat(fieldTargetID, 0.0), true
}

// RobotPosition retorna a estimativa de pose bruta do sensor:
// [x, y, z, pitch, yaw, roll]. Acessor de baixo nível, sem validação de
// presença; chamadores que precisam da validação devem consultar HasTarget.
func (e *Estimator) RobotPosition() [6]float64 {
	var out [6]float64
	vals := e.store.GetFloats(fieldBotPose, make([]float64, 6))
	copy(out[:], vals)
	return out
}

// Rotation constrói a rotação 2D até o alvo a partir das componentes de
// pitch (índice 3) e yaw (índice 4) da pose, convertidas de graus para
// radianos antes da construção.
func (e *Estimator) Rotation() geometry.Rotation2D {
	pose := e.RobotPosition()
	return geometry.NewRotation2DFromComponents(
		utils.DegToRad(pose[3]),
		utils.DegToRad(pose[4]),
	)
}

// Translation constrói a translação 2D até o alvo a partir das componentes
// x (índice 0) e y (índice 1) da pose, nas unidades publicadas pelo sensor.
func (e *Estimator) Translation() geometry.Translation2D {
	pose := e.RobotPosition()
	return geometry.NewTranslation2D(pose[0], pose[1])
}

// Transform compõe uma translação e uma rotação em uma transformação
// rígida única. Função pura: não consulta telemetria.
func (e *Estimator) Transform(translation geometry.Translation2D, rotation geometry.Rotation2D) geometry.Transform2D {
	return geometry.NewTransform2D(translation, rotation)
}

// ForwardDistance estima a distância frontal até o alvo em metros, pelo
// modelo trigonométrico por faixas do desvio vertical. As faixas são
// contíguas em (0, MaxHigh] graus, com limite superior inclusivo; cada uma
// usa a altura de montagem do seu nível de alvo. Fora das faixas o
// resultado contratual é 0.0 (comportamento legado, não falha de validade).
// Sem alvo o resultado é NaN, distinguindo "sem alvo" de "fora de faixa".
func (e *Estimator) ForwardDistance() float64 {
	if !e.HasTarget() {
		return math.NaN()
	}

	v := e.store.GetFloat(fieldVerticalOffset, 0.0)

	switch {
	case v > 0 && v <= e.cal.MaxLowDeg:
		return e.cal.HeightLow / math.Tan(utils.DegToRad(v))
	case v > e.cal.MaxLowDeg && v <= e.cal.MaxMedDeg:
		return e.cal.HeightMed / math.Tan(utils.DegToRad(v))
	case v > e.cal.MaxMedDeg && v <= e.cal.MaxHighDeg:
		return e.cal.HeightHigh / math.Tan(utils.DegToRad(v))
	default:
		return 0.0
	}
}

// HardwareConnected verifica a conexão declarada com o armazenamento de
// telemetria do sensor (existência, não conteúdo)
func (e *Estimator) HardwareConnected() bool {
	return e.store.Connected()
}

// Snapshot monta a visão de diagnóstico completa com leituras frescas.
// NaN vira ponteiro nil para que a serialização JSON exponha null em vez
// de um sentinela numérico.
func (e *Estimator) Snapshot() models.TargetSnapshot {
	snap := models.TargetSnapshot{
		HasTarget:        e.HasTarget(),
		HorizontalOffset: optional(e.HorizontalOffset()),
		VerticalOffset:   optional(e.VerticalOffset()),
		Skew:             optional(e.Skew()),
		TargetArea:       optional(e.TargetArea()),
		ForwardDistance:  optional(e.ForwardDistance()),
		Pipeline:         int(e.Pipeline()),
		BotPose:          e.RobotPosition(),
		Timestamp:        time.Now(),
	}

	if id, ok := e.TargetID(); ok {
		snap.TargetID = &id
	}

	return snap
}

// optional converte o sentinela NaN em ausência
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
