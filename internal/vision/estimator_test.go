package vision

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vision_go/internal/config"
	"vision_go/internal/telemetry"
)

// Calibração usada nos testes: limites em graus, alturas em metros
func testCalibration() config.EstimatorConfig {
	return config.EstimatorConfig{
		MaxLowDeg:  30.0,
		MaxMedDeg:  60.0,
		MaxHighDeg: 90.0,
		HeightLow:  1.0,
		HeightMed:  2.0,
		HeightHigh: 3.0,
	}
}

func newTestEstimator(t *testing.T) (*Estimator, *telemetry.MemoryStore) {
	t.Helper()
	store := telemetry.NewMemoryStore()
	return NewEstimator(store, testCalibration()), store
}

func setTarget(t *testing.T, store *telemetry.MemoryStore, visible bool) {
	t.Helper()
	require.NoError(t, store.SetBool("tv", visible))
}

func TestQueriesWithoutTargetReturnSentinel(t *testing.T) {
	est, store := newTestEstimator(t)

	// Valores armazenados legítimos, mas sem alvo adquirido
	setTarget(t, store, false)
	require.NoError(t, store.SetFloat("tx", -12.5))
	require.NoError(t, store.SetFloat("ty", 8.0))
	require.NoError(t, store.SetFloat("ts", -45.0))
	require.NoError(t, store.SetFloat("ta", 3.2))
	require.NoError(t, store.SetFloat("tid", 7.0))

	assert.False(t, est.HasTarget())
	assert.True(t, math.IsNaN(est.HorizontalOffset()))
	assert.True(t, math.IsNaN(est.VerticalOffset()))
	assert.True(t, math.IsNaN(est.Skew()))
	assert.True(t, math.IsNaN(est.TargetArea()))
	assert.True(t, math.IsNaN(est.ForwardDistance()))

	_, ok := est.TargetID()
	assert.False(t, ok)
}

func TestZeroReadingIsNotSentinel(t *testing.T) {
	est, store := newTestEstimator(t)

	// Desvio zero com alvo presente é leitura legítima, não ausência de dado
	setTarget(t, store, true)
	require.NoError(t, store.SetFloat("tx", 0.0))

	assert.Equal(t, 0.0, est.HorizontalOffset())
}

func TestIsLookingLeft(t *testing.T) {
	tests := []struct {
		name      string
		hasTarget bool
		offset    float64
		expected  bool
	}{
		{"desvio negativo com alvo", true, -5.0, true},
		{"desvio positivo com alvo", true, 5.0, false},
		{"desvio zero com alvo", true, 0.0, false},
		{"sem alvo com desvio negativo armazenado", false, -5.0, false},
		{"sem alvo com desvio positivo armazenado", false, 5.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, store := newTestEstimator(t)
			setTarget(t, store, tt.hasTarget)
			require.NoError(t, store.SetFloat("tx", tt.offset))

			assert.Equal(t, tt.expected, est.IsLookingLeft())
		})
	}
}

func TestTargetIDRequiresFiducialModeAndTarget(t *testing.T) {
	tests := []struct {
		name       string
		pipeline   int
		hasTarget  bool
		expectOK   bool
		expectedID float64
	}{
		{"modo fita com alvo", 0, true, false, 0},
		{"modo fita sem alvo", 0, false, false, 0},
		{"modo fiducial sem alvo", 1, false, false, 0},
		{"modo fiducial com alvo", 1, true, true, 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, store := newTestEstimator(t)
			setTarget(t, store, tt.hasTarget)
			require.NoError(t, store.SetInt("pipeline", tt.pipeline))
			require.NoError(t, store.SetFloat("tid", 7.0))

			id, ok := est.TargetID()
			assert.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expectedID, id)
			}
		})
	}
}

func TestPipelineReadNormalization(t *testing.T) {
	est, store := newTestEstimator(t)

	// Sem campo armazenado, o padrão é o modo fita
	assert.Equal(t, PipelineTape, est.Pipeline())

	require.NoError(t, store.SetInt("pipeline", 1))
	assert.Equal(t, PipelineFiducial, est.Pipeline())

	// Escrita externa fora de faixa não é validada; a leitura colapsa para fita
	require.NoError(t, store.SetInt("pipeline", 5))
	assert.Equal(t, PipelineTape, est.Pipeline())
}

func TestTogglePipelineIsItsOwnInverse(t *testing.T) {
	for _, start := range []PipelineMode{PipelineTape, PipelineFiducial} {
		t.Run(start.String(), func(t *testing.T) {
			est, store := newTestEstimator(t)
			require.NoError(t, store.SetInt("pipeline", int(start)))

			require.NoError(t, est.TogglePipeline())
			assert.NotEqual(t, start, est.Pipeline())

			require.NoError(t, est.TogglePipeline())
			assert.Equal(t, start, est.Pipeline())
		})
	}
}

func TestForwardDistanceBands(t *testing.T) {
	tests := []struct {
		name     string
		vertical float64
		expected float64
	}{
		{"faixa baixa", 15.0, 1.0 / math.Tan(15.0*math.Pi/180.0)},
		{"limite da faixa baixa é inclusivo", 30.0, 1.0 / math.Tan(30.0*math.Pi/180.0)},
		{"logo acima do limite usa a faixa média", 30.0001, 2.0 / math.Tan(30.0001*math.Pi/180.0)},
		{"faixa média", 45.0, 2.0 / math.Tan(45.0*math.Pi/180.0)},
		{"limite da faixa média é inclusivo", 60.0, 2.0 / math.Tan(60.0*math.Pi/180.0)},
		{"faixa alta", 75.0, 3.0 / math.Tan(75.0*math.Pi/180.0)},
		{"limite da faixa alta é inclusivo", 90.0, 3.0 / math.Tan(90.0*math.Pi/180.0)},
		{"desvio zero fica fora das faixas", 0.0, 0.0},
		{"desvio negativo fica fora das faixas", -10.0, 0.0},
		{"acima da faixa alta resolve para zero", 95.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, store := newTestEstimator(t)
			setTarget(t, store, true)
			require.NoError(t, store.SetFloat("ty", tt.vertical))

			assert.InDelta(t, tt.expected, est.ForwardDistance(), 1e-9)
		})
	}
}

func TestForwardDistanceWorkedExample(t *testing.T) {
	est, store := newTestEstimator(t)
	setTarget(t, store, true)
	require.NoError(t, store.SetFloat("ty", 15.0))

	// HEIGHT_LOW=1.0, v=15° -> 1.0/tan(15°) ≈ 3.732
	assert.InDelta(t, 3.7320508, est.ForwardDistance(), 1e-6)
}

func TestHorizontalAndVerticalOffsetAreIndependentFields(t *testing.T) {
	est, store := newTestEstimator(t)
	setTarget(t, store, true)
	require.NoError(t, store.SetFloat("tx", -4.0))
	require.NoError(t, store.SetFloat("ty", 12.0))

	assert.Equal(t, -4.0, est.HorizontalOffset())
	assert.Equal(t, 12.0, est.VerticalOffset())
}

func TestPoseAccessors(t *testing.T) {
	est, store := newTestEstimator(t)
	require.NoError(t, store.SetFloats("botpose", []float64{2.0, 3.0, 0, 10, 20, 0}))

	// A pose é acessor de baixo nível: não depende da presença do alvo
	setTarget(t, store, false)

	translation := est.Translation()
	assert.Equal(t, 2.0, translation.X())
	assert.Equal(t, 3.0, translation.Y())

	rotation := est.Rotation()
	pitchRad := 10.0 * math.Pi / 180.0
	yawRad := 20.0 * math.Pi / 180.0
	assert.InDelta(t, math.Atan2(yawRad, pitchRad), rotation.Radians(), 1e-9)

	transform := est.Transform(translation, rotation)
	assert.Equal(t, translation, transform.Translation())
	assert.Equal(t, rotation, transform.Rotation())
}

func TestRobotPositionDefaultsToZeros(t *testing.T) {
	est, _ := newTestEstimator(t)
	assert.Equal(t, [6]float64{}, est.RobotPosition())
}

func TestSnapshotMapsSentinelToAbsence(t *testing.T) {
	est, store := newTestEstimator(t)

	setTarget(t, store, false)
	snap := est.Snapshot()

	assert.False(t, snap.HasTarget)
	assert.Nil(t, snap.HorizontalOffset)
	assert.Nil(t, snap.VerticalOffset)
	assert.Nil(t, snap.Skew)
	assert.Nil(t, snap.TargetArea)
	assert.Nil(t, snap.ForwardDistance)
	assert.Nil(t, snap.TargetID)

	setTarget(t, store, true)
	require.NoError(t, store.SetInt("pipeline", 1))
	require.NoError(t, store.SetFloat("tx", -2.0))
	require.NoError(t, store.SetFloat("ty", 15.0))
	require.NoError(t, store.SetFloat("tid", 4.0))

	snap = est.Snapshot()
	require.NotNil(t, snap.HorizontalOffset)
	assert.Equal(t, -2.0, *snap.HorizontalOffset)
	require.NotNil(t, snap.TargetID)
	assert.Equal(t, 4.0, *snap.TargetID)
	assert.Equal(t, 1, snap.Pipeline)
}

func TestSelfTestRoutineRestoresIndicator(t *testing.T) {
	est, store := newTestEstimator(t)

	routine := est.SelfTestRoutine()
	require.NoError(t, routine.Run(context.Background()))

	// Ao final os LEDs voltam ao padrão do pipeline
	assert.Equal(t, int(IndicatorPipelineDefault), store.GetInt("ledMode", -1))
}

func TestSelfTestRoutineIsCancelable(t *testing.T) {
	est, store := newTestEstimator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := est.SelfTestRoutine().Run(ctx)
	require.Error(t, err)

	// Cancelado antes de qualquer passo, nada foi escrito
	assert.Equal(t, -1, store.GetInt("ledMode", -1))
}

func TestHardwareConnected(t *testing.T) {
	est, _ := newTestEstimator(t)
	assert.True(t, est.HardwareConnected())
}
