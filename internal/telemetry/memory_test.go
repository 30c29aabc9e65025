package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreDefaults(t *testing.T) {
	store := NewMemoryStore()

	// Campos ausentes resolvem para o valor padrão informado
	assert.False(t, store.GetBool("tv", false))
	assert.True(t, store.GetBool("tv", true))
	assert.Equal(t, 0, store.GetInt("pipeline", 0))
	assert.Equal(t, 0.0, store.GetFloat("tx", 0.0))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, store.GetFloats("botpose", make([]float64, 6)))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.SetBool("tv", true))
	require.NoError(t, store.SetInt("pipeline", 1))
	require.NoError(t, store.SetFloat("tx", -4.25))
	require.NoError(t, store.SetFloats("botpose", []float64{2, 3, 0, 10, 20, 0}))

	assert.True(t, store.GetBool("tv", false))
	assert.Equal(t, 1, store.GetInt("pipeline", 0))
	assert.Equal(t, -4.25, store.GetFloat("tx", 0.0))
	assert.Equal(t, []float64{2, 3, 0, 10, 20, 0}, store.GetFloats("botpose", make([]float64, 6)))
}

func TestMemoryStoreWrongTypeFallsBackToDefault(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.SetFloat("tv", 1.0))

	// Leitura com tipo incompatível resolve para o padrão, não para erro
	assert.False(t, store.GetBool("tv", false))
}

func TestMemoryStoreFloatsSizeNormalization(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.SetFloats("botpose", []float64{1, 2}))

	// Array curto é completado com o padrão até o tamanho esperado
	got := store.GetFloats("botpose", make([]float64, 6))
	assert.Equal(t, []float64{1, 2, 0, 0, 0, 0}, got)

	require.NoError(t, store.SetFloats("botpose", []float64{1, 2, 3, 4, 5, 6, 7, 8}))

	// Array longo é truncado no tamanho do padrão
	got = store.GetFloats("botpose", make([]float64, 6))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got)
}

func TestMemoryStoreFloatsIsolation(t *testing.T) {
	store := NewMemoryStore()

	src := []float64{1, 2, 3}
	require.NoError(t, store.SetFloats("botpose", src))

	// Mutação do slice original não pode afetar o valor armazenado
	src[0] = 99
	got := store.GetFloats("botpose", make([]float64, 3))
	assert.Equal(t, []float64{1, 2, 3}, got)
}
