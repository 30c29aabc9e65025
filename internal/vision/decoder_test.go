package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrameComplete(t *testing.T) {
	response := "\x02tv 1 tx -4.25 ty 12.00 ts -30.5 ta 2.1 tid 7 botpose 2.0 3.0 0.0 10.0 20.0 0.0\x03"

	frame, err := decodeFrame(response)
	require.NoError(t, err)

	assert.True(t, frame.TargetVisible)
	assert.Equal(t, -4.25, frame.HorizontalOffset)
	assert.Equal(t, 12.0, frame.VerticalOffset)
	assert.Equal(t, -30.5, frame.Skew)
	assert.Equal(t, 2.1, frame.TargetArea)
	assert.Equal(t, 7.0, frame.TargetID)
	assert.Equal(t, [6]float64{2, 3, 0, 10, 20, 0}, frame.BotPose)
}

func TestDecodeFrameWithoutTarget(t *testing.T) {
	frame, err := decodeFrame("tv 0 tx 0.0 ty 0.0")
	require.NoError(t, err)

	assert.False(t, frame.TargetVisible)
	assert.Equal(t, 0.0, frame.HorizontalOffset)
}

func TestDecodeFrameEmptyResponse(t *testing.T) {
	_, err := decodeFrame("")
	require.Error(t, err)
}

func TestDecodeFrameSkipsUnknownTokens(t *testing.T) {
	frame, err := decodeFrame("fw 3.1 tv 1 tx -2.0 extra")
	require.NoError(t, err)

	assert.True(t, frame.TargetVisible)
	assert.Equal(t, -2.0, frame.HorizontalOffset)
}

func TestDecodeFrameIncompletePoseKeepsZeros(t *testing.T) {
	frame, err := decodeFrame("tv 1 botpose 1.0 2.0")
	require.NoError(t, err)

	// Bloco de pose incompleto é descartado; o quadro mantém zeros
	assert.Equal(t, [6]float64{}, frame.BotPose)
	assert.True(t, frame.TargetVisible)
}

func TestDecodeFrameInvalidScalarIsSkipped(t *testing.T) {
	frame, err := decodeFrame("tv 1 tx abc ty 5.0")
	require.NoError(t, err)

	assert.Equal(t, 0.0, frame.HorizontalOffset)
	assert.Equal(t, 5.0, frame.VerticalOffset)
}
