package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vision_go/internal/config"
	"vision_go/internal/geometry"
	"vision_go/pkg/utils"
)

func TestBuildSetpointFrameLayout(t *testing.T) {
	frame := buildSetpointFrame(opDrive, 0.5, 2.25, 0)

	assert.Len(t, frame, setpointFrameLen)
	assert.Equal(t, float32(0.5), utils.BytesToFloat32(frame[offsetSpeed:offsetSpeed+4]))
	assert.Equal(t, float32(2.25), utils.BytesToFloat32(frame[offsetDistance:offsetDistance+4]))
	assert.Equal(t, float32(0), utils.BytesToFloat32(frame[offsetAngle:offsetAngle+4]))
	assert.Equal(t, opDrive, utils.BytesToInt16(frame[offsetOpcode:offsetOpcode+2]))
}

func TestBuildSetpointFrameRotate(t *testing.T) {
	frame := buildSetpointFrame(opRotate, 0, 0, -90.0)

	assert.Equal(t, float32(-90.0), utils.BytesToFloat32(frame[offsetAngle:offsetAngle+4]))
	assert.Equal(t, opRotate, utils.BytesToInt16(frame[offsetOpcode:offsetOpcode+2]))
}

func TestBuildSetpointFrameStopZeroesSetpoints(t *testing.T) {
	frame := buildSetpointFrame(opStop, 0, 0, 0)

	assert.Equal(t, float32(0), utils.BytesToFloat32(frame[offsetSpeed:offsetSpeed+4]))
	assert.Equal(t, float32(0), utils.BytesToFloat32(frame[offsetDistance:offsetDistance+4]))
	assert.Equal(t, opStop, utils.BytesToInt16(frame[offsetOpcode:offsetOpcode+2]))
}

func TestDriveCommandNames(t *testing.T) {
	d := NewS7Drive(config.DriveConfig{DBNumber: 20})

	assert.Equal(t, "drive-2.5m", d.DriveDistance(0.8, 2.5).Name())
	assert.Equal(t, "rotate-90deg", d.RotateToAngle(geometry.NewRotation2DFromDegrees(90)).Name())
}

func TestMarkDisconnectedUpdatesConnectionState(t *testing.T) {
	c := NewS7Client(config.DriveConfig{Host: "192.168.0.10"})

	c.connectMutex.Lock()
	c.connected = true
	c.connectMutex.Unlock()

	assert.True(t, c.IsConnected())

	// Falhas de leitura e escrita marcam a desconexão sob o mutex
	c.markDisconnected()
	assert.False(t, c.IsConnected())
}
