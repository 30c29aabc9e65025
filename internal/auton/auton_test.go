package auton

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vision_go/internal/command"
	"vision_go/internal/geometry"
)

// fakeDrive registra as rotinas executadas, sem PLC
type fakeDrive struct {
	calls []string
}

func (f *fakeDrive) DriveDistance(speed, meters float64) command.Command {
	name := fmt.Sprintf("drive(%.1f,%.1f)", speed, meters)
	return command.New(name, func(ctx context.Context) error {
		f.calls = append(f.calls, name)
		return nil
	})
}

func (f *fakeDrive) RotateToAngle(rot geometry.Rotation2D) command.Command {
	name := fmt.Sprintf("rotate(%.0f)", rot.Degrees())
	return command.New(name, func(ctx context.Context) error {
		f.calls = append(f.calls, name)
		return nil
	})
}

func (f *fakeDrive) Stop() error { return nil }

func (f *fakeDrive) Connected() bool { return true }

func TestRotateThenDriveOrder(t *testing.T) {
	d := &fakeDrive{}

	routine := RotateThenDrive(d)
	require.NoError(t, routine.Run(context.Background()))

	assert.Equal(t, []string{"rotate(180)", "drive(0.8,3.0)"}, d.calls)
}

func TestDriveFastAndSlowSpeeds(t *testing.T) {
	d := &fakeDrive{}

	require.NoError(t, DriveFast(d).Run(context.Background()))
	require.NoError(t, DriveSlow(d).Run(context.Background()))

	assert.Equal(t, []string{"drive(0.8,3.0)", "drive(0.3,3.0)"}, d.calls)
}

func TestRoutinesExposesAllFactories(t *testing.T) {
	d := &fakeDrive{}

	routines := Routines(d)
	assert.Len(t, routines, 3)

	for _, name := range []string{"rotate_then_drive", "drive_fast", "drive_slow"} {
		factory, ok := routines[name]
		require.True(t, ok, "rotina %s ausente", name)
		assert.NotNil(t, factory())
	}
}
