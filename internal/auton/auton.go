package auton

import (
	"vision_go/internal/command"
	"vision_go/internal/drive"
	"vision_go/internal/geometry"
)

// Velocidades normalizadas das rotinas autônomas
const (
	FastSpeed = 0.8
	SlowSpeed = 0.3
)

// autoDistanceMeters é a distância padrão das rotinas de avanço
const autoDistanceMeters = 3.0

// RotateThenDrive gira a base meia volta e avança em velocidade alta
func RotateThenDrive(d drive.Drive) command.Command {
	return command.Sequence("rotate-then-drive",
		d.RotateToAngle(geometry.NewRotation2DFromDegrees(180)),
		d.DriveDistance(FastSpeed, autoDistanceMeters),
	)
}

// DriveFast avança a distância padrão em velocidade alta
func DriveFast(d drive.Drive) command.Command {
	return d.DriveDistance(FastSpeed, autoDistanceMeters)
}

// DriveSlow avança a distância padrão em velocidade baixa
func DriveSlow(d drive.Drive) command.Command {
	return d.DriveDistance(SlowSpeed, autoDistanceMeters)
}

// Routines mapeia os nomes expostos na API para as fábricas de rotina
func Routines(d drive.Drive) map[string]func() command.Command {
	return map[string]func() command.Command{
		"rotate_then_drive": func() command.Command { return RotateThenDrive(d) },
		"drive_fast":        func() command.Command { return DriveFast(d) },
		"drive_slow":        func() command.Command { return DriveSlow(d) },
	}
}
