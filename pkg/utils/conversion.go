package utils

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float32ToBytes converte um valor float32 para bytes (formato IEEE 754, big-endian)
func Float32ToBytes(val float32) []byte {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, math.Float32bits(val))
	return bytes
}

// BytesToFloat32 converte bytes para float32 (formato IEEE 754, big-endian)
func BytesToFloat32(bytes []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(bytes))
}

// Int16ToBytes converte um valor int16 para bytes (big-endian)
func Int16ToBytes(val int16) []byte {
	bytes := make([]byte, 2)
	binary.BigEndian.PutUint16(bytes, uint16(val))
	return bytes
}

// BytesToInt16 converte bytes para int16 (big-endian)
func BytesToInt16(bytes []byte) int16 {
	return int16(binary.BigEndian.Uint16(bytes))
}

// FormatFloat formata um float com precisão específica, removendo zeros à direita
func FormatFloat(value float64, precision int) string {
	format := "%." + strconv.Itoa(precision) + "f"
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf(format, value), "0"), ".")
}
