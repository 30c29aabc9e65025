package vision

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vision_go/internal/models"
	"vision_go/pkg/logger"
)

// botPoseLen é o tamanho fixo do bloco de pose publicado pela câmera
const botPoseLen = 6

// decodeFrame decodifica a resposta ASCII da câmera em um quadro de telemetria.
// O formato é uma sequência de pares chave-valor separados por espaço:
//
//	tv 1 tx -4.25 ty 12.00 ts -30.5 ta 2.1 tid 7 botpose 2.0 3.0 0.0 10.0 20.0 0.0
//
// Campos ausentes mantêm o valor zero do quadro; a validade das leituras é
// decidida depois, pelo campo tv.
func decodeFrame(response string) (*models.VisionFrame, error) {
	if len(response) == 0 {
		return nil, fmt.Errorf("resposta vazia da câmera")
	}

	// Remove caracteres de controle e divide em tokens
	cleaned := strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return ' '
		}
		return r
	}, response)

	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("resposta da câmera sem tokens: %q", response)
	}

	frame := &models.VisionFrame{
		Timestamp: time.Now(),
		Status:    "ok",
	}

	for i := 0; i < len(tokens); {
		key := tokens[i]

		switch key {
		case fieldTargetVisible:
			val, consumed, err := parseFloatAt(tokens, i+1)
			if err != nil {
				logger.Warnf("Campo tv inválido: %v", err)
				i++
				continue
			}
			frame.TargetVisible = val != 0
			i += 1 + consumed

		case fieldHorizontalOffset, fieldVerticalOffset, fieldSkew, fieldTargetArea, fieldTargetID:
			val, consumed, err := parseFloatAt(tokens, i+1)
			if err != nil {
				logger.Warnf("Campo %s inválido: %v", key, err)
				i++
				continue
			}
			assignScalar(frame, key, val)
			i += 1 + consumed

		case fieldBotPose:
			consumed, err := parsePoseAt(tokens, i+1, frame)
			if err != nil {
				logger.Warnf("Bloco botpose inválido: %v", err)
				i++
				continue
			}
			i += 1 + consumed

		default:
			// Token desconhecido: pular e seguir decodificando
			logger.Debugf("Token desconhecido na resposta da câmera: %q", key)
			i++
		}
	}

	return frame, nil
}

// assignScalar grava um valor escalar no campo correspondente do quadro
func assignScalar(frame *models.VisionFrame, key string, val float64) {
	switch key {
	case fieldHorizontalOffset:
		frame.HorizontalOffset = val
	case fieldVerticalOffset:
		frame.VerticalOffset = val
	case fieldSkew:
		frame.Skew = val
	case fieldTargetArea:
		frame.TargetArea = val
	case fieldTargetID:
		frame.TargetID = val
	}
}

// parseFloatAt lê um valor numérico na posição dada
func parseFloatAt(tokens []string, idx int) (float64, int, error) {
	if idx >= len(tokens) {
		return 0, 0, fmt.Errorf("valor ausente na posição %d", idx)
	}

	val, err := strconv.ParseFloat(tokens[idx], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("valor numérico inválido %q: %w", tokens[idx], err)
	}

	return val, 1, nil
}

// parsePoseAt lê o bloco de seis valores de pose a partir da posição dada
func parsePoseAt(tokens []string, idx int, frame *models.VisionFrame) (int, error) {
	if idx+botPoseLen > len(tokens) {
		return 0, fmt.Errorf("bloco de pose incompleto: esperados %d valores", botPoseLen)
	}

	var pose [botPoseLen]float64
	for i := 0; i < botPoseLen; i++ {
		val, err := strconv.ParseFloat(tokens[idx+i], 64)
		if err != nil {
			return 0, fmt.Errorf("valor de pose inválido %q: %w", tokens[idx+i], err)
		}
		pose[i] = val
	}

	frame.BotPose = pose
	return botPoseLen, nil
}
