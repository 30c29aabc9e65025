package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"vision_go/internal/command"
	"vision_go/internal/models"
	"vision_go/internal/vision"
	"vision_go/pkg/logger"
)

// StatusSource expõe o status operacional do processo de coleta
type StatusSource interface {
	GetStatus() models.SensorStatus
}

// Handler contém os handlers HTTP da API de diagnóstico
type Handler struct {
	estimator *vision.Estimator
	status    StatusSource
	scheduler *command.Scheduler
	routines  map[string]func() command.Command
}

// NewHandler cria um novo handler de API
func NewHandler(estimator *vision.Estimator, status StatusSource, scheduler *command.Scheduler, routines map[string]func() command.Command) *Handler {
	return &Handler{
		estimator: estimator,
		status:    status,
		scheduler: scheduler,
		routines:  routines,
	}
}

// GetSnapshot retorna a leitura derivada completa do alvo
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	h.respondWithJSON(w, http.StatusOK, h.estimator.Snapshot())
}

// Pipeline trata leitura (GET) e escrita (POST) do modo de detecção
func (h *Handler) Pipeline(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		mode := h.estimator.Pipeline()
		h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"pipeline": int(mode),
			"name":     mode.String(),
		})

	case http.MethodPost:
		var body struct {
			Pipeline int `json:"pipeline"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Corpo de requisição inválido")
			return
		}
		if body.Pipeline != int(vision.PipelineTape) && body.Pipeline != int(vision.PipelineFiducial) {
			h.respondWithError(w, http.StatusBadRequest, "Modo de pipeline inválido. Use 0 (fita) ou 1 (fiducial).")
			return
		}

		if err := h.estimator.SetPipeline(vision.PipelineMode(body.Pipeline)); err != nil {
			h.respondWithError(w, http.StatusBadGateway, fmt.Sprintf("Erro ao gravar modo: %v", err))
			return
		}

		h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"pipeline": body.Pipeline})

	default:
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
	}
}

// TogglePipeline alterna o modo de detecção entre fita e fiducial
func (h *Handler) TogglePipeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	if err := h.estimator.TogglePipeline(); err != nil {
		h.respondWithError(w, http.StatusBadGateway, fmt.Sprintf("Erro ao alternar modo: %v", err))
		return
	}

	mode := h.estimator.Pipeline()
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pipeline": int(mode),
		"name":     mode.String(),
	})
}

// SelfTest agenda a rotina de autoteste dos LEDs indicadores
func (h *Handler) SelfTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	routine := h.estimator.SelfTestRoutine()
	if err := h.scheduler.Submit(routine); err != nil {
		h.respondWithError(w, http.StatusConflict, err.Error())
		return
	}

	h.respondWithJSON(w, http.StatusAccepted, map[string]string{"scheduled": routine.Name()})
}

// GetPose retorna a pose 2D estimada do robô em relação ao campo
func (h *Handler) GetPose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	pose := h.estimator.RobotPosition()
	rotation := h.estimator.Rotation()
	translation := h.estimator.Translation()

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"raw": pose[:],
		"translation": map[string]float64{
			"x": translation.X(),
			"y": translation.Y(),
		},
		"rotationDegrees": rotation.Degrees(),
	})
}

// GetDistance retorna a distância frontal estimada até o alvo
func (h *Handler) GetDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	distance := h.estimator.ForwardDistance()

	// NaN não é serializável; sem alvo a distância é null
	var payload interface{}
	if !math.IsNaN(distance) {
		payload = distance
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"distanceMeters": payload,
		"hasTarget":      h.estimator.HasTarget(),
	})
}

// GetStatus retorna o status do processo de coleta e da telemetria
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	response := map[string]interface{}{
		"hardwareConnected": h.estimator.HardwareConnected(),
		"timestamp":         time.Now().UnixNano() / int64(time.Millisecond),
	}

	if h.status != nil {
		status := h.status.GetStatus()
		response["status"] = status.Status
		if status.LastError != "" {
			response["lastError"] = status.LastError
		}
		if status.ErrorCount > 0 {
			response["errorCount"] = status.ErrorCount
		}
	}

	h.respondWithJSON(w, http.StatusOK, response)
}

// RunRoutine agenda uma rotina autônoma pelo nome no final da URL
func (h *Handler) RunRoutine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	parts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	name := parts[len(parts)-1]

	factory, ok := h.routines[name]
	if !ok {
		h.respondWithError(w, http.StatusNotFound, fmt.Sprintf("Rotina desconhecida: %s", name))
		return
	}

	routine := factory()
	if err := h.scheduler.Submit(routine); err != nil {
		h.respondWithError(w, http.StatusConflict, err.Error())
		return
	}

	h.respondWithJSON(w, http.StatusAccepted, map[string]string{"scheduled": routine.Name()})
}

// ListRoutines retorna os nomes das rotinas autônomas disponíveis
func (h *Handler) ListRoutines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	names := make([]string, 0, len(h.routines))
	for name := range h.routines {
		names = append(names, name)
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"routines": names,
		"busy":     h.scheduler.Busy(),
	})
}

// respondWithError responde com erro em formato JSON
func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON responde com JSON
func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("Erro ao codificar resposta JSON: %v", err)
		fmt.Fprintf(w, `{"error":"Erro interno ao processar resposta"}`)
	}
}
