package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vision_go/internal/command"
	"vision_go/internal/config"
	"vision_go/internal/telemetry"
	"vision_go/internal/vision"
)

func newTestRouter(t *testing.T) (*Router, *telemetry.MemoryStore) {
	t.Helper()

	store := telemetry.NewMemoryStore()
	estimator := vision.NewEstimator(store, config.EstimatorConfig{
		MaxLowDeg:  30,
		MaxMedDeg:  60,
		MaxHighDeg: 90,
		HeightLow:  1.0,
		HeightMed:  2.0,
		HeightHigh: 3.0,
	})

	router := NewRouter(estimator, nil, command.NewScheduler(), nil, "/api")
	router.Setup()

	return router, store
}

func doRequest(t *testing.T, router *Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetSnapshotWithoutTarget(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, false, body["hasTarget"])
	// Sem alvo, as leituras reais viram null no JSON
	assert.Nil(t, body["horizontalOffset"])
	assert.Nil(t, body["forwardDistance"])
	assert.Nil(t, body["targetId"])
}

func TestGetSnapshotWithTarget(t *testing.T) {
	router, store := newTestRouter(t)

	require.NoError(t, store.SetBool("tv", true))
	require.NoError(t, store.SetFloat("tx", -4.5))
	require.NoError(t, store.SetFloat("ty", 15.0))

	rec := doRequest(t, router, http.MethodGet, "/api/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, true, body["hasTarget"])
	assert.InDelta(t, -4.5, body["horizontalOffset"], 1e-9)
	assert.InDelta(t, 3.7320508, body["forwardDistance"], 1e-6)
}

func TestPipelineRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/pipeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pipeline":0`)

	rec = doRequest(t, router, http.MethodPost, "/api/pipeline", `{"pipeline":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/pipeline", "")
	assert.Contains(t, rec.Body.String(), `"pipeline":1`)
	assert.Contains(t, rec.Body.String(), `"name":"fiducial"`)
}

func TestPipelineRejectsInvalidMode(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/pipeline", `{"pipeline":7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTogglePipelineIsInvolution(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/pipeline/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pipeline":1`)

	rec = doRequest(t, router, http.MethodPost, "/api/pipeline/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pipeline":0`)
}

func TestSelfTestScheduled(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/selftest", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "vision-selftest")
}

func TestSelfTestRejectedWhileBusy(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/selftest", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	// A rotina segura os LEDs por 2s; a segunda submissão colide
	rec = doRequest(t, router, http.MethodPost, "/api/selftest", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetPose(t *testing.T) {
	router, store := newTestRouter(t)

	require.NoError(t, store.SetFloats("botpose", []float64{2.0, 3.0, 0.0, 10.0, 20.0, 0.0}))

	rec := doRequest(t, router, http.MethodGet, "/api/pose", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Raw         []float64 `json:"raw"`
		Translation struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"translation"`
		RotationDegrees float64 `json:"rotationDegrees"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, []float64{2, 3, 0, 10, 20, 0}, body.Raw)
	assert.Equal(t, 2.0, body.Translation.X)
	assert.Equal(t, 3.0, body.Translation.Y)
}

func TestGetDistanceWithoutTargetIsNull(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/distance", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Nil(t, body["distanceMeters"])
	assert.Equal(t, false, body["hasTarget"])
}

func TestGetStatusWithoutService(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// MemoryStore está sempre acessível
	assert.Equal(t, true, body["hardwareConnected"])
}

func TestRunRoutineUnknownName(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/auton/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/snapshot", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/selftest", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
