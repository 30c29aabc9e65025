package api

import (
	"net/http"
	"strings"

	"vision_go/internal/command"
	"vision_go/internal/vision"
	"vision_go/pkg/logger"
)

// Router gerencia as rotas da API
type Router struct {
	handler     *Handler
	mux         *http.ServeMux
	basePath    string
	middlewares []Middleware
}

// NewRouter cria um novo router para a API de diagnóstico
func NewRouter(estimator *vision.Estimator, status StatusSource, scheduler *command.Scheduler, routines map[string]func() command.Command, basePath string) *Router {
	handler := NewHandler(estimator, status, scheduler, routines)

	// Normalizar base path
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if basePath != "" && strings.HasSuffix(basePath, "/") {
		basePath = basePath[:len(basePath)-1]
	}

	// Configurar middlewares padrão
	middlewares := []Middleware{
		LoggingMiddleware,
		RecoveryMiddleware,
		CorsMiddleware,
	}

	return &Router{
		handler:     handler,
		mux:         http.NewServeMux(),
		basePath:    basePath,
		middlewares: middlewares,
	}
}

// Setup configura todas as rotas
func (r *Router) Setup() {
	// Leitura derivada completa do alvo
	r.mux.Handle(r.path("/snapshot"), r.applyMiddleware(http.HandlerFunc(r.handler.GetSnapshot)))

	// Modo de detecção: leitura, escrita e alternância
	r.mux.Handle(r.path("/pipeline"), r.applyMiddleware(http.HandlerFunc(r.handler.Pipeline)))
	r.mux.Handle(r.path("/pipeline/toggle"), r.applyMiddleware(http.HandlerFunc(r.handler.TogglePipeline)))

	// Autoteste dos LEDs indicadores
	r.mux.Handle(r.path("/selftest"), r.applyMiddleware(http.HandlerFunc(r.handler.SelfTest)))

	// Pose e distância estimadas
	r.mux.Handle(r.path("/pose"), r.applyMiddleware(http.HandlerFunc(r.handler.GetPose)))
	r.mux.Handle(r.path("/distance"), r.applyMiddleware(http.HandlerFunc(r.handler.GetDistance)))

	// Status do processo de coleta
	r.mux.Handle(r.path("/status"), r.applyMiddleware(http.HandlerFunc(r.handler.GetStatus)))

	// Rotinas autônomas
	r.mux.Handle(r.path("/auton"), r.applyMiddleware(http.HandlerFunc(r.handler.ListRoutines)))
	r.mux.Handle(r.path("/auton/"), r.applyMiddleware(http.HandlerFunc(r.handler.RunRoutine)))

	logger.Infof("API configurada com base path: %s", r.basePath)
}

// Handler retorna o handler HTTP final com todos os middlewares aplicados
func (r *Router) Handler() http.Handler {
	return r.applyMiddleware(r.mux)
}

// AddMiddleware adiciona um novo middleware
func (r *Router) AddMiddleware(middleware Middleware) {
	r.middlewares = append(r.middlewares, middleware)
}

// path retorna o caminho completo para uma rota
func (r *Router) path(route string) string {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return r.basePath + route
}

// applyMiddleware aplica todos os middlewares ao handler
func (r *Router) applyMiddleware(handler http.Handler) http.Handler {
	if len(r.middlewares) == 0 {
		return handler
	}

	return Chain(r.middlewares...)(handler)
}

// ServeHTTP implementa a interface http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := r.Handler()
	handler.ServeHTTP(w, req)
}
