package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"vision_go/internal/config"
	"vision_go/pkg/logger"
)

const (
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
)

// RedisStore implementa Store sobre o Redis, com chaves prefixadas.
// Cada campo vira uma chave própria; valores são serializados como string
// e arrays como JSON.
type RedisStore struct {
	client    *redis.Client
	ctx       context.Context
	cancel    context.CancelFunc
	prefix    string
	config    config.RedisConfig
	connected bool
	mutex     sync.RWMutex
}

// NewRedisStore cria um novo armazenamento de telemetria sobre o Redis
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	ctx, cancel := context.WithCancel(context.Background())

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	store := &RedisStore{
		client: client,
		ctx:    ctx,
		cancel: cancel,
		prefix: cfg.Prefix,
		config: cfg,
	}

	// Testar conexão; falha não é fatal, o backend pode voltar depois
	if err := store.ping(); err != nil {
		logger.Warnf("Aviso: %v. O armazenamento de telemetria operará em modo offline.", err)
		return store, nil
	}

	store.connected = true
	return store, nil
}

// ping testa a conexão com o Redis
func (s *RedisStore) ping() error {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	result, err := s.client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	logger.Infof("Conexão com o Redis estabelecida. Resposta: %s", result)
	return nil
}

// Connected indica se o backend está alcançável
func (s *RedisStore) Connected() bool {
	s.mutex.RLock()
	ok := s.connected
	s.mutex.RUnlock()

	if ok {
		return true
	}

	// Tentar restabelecer a conexão de forma oportunista
	ctx, cancel := context.WithTimeout(s.ctx, readTimeout)
	defer cancel()

	if _, err := s.client.Ping(ctx).Result(); err != nil {
		return false
	}

	s.mutex.Lock()
	s.connected = true
	s.mutex.Unlock()
	return true
}

// key formata o nome de um campo com o prefixo configurado
func (s *RedisStore) key(field string) string {
	return fmt.Sprintf("%s:%s", s.prefix, field)
}

// get lê o valor bruto de um campo. Retorna ok=false quando ausente ou em falha.
func (s *RedisStore) get(field string) (string, bool) {
	ctx, cancel := context.WithTimeout(s.ctx, readTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.key(field)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Debugf("Falha ao ler campo %s: %v", field, err)
			s.markDisconnected()
		}
		return "", false
	}
	return val, true
}

// set escreve o valor bruto de um campo
func (s *RedisStore) set(field string, value string) error {
	ctx, cancel := context.WithTimeout(s.ctx, writeTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(field), value, 0).Err(); err != nil {
		s.markDisconnected()
		return fmt.Errorf("erro ao escrever campo %s: %w", field, err)
	}
	return nil
}

func (s *RedisStore) markDisconnected() {
	s.mutex.Lock()
	s.connected = false
	s.mutex.Unlock()
}

// GetBool lê um campo booleano, aplicando o padrão se ausente
func (s *RedisStore) GetBool(field string, def bool) bool {
	raw, ok := s.get(field)
	if !ok {
		return def
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

// GetInt lê um campo inteiro, aplicando o padrão se ausente
func (s *RedisStore) GetInt(field string, def int) int {
	raw, ok := s.get(field)
	if !ok {
		return def
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

// GetFloat lê um campo numérico, aplicando o padrão se ausente
func (s *RedisStore) GetFloat(field string, def float64) float64 {
	raw, ok := s.get(field)
	if !ok {
		return def
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return val
}

// GetFloats lê um campo de array numérico (JSON), aplicando o padrão se ausente.
// O resultado sempre tem o mesmo tamanho do padrão: arrays curtos são
// completados com os valores padrão e arrays longos são truncados.
func (s *RedisStore) GetFloats(field string, def []float64) []float64 {
	out := make([]float64, len(def))
	copy(out, def)

	raw, ok := s.get(field)
	if !ok {
		return out
	}

	var vals []float64
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return out
	}

	for i := 0; i < len(out) && i < len(vals); i++ {
		out[i] = vals[i]
	}
	return out
}

// SetBool escreve um campo booleano
func (s *RedisStore) SetBool(field string, value bool) error {
	return s.set(field, strconv.FormatBool(value))
}

// SetInt escreve um campo inteiro
func (s *RedisStore) SetInt(field string, value int) error {
	return s.set(field, strconv.Itoa(value))
}

// SetFloat escreve um campo numérico
func (s *RedisStore) SetFloat(field string, value float64) error {
	return s.set(field, strconv.FormatFloat(value, 'g', -1, 64))
}

// SetFloats escreve um campo de array numérico como JSON
func (s *RedisStore) SetFloats(field string, values []float64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("erro ao serializar campo %s: %w", field, err)
	}
	return s.set(field, string(data))
}

// Close encerra a conexão com o Redis
func (s *RedisStore) Close() error {
	s.cancel()

	if err := s.client.Close(); err != nil {
		return fmt.Errorf("erro ao fechar conexão Redis: %w", err)
	}

	s.markDisconnected()
	logger.Info("Conexão com o Redis fechada")
	return nil
}
