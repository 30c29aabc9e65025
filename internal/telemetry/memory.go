package telemetry

import "sync"

// MemoryStore implementa Store em memória. É usado quando o Redis está
// desabilitado por configuração e como substituto nos testes.
type MemoryStore struct {
	mutex  sync.RWMutex
	values map[string]interface{}
}

// NewMemoryStore cria um novo armazenamento em memória
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]interface{}),
	}
}

// Connected sempre retorna true: o armazenamento em memória não tem backend
func (s *MemoryStore) Connected() bool {
	return true
}

// GetBool lê um campo booleano, aplicando o padrão se ausente
func (s *MemoryStore) GetBool(field string, def bool) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if val, ok := s.values[field].(bool); ok {
		return val
	}
	return def
}

// GetInt lê um campo inteiro, aplicando o padrão se ausente
func (s *MemoryStore) GetInt(field string, def int) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if val, ok := s.values[field].(int); ok {
		return val
	}
	return def
}

// GetFloat lê um campo numérico, aplicando o padrão se ausente
func (s *MemoryStore) GetFloat(field string, def float64) float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if val, ok := s.values[field].(float64); ok {
		return val
	}
	return def
}

// GetFloats lê um campo de array numérico, aplicando o padrão se ausente.
// Como no backend Redis, o resultado tem sempre o tamanho do padrão.
func (s *MemoryStore) GetFloats(field string, def []float64) []float64 {
	out := make([]float64, len(def))
	copy(out, def)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if vals, ok := s.values[field].([]float64); ok {
		for i := 0; i < len(out) && i < len(vals); i++ {
			out[i] = vals[i]
		}
	}
	return out
}

// SetBool escreve um campo booleano
func (s *MemoryStore) SetBool(field string, value bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[field] = value
	return nil
}

// SetInt escreve um campo inteiro
func (s *MemoryStore) SetInt(field string, value int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[field] = value
	return nil
}

// SetFloat escreve um campo numérico
func (s *MemoryStore) SetFloat(field string, value float64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[field] = value
	return nil
}

// SetFloats escreve um campo de array numérico
func (s *MemoryStore) SetFloats(field string, values []float64) error {
	copied := make([]float64, len(values))
	copy(copied, values)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[field] = copied
	return nil
}

// Delete remove um campo do armazenamento
func (s *MemoryStore) Delete(field string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.values, field)
}

// Close não tem recursos a liberar
func (s *MemoryStore) Close() error {
	return nil
}
