// Package telemetry fornece o armazenamento chave-valor de telemetria do robô.
//
// O armazenamento guarda o último valor conhecido de cada campo publicado pelo
// processo do sensor. Leituras nunca falham: todo acesso informa um valor
// padrão explícito, aplicado quando o campo está ausente ou o backend está
// indisponível. Escritas podem falhar e retornam erro.
package telemetry

// Store é o contrato consumido pelo estimador e pelo poller do sensor.
type Store interface {
	// Leituras com valor padrão obrigatório. A ausência do campo (ou uma
	// falha de backend) resolve para o padrão, nunca para erro.
	GetBool(field string, def bool) bool
	GetInt(field string, def int) int
	GetFloat(field string, def float64) float64
	GetFloats(field string, def []float64) []float64

	// Escritas de último valor conhecido.
	SetBool(field string, value bool) error
	SetInt(field string, value int) error
	SetFloat(field string, value float64) error
	SetFloats(field string, values []float64) error

	// Connected indica se o backend do armazenamento está alcançável.
	Connected() bool

	// Close libera os recursos do backend.
	Close() error
}
