package ws

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// Hub mantiene el conjunto efímero de suscriptores del canal en vivo y hace
// fan-out de los ChangeEvent. No posee a los suscriptores: la membresía la
// gobiernan los connect/disconnect del transporte.
//
// La entrega es best-effort y como máximo una vez: el envío a cada suscriptor
// es no bloqueante y los eventos se descartan si su buffer está lleno, así
// Publish nunca frena el camino de escritura que lo disparó.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]chan entity.ChangeEvent
	buffer  int
	log     *logger.Logger
	dropped atomic.Uint64
}

// DefaultBuffer tamaño del buffer por suscriptor.
const DefaultBuffer = 16

// NewHub construye un hub vacío.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		subs:   make(map[string]chan entity.ChangeEvent),
		buffer: DefaultBuffer,
		log:    log,
	}
}

// Subscribe registra un suscriptor y devuelve su id y el canal de eventos.
// El canal lo cierra el hub en Unsubscribe.
func (h *Hub) Subscribe() (string, <-chan entity.ChangeEvent) {
	id := uuid.New().String()
	ch := make(chan entity.ChangeEvent, h.buffer)
	h.mu.Lock()
	h.subs[id] = ch
	n := len(h.subs)
	h.mu.Unlock()
	h.log.Info().Str("subscriber", id).Int("total", n).Msg("cliente conectado")
	return id, ch
}

// Unsubscribe retira un suscriptor y cierra su canal. Es seguro llamarlo
// más de una vez con el mismo id.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
		close(ch)
	}
	n := len(h.subs)
	h.mu.Unlock()
	if ok {
		h.log.Info().Str("subscriber", id).Int("total", n).Msg("cliente desconectado")
	}
}

// Publish reparte el evento entre los suscriptores conectados. Sin
// suscriptores es un no-op. Un suscriptor lento pierde el evento en vez de
// bloquear al publicador.
func (h *Hub) Publish(ev entity.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.dropped.Add(1)
			h.log.Warn().Str("subscriber", id).Str("type", string(ev.Type)).Msg("evento descartado: buffer lleno")
		}
	}
}

// Subscribers devuelve el número de suscriptores conectados.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped devuelve el total de eventos descartados por buffers llenos.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}
