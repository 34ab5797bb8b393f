package inventory

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// EventPublisher recibe los eventos de cambio de inventario después de cada
// escritura confirmada. La emisión es best-effort: nunca bloquea ni hace
// fallar la escritura que la originó.
type EventPublisher interface {
	Publish(ev entity.ChangeEvent)
}

// NoopPublisher descarta todos los eventos. Se usa mientras el canal en vivo
// aún no está cableado: la emisión se omite en silencio, nunca es precondición
// del commit.
type NoopPublisher struct{}

// Publish descarta el evento.
func (NoopPublisher) Publish(entity.ChangeEvent) {}
