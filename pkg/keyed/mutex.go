package keyed

import "sync"

// Mutex serializa secciones críticas por clave (id de entidad). Se usa para
// linealizar las secuencias leer-modificar-escribir sobre un mismo registro de
// inventario o carrito dentro del proceso. Las entradas se liberan cuando
// nadie las espera, así el mapa no crece con el número de claves vistas.
type Mutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewMutex construye un Mutex por clave vacío.
func NewMutex() *Mutex {
	return &Mutex{locks: make(map[string]*lockEntry)}
}

// Lock bloquea la clave. Las llamadas con claves distintas no se bloquean
// entre sí.
func (m *Mutex) Lock(key string) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &lockEntry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()
	e.mu.Lock()
}

// Unlock libera la clave. Debe llamarse exactamente una vez por cada Lock.
func (m *Mutex) Unlock(key string) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		m.mu.Unlock()
		panic("keyed: Unlock de una clave no bloqueada: " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()
	e.mu.Unlock()
}
