package entity

// ChangeType etiqueta una mutación confirmada del inventario.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent notifica una mutación confirmada del inventario. Lleva el
// snapshot posterior a la escritura, o el marcador de borrado. Es transitorio:
// solo existe en el camino de fan-out, nunca se persiste.
type ChangeEvent struct {
	Type      ChangeType       `json:"type"`
	Record    *InventoryRecord `json:"record,omitempty"`
	ProductID string           `json:"productId,omitempty"`
	Deleted   bool             `json:"deleted,omitempty"`
}

// NewChangeCreated construye el evento para un registro recién creado.
func NewChangeCreated(rec *InventoryRecord) ChangeEvent {
	return ChangeEvent{Type: ChangeCreated, Record: rec}
}

// NewChangeUpdated construye el evento para un registro mutado.
func NewChangeUpdated(rec *InventoryRecord) ChangeEvent {
	return ChangeEvent{Type: ChangeUpdated, Record: rec}
}

// NewChangeDeleted construye el marcador de borrado para un producto.
func NewChangeDeleted(productID string) ChangeEvent {
	return ChangeEvent{Type: ChangeDeleted, ProductID: productID, Deleted: true}
}
