package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/infrastructure/ws"
)

// WSUpgrade deja pasar solo peticiones de upgrade websocket.
func WSUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WSInventory suscribe la conexión al hub y reenvía cada ChangeEvent como un
// frame JSON hasta que el cliente se desconecta. La baja del suscriptor es
// implícita: la dispara el cierre del transporte.
func WSInventory(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id, events := hub.Subscribe()
		defer hub.Unsubscribe(id)

		// El read loop solo detecta el cierre; el canal entrante no se usa.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	})
}
