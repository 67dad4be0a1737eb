package message

import (
	"github.com/addlightness/whop-war-websocket/internal/network"
)

// Peer é qualquer destino que pode receber uma mensagem. Desacopla a camada
// de sessão do *network.Client concreto, o que também permite testar os
// handlers com peers falsos.
type Peer interface {
	Send() chan<- network.Message
}

// TrySend entrega sem bloquear. Envio é fire-and-forget: se o buffer do peer
// está cheio (cliente lento ou já morto), a mensagem é descartada e o
// chamador decide se loga. Nunca bloqueia a goroutine do Hub.
func TrySend(p Peer, msg network.Message) bool {
	select {
	case p.Send() <- msg:
		return true
	default:
		return false
	}
}
