package network

import (
	"encoding/json"
	"log"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Tempo máximo para uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo aguardando um pong de controle do cliente.
	pongWait = 60 * time.Second

	// Frequência dos pings de controle. Precisa ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client é a representação de um jogador conectado do ponto de vista do
// servidor: a conexão WebSocket e o canal de saída.
type Client struct {
	conn *websocket.Conn

	hub *Hub

	// Canal bufferizado de mensagens de saída. O buffer evita que o Hub
	// bloqueie se o cliente estiver lento para consumir.
	send chan Message
}

// Conn retorna a net.Conn subjacente, útil para logar o endereço do jogador.
func (c *Client) Conn() net.Conn {
	return c.conn.UnderlyingConn()
}

// Send expõe o canal de saída. Quem envia nunca escreve direto na conexão;
// o writeLoop é o único escritor.
func (c *Client) Send() chan<- Message {
	return c.send
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Client] Erro inesperado de leitura em %s: %v", c.conn.RemoteAddr(), err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			// Frame ilegível não derruba a conexão: respondemos o erro de
			// protocolo e seguimos lendo. Como todo envio, sem bloquear: com
			// o buffer cheio a resposta é descartada e o loop continua capaz
			// de detectar o fechamento e desregistrar o cliente.
			select {
			case c.send <- invalidFrameReply:
			default:
			}
			continue
		}

		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop bombeia mensagens do canal 'send' para a conexão WebSocket e
// mantém a conexão viva com pings periódicos.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// O Hub fechou o canal: o cliente foi desregistrado.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[Client] Erro de escrita em %s: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
