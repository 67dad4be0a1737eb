package network

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Server expõe o endpoint WebSocket e gerencia o Hub associado.
type Server struct {
	hub *Hub
}

var upgrader = websocket.Upgrader{
	// Qualquer origem pode conectar; o jogo não tem autenticação por domínio.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer injeta a lógica do jogo (EventHandler) no Hub.
func NewServer(handler EventHandler) *Server {
	return &Server{
		hub: NewHub(handler),
	}
}

// wsHandler promove a requisição HTTP para uma conexão WebSocket persistente
// e registra o novo cliente no Hub.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Server] Erro ao fazer upgrade da conexão: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		hub:  s.hub,
		send: make(chan Message, 256),
	}

	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// Listen inicia o Hub, registra a rota /ws no mux recebido e sobe o servidor
// HTTP. Passar um mux próprio permite que o main acrescente rotas como /health.
func (s *Server) Listen(address string, mux *http.ServeMux) error {
	go s.hub.Run()

	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.HandleFunc("/ws", s.wsHandler)

	log.Printf("[Server] Servidor WebSocket escutando em ws://%s/ws", address)

	return http.ListenAndServe(address, mux)
}
