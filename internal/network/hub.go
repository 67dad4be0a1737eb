package network

// clientMessage empacota uma mensagem junto com o cliente que a enviou.
// O handler precisa dos dois para responder ao remetente certo.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e roteia todos os eventos
// (conexão, desconexão, mensagem) para o EventHandler em uma única goroutine.
// É esse funil que garante o processamento sequencial exigido pelo registro
// de sessões: nenhuma mutação de partida acontece fora do loop do Hub.
type Hub struct {
	// Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// As goroutines readLoop dos clientes enviam mensagens para este canal.
	incoming chan clientMessage

	handler EventHandler
}

func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Avisa a lógica do jogo ANTES de fechar o canal send: o
				// handler ainda pode querer notificar o oponente, e este
				// continua com o canal aberto.
				h.handler.OnDisconnect(client)
				// Fechar 'send' é o sinal para o writeLoop daquele cliente parar.
				close(client.send)
			}

		case clientMsg := <-h.incoming:
			// O Hub não interpreta a mensagem; apenas delega.
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}
