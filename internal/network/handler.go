package network

// EventHandler é a interface que conecta a camada de rede com a lógica do jogo.
// O código do jogo (fora deste pacote) implementa esta interface; o Hub chama
// os três métodos sempre a partir da mesma goroutine, então o handler não
// precisa de locks próprios.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente se conecta com sucesso.
	OnConnect(c *Client)

	// OnDisconnect é chamado quando um cliente se desconecta ou a conexão falha.
	OnDisconnect(c *Client)

	// OnMessage é chamado para cada mensagem decodificada recebida de um cliente.
	OnMessage(c *Client, msg Message)
}
