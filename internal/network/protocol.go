package network

import (
	"encoding/json"
)

// Message é o envelope padrão para toda a comunicação com o cliente.
// O campo Data fica em JSON bruto para ser decodificado depois, pelo
// handler do tipo correspondente.
type Message struct {
	Type string          `json:"type"`           // Ex: "join_queue", "game_update"
	Data json.RawMessage `json:"data,omitempty"` // Payload específico de cada tipo.
}

// MaxMessageSize limita o tamanho de um frame vindo do cliente.
// Nenhuma mensagem legítima do protocolo chega perto disso.
const MaxMessageSize = 64 * 1024

// invalidFrameReply é a resposta enviada quando um frame recebido não é um
// JSON válido. A conexão permanece aberta; o erro é do frame, não do cliente.
var invalidFrameReply = Message{
	Type: "error",
	Data: json.RawMessage(`{"message":"Invalid message format."}`),
}
