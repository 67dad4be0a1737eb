package message

// Mensagens no sentido servidor -> cliente.

import (
	"encoding/json"

	"github.com/addlightness/whop-war-websocket/internal/game/war"
	"github.com/addlightness/whop-war-websocket/internal/network"
)

// TextPayload é o corpo dos avisos que carregam só um texto de exibição.
type TextPayload struct {
	Message string `json:"message"`
}

// GameCreatedPayload responde um create_game para o criador.
type GameCreatedPayload struct {
	JoinCode string `json:"joinCode"`
	GameID   string `json:"gameId"`
}

func CreatePong() network.Message {
	return network.Message{Type: "pong"}
}

func CreateQueueJoined(text string) network.Message {
	return wrap("queue_joined", TextPayload{Message: text})
}

func CreateGameCreated(joinCode, gameID string) network.Message {
	return wrap("game_created", GameCreatedPayload{JoinCode: joinCode, GameID: gameID})
}

// CreateGameUpdate embrulha a projeção da partida. O snapshot já é uma cópia
// por valor, então a mensagem pode viver mais que o estado que a originou.
func CreateGameUpdate(snap war.Snapshot) network.Message {
	return wrap("game_update", snap)
}

func CreateError(text string) network.Message {
	return wrap("error", TextPayload{Message: text})
}

func CreateOpponentDisconnected(text string) network.Message {
	return wrap("opponent_disconnected", TextPayload{Message: text})
}

func wrap(msgType string, payload any) network.Message {
	// Os payloads daqui são structs nossas; o Marshal não tem como falhar.
	data, _ := json.Marshal(payload)
	return network.Message{
		Type: msgType,
		Data: data,
	}
}
