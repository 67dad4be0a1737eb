package session

// Payloads no sentido cliente -> servidor. Cada tipo de mensagem tem sua
// própria struct com apenas os campos que aquele tipo exige; a validação
// acontece na borda, logo após o decode, e não espalhada pelos handlers.

import (
	"encoding/json"
	"errors"
)

var errMissingField = errors.New("missing required field")

type joinQueuePayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	// Nome de exibição de quem já esperava na fila, informado pelo cliente
	// entrante; cai para "Player" quando ausente.
	WaitingPlayerName string `json:"waitingPlayerName"`
}

func (p *joinQueuePayload) validate() error {
	if p.PlayerID == "" || p.Name == "" {
		return errMissingField
	}
	return nil
}

type createGamePayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

func (p *createGamePayload) validate() error {
	if p.PlayerID == "" || p.Name == "" {
		return errMissingField
	}
	return nil
}

type joinGamePayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	JoinCode string `json:"joinCode"`
}

func (p *joinGamePayload) validate() error {
	if p.PlayerID == "" || p.Name == "" || p.JoinCode == "" {
		return errMissingField
	}
	return nil
}

type gameActionPayload struct {
	Action string `json:"action"`
}

func (p *gameActionPayload) validate() error {
	if p.Action == "" {
		return errMissingField
	}
	return nil
}

// decodePayload é o funil comum: JSON inválido ou campo obrigatório ausente
// são rejeitados aqui, antes de qualquer handler tocar no estado.
func decodePayload(data json.RawMessage, dst interface{ validate() error }) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	return dst.validate()
}
