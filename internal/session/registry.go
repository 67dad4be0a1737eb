package session

import (
	"github.com/addlightness/whop-war-websocket/internal/game/war"
	"github.com/addlightness/whop-war-websocket/internal/session/message"
)

// SessionRegistry concentra todo o estado mutável do processo: partidas
// ativas, fila de espera, códigos de convite e conexões vivas. É um objeto
// único, de propriedade do GameHandler, mutado exclusivamente na goroutine do
// Hub — por isso não há lock aqui dentro. Invariante: um playerId aparece no
// máximo em um lugar entre {fila, partida ativa}.
type SessionRegistry struct {
	games     map[string]*war.Game    // gameId -> partida
	queue     []string                // FIFO de playerIds aguardando oponente
	joinCodes map[string]string       // código de convite -> gameId
	peers     map[string]message.Peer // playerId -> conexão viva
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		games:     make(map[string]*war.Game),
		joinCodes: make(map[string]string),
		peers:     make(map[string]message.Peer),
	}
}

// --- Conexões ---

func (r *SessionRegistry) BindPeer(playerID string, peer message.Peer) {
	r.peers[playerID] = peer
}

func (r *SessionRegistry) PeerFor(playerID string) (message.Peer, bool) {
	peer, ok := r.peers[playerID]
	return peer, ok
}

func (r *SessionRegistry) RemovePeer(playerID string) {
	delete(r.peers, playerID)
}

// --- Fila de espera ---

// Enqueue coloca o jogador no fim da fila.
func (r *SessionRegistry) Enqueue(playerID string) {
	r.queue = append(r.queue, playerID)
}

// PopWaiting remove e devolve o jogador que espera há mais tempo.
func (r *SessionRegistry) PopWaiting() (string, bool) {
	if len(r.queue) == 0 {
		return "", false
	}
	playerID := r.queue[0]
	r.queue = r.queue[1:]
	return playerID, true
}

// RemoveFromQueue tira o jogador da fila, onde quer que esteja. No-op
// idempotente se ele não estiver lá.
func (r *SessionRegistry) RemoveFromQueue(playerID string) {
	for i, id := range r.queue {
		if id == playerID {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			return
		}
	}
}

func (r *SessionRegistry) QueueLen() int { return len(r.queue) }

// --- Partidas e códigos de convite ---

// AddGame registra a partida e, se ela tiver código de convite, reserva o
// código enquanto a partida existir.
func (r *SessionRegistry) AddGame(g *war.Game) {
	r.games[g.ID] = g
	if g.JoinCode != "" {
		r.joinCodes[g.JoinCode] = g.ID
	}
}

// GameByCode resolve um código de convite para a partida dona dele.
func (r *SessionRegistry) GameByCode(code string) (*war.Game, bool) {
	gameID, ok := r.joinCodes[code]
	if !ok {
		return nil, false
	}
	g, ok := r.games[gameID]
	return g, ok
}

// CodeInUse informa se um código de convite está reservado.
func (r *SessionRegistry) CodeInUse(code string) bool {
	_, ok := r.joinCodes[code]
	return ok
}

// GameOf encontra a partida que contém o jogador. Varredura linear: um
// jogador participa de no máximo uma partida e o mapa é pequeno.
func (r *SessionRegistry) GameOf(playerID string) (*war.Game, bool) {
	for _, g := range r.games {
		if g.HasPlayer(playerID) {
			return g, true
		}
	}
	return nil, false
}

// RemoveGame apaga a partida e libera o código de convite dela.
func (r *SessionRegistry) RemoveGame(g *war.Game) {
	delete(r.games, g.ID)
	if g.JoinCode != "" {
		delete(r.joinCodes, g.JoinCode)
	}
}

func (r *SessionRegistry) GameCount() int { return len(r.games) }
