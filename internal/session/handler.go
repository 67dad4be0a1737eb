package session

import (
	"encoding/json"
	"log"
	"math/rand/v2"
	"time"

	"github.com/addlightness/whop-war-websocket/internal/game/war"
	"github.com/addlightness/whop-war-websocket/internal/network"
	"github.com/addlightness/whop-war-websocket/internal/services/events"
	"github.com/addlightness/whop-war-websocket/internal/session/message"
)

const invalidMessageText = "Invalid message format."

// commandFunc é a assinatura de todos os handlers de comando: recebem o peer
// remetente e o payload bruto daquele tipo de mensagem.
type commandFunc func(h *GameHandler, peer message.Peer, data json.RawMessage)

// GameHandler implementa network.EventHandler. É o dono do SessionRegistry e
// de toda a lógica de protocolo; o Hub chama tudo aqui de uma única
// goroutine, então nenhum campo precisa de lock.
type GameHandler struct {
	registry *SessionRegistry

	// Conexão -> playerId declarado na primeira mensagem identificada.
	// Necessário no disconnect, quando só temos o peer em mãos.
	clients map[message.Peer]string

	router map[string]commandFunc

	rng    *rand.Rand
	events *events.Publisher
}

// NewGameHandler monta o handler com um registro vazio. O publisher de
// eventos pode ser nulo; todos os métodos dele aceitam receiver nil.
func NewGameHandler(pub *events.Publisher) *GameHandler {
	seed := uint64(time.Now().UnixNano())
	h := &GameHandler{
		registry: NewSessionRegistry(),
		clients:  make(map[message.Peer]string),
		router:   make(map[string]commandFunc),
		rng:      rand.New(rand.NewPCG(seed, seed>>1)),
		events:   pub,
	}
	h.registerHandlers()
	return h
}

func (h *GameHandler) registerHandlers() {
	h.router["ping"] = (*GameHandler).handlePing
	h.router["join_queue"] = (*GameHandler).handleJoinQueue
	h.router["create_game"] = (*GameHandler).handleCreateGame
	h.router["join_game"] = (*GameHandler).handleJoinGame
	h.router["game_action"] = (*GameHandler).handleGameAction
}

// --- Implementação da interface network.EventHandler ---

func (h *GameHandler) OnConnect(c *network.Client) {
	log.Printf("[Session] Nova conexão WebSocket de %s", c.Conn().RemoteAddr())
}

func (h *GameHandler) OnDisconnect(c *network.Client) {
	h.disconnect(c)
}

func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	h.handleMessage(c, msg)
}

// handleMessage roteia pelo tipo da mensagem. Tipo desconhecido é ignorado
// em silêncio; só payload malformado de tipo conhecido gera resposta de erro.
func (h *GameHandler) handleMessage(peer message.Peer, msg network.Message) {
	command, found := h.router[msg.Type]
	if !found {
		return
	}
	command(h, peer, msg.Data)
}

// disconnect limpa tudo que pertencia à conexão: entrada na fila, mapa de
// conexões e a (no máximo uma) partida em que o jogador estava. O oponente
// é avisado em melhor esforço e a partida some, liberando o código de
// convite.
func (h *GameHandler) disconnect(peer message.Peer) {
	playerID, ok := h.clients[peer]
	delete(h.clients, peer)
	if !ok {
		// Conexão que nunca se identificou; nada para limpar.
		return
	}

	h.registry.RemoveFromQueue(playerID)
	h.registry.RemovePeer(playerID)

	g, ok := h.registry.GameOf(playerID)
	if !ok {
		log.Printf("[Session] Jogador %s desconectou fora de partida", playerID)
		return
	}

	opponent := g.Opponent(playerID)
	// Em partida waiting o criador ocupa os dois assentos; não há oponente
	// real para avisar.
	if opponent.ID != playerID {
		if oppPeer, found := h.registry.PeerFor(opponent.ID); found {
			message.TrySend(oppPeer, message.CreateOpponentDisconnected("Your opponent has disconnected."))
		}
	}

	h.registry.RemoveGame(g)
	h.events.MatchAbandoned(g)
	log.Printf("[Session] Jogador %s desconectou; partida %s encerrada", playerID, g.ID)
}

// bind associa a conexão ao playerId declarado e registra o peer para os
// broadcasts futuros.
func (h *GameHandler) bind(peer message.Peer, playerID string) {
	h.clients[peer] = playerID
	h.registry.BindPeer(playerID, peer)
}

// broadcastGame envia o snapshot da partida para os dois participantes.
// Fire-and-forget: peer ausente ou com buffer cheio só gera log.
func (h *GameHandler) broadcastGame(g *war.Game) {
	msg := message.CreateGameUpdate(g.Snapshot())
	h.sendToPlayer(g.Player1.ID, msg)
	if g.Player2.ID != g.Player1.ID {
		h.sendToPlayer(g.Player2.ID, msg)
	}
}

func (h *GameHandler) sendToPlayer(playerID string, msg network.Message) {
	peer, ok := h.registry.PeerFor(playerID)
	if !ok {
		return
	}
	if !message.TrySend(peer, msg) {
		log.Printf("[Session] Mensagem %s descartada: buffer cheio para %s", msg.Type, playerID)
	}
}

func (h *GameHandler) sendError(peer message.Peer, text string) {
	message.TrySend(peer, message.CreateError(text))
}

// Registry expõe o registro para os testes e para checagens de saúde.
func (h *GameHandler) Registry() *SessionRegistry { return h.registry }
