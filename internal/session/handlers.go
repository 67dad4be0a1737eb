package session

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/addlightness/whop-war-websocket/internal/game/card"
	"github.com/addlightness/whop-war-websocket/internal/game/war"
	"github.com/addlightness/whop-war-websocket/internal/session/message"
)

// handlePing responde pong só para o remetente. Keepalive de aplicação, sem
// efeito em estado nenhum.
func (h *GameHandler) handlePing(peer message.Peer, _ json.RawMessage) {
	message.TrySend(peer, message.CreatePong())
}

// handleJoinQueue pareia o requisitante com quem espera há mais tempo, ou o
// enfileira quando a fila está vazia.
func (h *GameHandler) handleJoinQueue(peer message.Peer, data json.RawMessage) {
	var p joinQueuePayload
	if err := decodePayload(data, &p); err != nil {
		h.sendError(peer, invalidMessageText)
		return
	}
	h.bind(peer, p.PlayerID)

	waitingID, ok := h.registry.PopWaiting()
	if !ok {
		h.registry.Enqueue(p.PlayerID)
		message.TrySend(peer, message.CreateQueueJoined("Waiting for opponent..."))
		log.Printf("[Session] Jogador %s entrou na fila (tamanho %d)", p.PlayerID, h.registry.QueueLen())
		return
	}

	if _, found := h.registry.PeerFor(waitingID); !found {
		// Entrada órfã na fila (a conexão sumiu sem cleanup). Descarta e
		// trata o requisitante como se a fila estivesse vazia.
		h.registry.Enqueue(p.PlayerID)
		message.TrySend(peer, message.CreateQueueJoined("Waiting for opponent..."))
		return
	}

	waitingName := p.WaitingPlayerName
	if waitingName == "" {
		waitingName = "Player"
	}

	deck := card.Shuffle(card.NewOrderedDeck(), h.rng)
	g := war.NewGame(uuid.NewString(),
		war.Seat{ID: waitingID, Name: waitingName},
		war.Seat{ID: p.PlayerID, Name: p.Name},
		deck)
	h.registry.AddGame(g)

	log.Printf("[Session] Partida %s formada pela fila: %s vs %s", g.ID, waitingID, p.PlayerID)
	h.events.MatchStarted(g)
	h.broadcastGame(g)
}

// handleCreateGame cria uma partida por código de convite. Só o criador
// recebe resposta; o broadcast acontece quando o segundo jogador entrar.
func (h *GameHandler) handleCreateGame(peer message.Peer, data json.RawMessage) {
	var p createGamePayload
	if err := decodePayload(data, &p); err != nil {
		h.sendError(peer, invalidMessageText)
		return
	}
	h.bind(peer, p.PlayerID)

	code := h.uniqueJoinCode()
	deck := card.Shuffle(card.NewOrderedDeck(), h.rng)
	g := war.NewWaitingGame(uuid.NewString(), war.Seat{ID: p.PlayerID, Name: p.Name}, deck, code)
	h.registry.AddGame(g)

	log.Printf("[Session] Partida %s criada por %s com código %s", g.ID, p.PlayerID, code)
	message.TrySend(peer, message.CreateGameCreated(code, g.ID))
}

// handleJoinGame resolve o código de convite e preenche o segundo assento.
func (h *GameHandler) handleJoinGame(peer message.Peer, data json.RawMessage) {
	var p joinGamePayload
	if err := decodePayload(data, &p); err != nil {
		h.sendError(peer, invalidMessageText)
		return
	}

	g, ok := h.registry.GameByCode(p.JoinCode)
	if !ok {
		h.sendError(peer, "Invalid join code.")
		return
	}
	if g.Phase != war.PhaseWaiting {
		h.sendError(peer, "Game is already full or in progress.")
		return
	}

	h.bind(peer, p.PlayerID)
	g.Start(war.Seat{ID: p.PlayerID, Name: p.Name})

	log.Printf("[Session] Jogador %s entrou na partida %s pelo código %s", p.PlayerID, g.ID, p.JoinCode)
	h.events.MatchStarted(g)
	h.broadcastGame(g)
}

// handleGameAction aplica a ação na partida do remetente e faz broadcast do
// resultado. Ação fora de vez ou em partida terminada não muda nada, mas o
// estado inalterado ainda é reenviado aos dois lados.
func (h *GameHandler) handleGameAction(peer message.Peer, data json.RawMessage) {
	playerID, identified := h.clients[peer]
	if !identified {
		// Ação de uma conexão que nunca se apresentou: ignorada.
		return
	}

	var p gameActionPayload
	if err := decodePayload(data, &p); err != nil {
		h.sendError(peer, invalidMessageText)
		return
	}

	g, ok := h.registry.GameOf(playerID)
	if !ok {
		return
	}

	wasFinished := g.Phase == war.PhaseFinished
	g.ProcessAction(playerID, p.Action)
	if !wasFinished && g.Phase == war.PhaseFinished {
		log.Printf("[Session] Partida %s terminou: vencedor %s", g.ID, g.Winner)
		h.events.MatchFinished(g)
	}

	h.broadcastGame(g)
}
