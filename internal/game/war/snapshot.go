package war

import (
	"github.com/addlightness/whop-war-websocket/internal/game/card"
)

// Snapshot é a projeção imutável de uma partida enviada aos dois clientes
// depois de cada transição. Os decks aparecem só como contagem: o conteúdo
// restante do oponente nunca vaza pelo broadcast. As pilhas de guerra, que
// já estão "na mesa", vão completas.
type Snapshot struct {
	GameID          string      `json:"gameId"`
	Player1Deck     int         `json:"player1Deck"`
	Player2Deck     int         `json:"player2Deck"`
	Player1Card     *card.Card  `json:"player1Card"`
	Player2Card     *card.Card  `json:"player2Card"`
	Player1WarCards []card.Card `json:"player1WarCards"`
	Player2WarCards []card.Card `json:"player2WarCards"`
	GameStatus      Phase       `json:"gameStatus"`
	CurrentPlayer   Role        `json:"currentPlayer"`
	Winner          *Role       `json:"winner"`
	Message         string      `json:"message"`
	Player1Name     string      `json:"player1Name"`
	Player2Name     string      `json:"player2Name"`
}

// Snapshot copia tudo por valor. O snapshot não compartilha nenhum slice ou
// ponteiro com a partida: mutações posteriores do estado não alcançam uma
// mensagem já enfileirada para envio.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		GameID:          g.ID,
		Player1Deck:     len(g.Player1Deck),
		Player2Deck:     len(g.Player2Deck),
		Player1WarCards: append([]card.Card{}, g.Player1WarCards...),
		Player2WarCards: append([]card.Card{}, g.Player2WarCards...),
		GameStatus:      g.Phase,
		CurrentPlayer:   g.Current,
		Message:         g.Message,
		Player1Name:     g.Player1.Name,
		Player2Name:     g.Player2.Name,
	}
	if g.Player1Card != nil {
		c := *g.Player1Card
		snap.Player1Card = &c
	}
	if g.Player2Card != nil {
		c := *g.Player2Card
		snap.Player2Card = &c
	}
	if g.Winner != "" {
		w := g.Winner
		snap.Winner = &w
	}
	return snap
}
