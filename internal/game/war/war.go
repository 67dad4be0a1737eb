package war

import (
	"fmt"

	"github.com/addlightness/whop-war-websocket/internal/game/card"
)

// Phase é o estado da máquina de estados de uma partida.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"  // criada por código, aguardando o segundo jogador
	PhasePlaying  Phase = "playing"  // rodadas normais de compra
	PhaseWar      Phase = "war"      // empate em aberto, pilhas de guerra acumulando
	PhaseFinished Phase = "finished" // terminal
)

// Role identifica um dos dois assentos da partida.
type Role string

const (
	RolePlayer1 Role = "player1"
	RolePlayer2 Role = "player2"
)

// ActionDrawCard é a única ação que o protocolo aceita hoje.
const ActionDrawCard = "draw_card"

// warCommitLimit é quantas cartas cada lado compromete por rodada de guerra.
// O corte real é min(warCommitLimit, cartas restantes): o peek e a remoção
// usam o MESMO limite, para o deck e a pilha nunca desincronizarem.
const warCommitLimit = 3

// Seat é a identidade de um jogador dentro da partida. A conexão fica fora
// daqui de propósito: o estado do jogo não conhece a rede.
type Seat struct {
	ID   string
	Name string
}

// Game é o estado autoritativo de uma partida de War. Todas as transições
// acontecem in place, sempre na goroutine única do Hub; quem precisa do
// estado para broadcast usa Snapshot().
type Game struct {
	ID       string
	JoinCode string

	Player1 Seat
	Player2 Seat

	Player1Deck []card.Card
	Player2Deck []card.Card

	// Últimas cartas viradas de cada lado. Nulas até a primeira compra.
	Player1Card *card.Card
	Player2Card *card.Card

	// Cartas comprometidas em guerras ainda não resolvidas.
	Player1WarCards []card.Card
	Player2WarCards []card.Card

	Phase   Phase
	Current Role // de quem é a vez (turn owner)
	Winner  Role // vazio enquanto a partida não termina
	Message string
}

// NewGame cria uma partida já em andamento entre dois jogadores pareados pela
// fila. O baralho recebido deve estar embaralhado; a distribuição é 26/26.
func NewGame(id string, player1, player2 Seat, deck []card.Card) *Game {
	p1Deck, p2Deck := card.Deal(deck)
	return &Game{
		ID:          id,
		Player1:     player1,
		Player2:     player2,
		Player1Deck: p1Deck,
		Player2Deck: p2Deck,
		Phase:       PhasePlaying,
		Current:     RolePlayer1,
		Message:     "Game started! Player 1 goes first.",
	}
}

// NewWaitingGame cria uma partida por código de convite. O criador ocupa os
// dois assentos como placeholder até alguém entrar; nenhuma ação é processada
// na fase waiting, então o placeholder nunca joga contra si mesmo.
func NewWaitingGame(id string, creator Seat, deck []card.Card, joinCode string) *Game {
	g := NewGame(id, creator, creator, deck)
	g.JoinCode = joinCode
	g.Phase = PhaseWaiting
	g.Message = fmt.Sprintf("Game created! Share code: %s", joinCode)
	return g
}

// Start preenche o segundo assento e coloca a partida em andamento.
func (g *Game) Start(player2 Seat) {
	if g.Phase != PhaseWaiting {
		return
	}
	g.Player2 = player2
	g.Phase = PhasePlaying
	g.Message = "Game started! Player 1 goes first."
}

// HasPlayer informa se o id ocupa algum assento da partida.
func (g *Game) HasPlayer(playerID string) bool {
	return g.Player1.ID == playerID || g.Player2.ID == playerID
}

// Opponent devolve o assento oposto ao do id recebido.
func (g *Game) Opponent(playerID string) Seat {
	if g.Player1.ID == playerID {
		return g.Player2
	}
	return g.Player1
}

// CardsInPlay soma todas as cartas da partida: decks, pilhas de guerra e
// cartas viradas. Fora do estado finished o total é sempre 52.
func (g *Game) CardsInPlay() int {
	total := len(g.Player1Deck) + len(g.Player2Deck) +
		len(g.Player1WarCards) + len(g.Player2WarCards)
	if g.Player1Card != nil {
		total++
	}
	if g.Player2Card != nil {
		total++
	}
	return total
}

// ProcessAction aplica uma ação de jogador ao estado. Ações fora de vez, em
// partida terminada ou de quem não está na partida são no-ops: o chamador
// ainda faz broadcast do estado inalterado, como o protocolo exige.
func (g *Game) ProcessAction(playerID, action string) {
	if g.Phase == PhaseFinished || action != ActionDrawCard {
		return
	}

	// Toda a resolução é expressa em termos do papel de quem agiu
	// (isPlayer1), não de um rótulo fixo. No placeholder de waiting os dois
	// assentos têm o mesmo id e player1 tem precedência.
	isPlayer1 := playerID == g.Player1.ID
	if !isPlayer1 && playerID != g.Player2.ID {
		return
	}
	if g.Current != roleOf(isPlayer1) {
		return
	}

	switch g.Phase {
	case PhasePlaying:
		g.resolveDraw(isPlayer1)
	case PhaseWar:
		g.resolveWar(isPlayer1)
	}
}

// resolveDraw trata uma compra na fase playing: cada lado vira a carta do
// topo e o rank maior leva as duas para o fim do seu deck.
func (g *Game) resolveDraw(isPlayer1 bool) {
	playerDeck, opponentDeck := g.sideDecks(isPlayer1)

	if len(*playerDeck) == 0 || len(*opponentDeck) == 0 {
		g.Phase = PhaseFinished
		if len(*playerDeck) > 0 {
			g.Winner = roleOf(isPlayer1)
		} else {
			g.Winner = roleOf(!isPlayer1)
		}
		// A narração nomeia o lado que agiu, mesmo quando o vencedor é o
		// outro; os clientes exibem esse texto como está.
		g.Message = fmt.Sprintf("%s wins!", g.sideName(isPlayer1))
		return
	}

	playerCard := (*playerDeck)[0]
	opponentCard := (*opponentDeck)[0]
	*playerDeck = (*playerDeck)[1:]
	*opponentDeck = (*opponentDeck)[1:]

	g.setFaceUp(isPlayer1, playerCard, opponentCard)

	switch {
	case playerCard.Rank > opponentCard.Rank:
		*playerDeck = append(*playerDeck, playerCard, opponentCard)
		g.Current = roleOf(isPlayer1)
		g.Message = fmt.Sprintf("%s wins! %s beats %s",
			g.sideName(isPlayer1), card.FormatName(playerCard.Name), card.FormatName(opponentCard.Name))

	case opponentCard.Rank > playerCard.Rank:
		*opponentDeck = append(*opponentDeck, playerCard, opponentCard)
		g.Current = roleOf(!isPlayer1)
		g.Message = fmt.Sprintf("%s wins! %s beats %s",
			g.sideName(!isPlayer1), card.FormatName(opponentCard.Name), card.FormatName(playerCard.Name))

	default:
		// Empate: guerra. Quem agiu continua como turn owner e deve
		// disparar a resolução.
		g.commitWarCards(isPlayer1)
		g.Phase = PhaseWar
		g.Current = roleOf(isPlayer1)
		g.Message = fmt.Sprintf("WAR! Both cards are %s. Click to resolve the war!",
			card.FormatRankPlural(playerCard.Name))
	}
}

// resolveWar trata uma compra na fase war: as duas novas cartas decidem quem
// leva o pool inteiro (viradas + pilhas + novas), ou a guerra escala.
func (g *Game) resolveWar(isPlayer1 bool) {
	playerDeck, opponentDeck := g.sideDecks(isPlayer1)

	if len(*playerDeck) < 1 || len(*opponentDeck) < 1 {
		// Os dois caminhos de exaustão usam a mesma regra: vence o lado
		// que ainda tem pelo menos uma carta.
		g.Phase = PhaseFinished
		if len(*playerDeck) >= 1 {
			g.Winner = roleOf(isPlayer1)
		} else {
			g.Winner = roleOf(!isPlayer1)
		}
		g.Message = fmt.Sprintf("%s wins! Opponent ran out of cards during war!", g.sideName(isPlayer1))
		return
	}

	playerWarCard := (*playerDeck)[0]
	opponentWarCard := (*opponentDeck)[0]
	*playerDeck = (*playerDeck)[1:]
	*opponentDeck = (*opponentDeck)[1:]

	switch {
	case playerWarCard.Rank > opponentWarCard.Rank:
		*playerDeck = append(*playerDeck, g.warPool(playerWarCard, opponentWarCard)...)
		g.finishWarRound(isPlayer1, playerWarCard, opponentWarCard, true)

	case opponentWarCard.Rank > playerWarCard.Rank:
		*opponentDeck = append(*opponentDeck, g.warPool(playerWarCard, opponentWarCard)...)
		g.finishWarRound(isPlayer1, playerWarCard, opponentWarCard, false)

	default:
		g.escalateWar(isPlayer1, playerWarCard, opponentWarCard)
	}
}

// warPool monta o prêmio de uma guerra resolvida: as cartas viradas dos dois
// lados, as duas pilhas acumuladas e as duas cartas recém compradas, nesta
// ordem. Na fase war as viradas nunca são nulas.
func (g *Game) warPool(playerWarCard, opponentWarCard card.Card) []card.Card {
	pool := make([]card.Card, 0, 4+len(g.Player1WarCards)+len(g.Player2WarCards))
	pool = append(pool, *g.Player1Card, *g.Player2Card)
	pool = append(pool, g.Player1WarCards...)
	pool = append(pool, g.Player2WarCards...)
	pool = append(pool, playerWarCard, opponentWarCard)
	return pool
}

// finishWarRound fecha uma guerra decidida: pilhas zeradas, fase de volta a
// playing e a vez passa para quem venceu.
func (g *Game) finishWarRound(isPlayer1 bool, playerWarCard, opponentWarCard card.Card, actorWon bool) {
	g.setFaceUp(isPlayer1, playerWarCard, opponentWarCard)
	g.Player1WarCards = nil
	g.Player2WarCards = nil
	g.Phase = PhasePlaying

	winCard, loseCard := playerWarCard, opponentWarCard
	winnerIsPlayer1 := isPlayer1
	if !actorWon {
		winCard, loseCard = opponentWarCard, playerWarCard
		winnerIsPlayer1 = !isPlayer1
	}
	g.Current = roleOf(winnerIsPlayer1)
	g.Message = fmt.Sprintf("%s wins the war! %s beats %s",
		g.sideName(winnerIsPlayer1), card.FormatName(winCard.Name), card.FormatName(loseCard.Name))
}

// escalateWar trata empate dentro da guerra: a carta virada anterior de cada
// lado entra na frente da sua pilha, seguida do que já estava lá e de até 3
// cartas novas do deck. A vez continua com quem agiu.
func (g *Game) escalateWar(isPlayer1 bool, playerWarCard, opponentWarCard card.Card) {
	playerDeck, opponentDeck := g.sideDecks(isPlayer1)
	playerPile, opponentPile := g.sidePiles(isPlayer1)
	prevPlayerCard, prevOpponentCard := g.faceUp(isPlayer1)

	take := min(warCommitLimit, len(*playerDeck))
	grown := append([]card.Card{prevPlayerCard}, *playerPile...)
	grown = append(grown, (*playerDeck)[:take]...)
	*playerDeck = (*playerDeck)[take:]
	*playerPile = grown

	take = min(warCommitLimit, len(*opponentDeck))
	grown = append([]card.Card{prevOpponentCard}, *opponentPile...)
	grown = append(grown, (*opponentDeck)[:take]...)
	*opponentDeck = (*opponentDeck)[take:]
	*opponentPile = grown

	g.setFaceUp(isPlayer1, playerWarCard, opponentWarCard)
	g.Current = roleOf(isPlayer1)
	g.Message = fmt.Sprintf("Another WAR! Both cards are %s. Click to resolve the war.",
		card.FormatRankPlural(playerWarCard.Name))
}

// commitWarCards move até 3 cartas do topo de cada deck para a pilha de
// guerra do seu lado, ao abrir a primeira rodada de uma guerra.
func (g *Game) commitWarCards(isPlayer1 bool) {
	playerDeck, opponentDeck := g.sideDecks(isPlayer1)
	playerPile, opponentPile := g.sidePiles(isPlayer1)

	take := min(warCommitLimit, len(*playerDeck))
	*playerPile = append(*playerPile, (*playerDeck)[:take]...)
	*playerDeck = (*playerDeck)[take:]

	take = min(warCommitLimit, len(*opponentDeck))
	*opponentPile = append(*opponentPile, (*opponentDeck)[:take]...)
	*opponentDeck = (*opponentDeck)[take:]
}

// --- Helpers de orientação ator-relativo ---

func (g *Game) sideDecks(isPlayer1 bool) (player, opponent *[]card.Card) {
	if isPlayer1 {
		return &g.Player1Deck, &g.Player2Deck
	}
	return &g.Player2Deck, &g.Player1Deck
}

func (g *Game) sidePiles(isPlayer1 bool) (player, opponent *[]card.Card) {
	if isPlayer1 {
		return &g.Player1WarCards, &g.Player2WarCards
	}
	return &g.Player2WarCards, &g.Player1WarCards
}

func (g *Game) faceUp(isPlayer1 bool) (player, opponent card.Card) {
	if isPlayer1 {
		return *g.Player1Card, *g.Player2Card
	}
	return *g.Player2Card, *g.Player1Card
}

func (g *Game) setFaceUp(isPlayer1 bool, playerCard, opponentCard card.Card) {
	if isPlayer1 {
		g.Player1Card, g.Player2Card = &playerCard, &opponentCard
	} else {
		g.Player1Card, g.Player2Card = &opponentCard, &playerCard
	}
}

func (g *Game) sideName(isPlayer1 bool) string {
	if isPlayer1 {
		return g.Player1.Name
	}
	return g.Player2.Name
}

func roleOf(isPlayer1 bool) Role {
	if isPlayer1 {
		return RolePlayer1
	}
	return RolePlayer2
}
