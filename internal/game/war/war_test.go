package war

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/addlightness/whop-war-websocket/internal/game/card"
)

func cards(t *testing.T, names ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, 0, len(names))
	for _, name := range names {
		c, err := card.Parse(name)
		if err != nil {
			t.Fatalf("bad test card %q: %v", name, err)
		}
		out = append(out, c)
	}
	return out
}

// riggedGame monta uma partida em andamento com decks controlados,
// Alice (player1) na vez.
func riggedGame(t *testing.T, p1Deck, p2Deck []string) *Game {
	t.Helper()
	return &Game{
		ID:          "game-under-test",
		Player1:     Seat{ID: "p1", Name: "Alice"},
		Player2:     Seat{ID: "p2", Name: "Bob"},
		Player1Deck: cards(t, p1Deck...),
		Player2Deck: cards(t, p2Deck...),
		Phase:       PhasePlaying,
		Current:     RolePlayer1,
	}
}

func deckNames(deck []card.Card) []string {
	names := make([]string, len(deck))
	for i, c := range deck {
		names[i] = c.Name
	}
	return names
}

func assertDeck(t *testing.T, label string, deck []card.Card, want ...string) {
	t.Helper()
	got := deckNames(deck)
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", label, got, want)
		}
	}
}

func TestNewGameDeals(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	deck := card.Shuffle(card.NewOrderedDeck(), r)
	g := NewGame("g1", Seat{ID: "a", Name: "Alice"}, Seat{ID: "b", Name: "Bob"}, deck)

	if len(g.Player1Deck) != 26 || len(g.Player2Deck) != 26 {
		t.Fatalf("deal = %d/%d, want 26/26", len(g.Player1Deck), len(g.Player2Deck))
	}
	if g.Phase != PhasePlaying {
		t.Errorf("phase = %s, want playing", g.Phase)
	}
	if g.Current != RolePlayer1 {
		t.Errorf("turn owner = %s, want player1", g.Current)
	}
	if g.Winner != "" {
		t.Errorf("winner = %s, want none", g.Winner)
	}
	if g.CardsInPlay() != card.DeckSize {
		t.Errorf("cards in play = %d, want 52", g.CardsInPlay())
	}
	if g.Message != "Game started! Player 1 goes first." {
		t.Errorf("message = %q", g.Message)
	}
}

func TestDrawHigherRankTakesBothCards(t *testing.T) {
	g := riggedGame(t,
		[]string{"king_of_spades", "3_of_clubs"},
		[]string{"2_of_hearts"},
	)
	before := g.CardsInPlay()

	g.ProcessAction("p1", ActionDrawCard)

	// O vencedor perde a carta do topo mas recupera as duas no fim do deck:
	// ganho líquido de 1 carta; o perdedor só perde a sua.
	assertDeck(t, "player1 deck", g.Player1Deck, "3_of_clubs", "king_of_spades", "2_of_hearts")
	assertDeck(t, "player2 deck", g.Player2Deck)

	if g.Phase != PhasePlaying {
		t.Errorf("phase = %s, want playing", g.Phase)
	}
	if g.Current != RolePlayer1 {
		t.Errorf("turn owner = %s, want player1 (winner draws next)", g.Current)
	}
	if g.Player1Card == nil || g.Player1Card.Name != "king_of_spades" {
		t.Errorf("player1 face-up = %v, want king_of_spades", g.Player1Card)
	}
	if g.Player2Card == nil || g.Player2Card.Name != "2_of_hearts" {
		t.Errorf("player2 face-up = %v, want 2_of_hearts", g.Player2Card)
	}
	if want := "Alice wins! King Of Spades beats 2 Of Hearts"; g.Message != want {
		t.Errorf("message = %q, want %q", g.Message, want)
	}
	if g.CardsInPlay() != before {
		t.Errorf("cards in play changed: %d -> %d", before, g.CardsInPlay())
	}
}

func TestDrawLowerRankPassesTurn(t *testing.T) {
	g := riggedGame(t,
		[]string{"2_of_hearts", "8_of_clubs"},
		[]string{"king_of_spades"},
	)

	g.ProcessAction("p1", ActionDrawCard)

	assertDeck(t, "player1 deck", g.Player1Deck, "8_of_clubs")
	assertDeck(t, "player2 deck", g.Player2Deck, "2_of_hearts", "king_of_spades")

	if g.Current != RolePlayer2 {
		t.Errorf("turn owner = %s, want player2", g.Current)
	}
	if want := "Bob wins! King Of Spades beats 2 Of Hearts"; g.Message != want {
		t.Errorf("message = %q, want %q", g.Message, want)
	}
}

func TestEqualRankTriggersWar(t *testing.T) {
	g := riggedGame(t,
		[]string{"king_of_spades", "2_of_clubs", "3_of_clubs", "4_of_clubs", "9_of_clubs"},
		[]string{"king_of_hearts", "2_of_diamonds", "3_of_diamonds", "4_of_diamonds", "9_of_diamonds"},
	)
	before := g.CardsInPlay()

	g.ProcessAction("p1", ActionDrawCard)

	if g.Phase != PhaseWar {
		t.Fatalf("phase = %s, want war", g.Phase)
	}
	if g.Winner != "" {
		t.Fatalf("tie declared a winner: %s", g.Winner)
	}
	// Quem agiu continua na vez e dispara a resolução.
	if g.Current != RolePlayer1 {
		t.Errorf("turn owner = %s, want player1 (acting side)", g.Current)
	}
	assertDeck(t, "player1 war pile", g.Player1WarCards, "2_of_clubs", "3_of_clubs", "4_of_clubs")
	assertDeck(t, "player2 war pile", g.Player2WarCards, "2_of_diamonds", "3_of_diamonds", "4_of_diamonds")
	assertDeck(t, "player1 deck", g.Player1Deck, "9_of_clubs")
	assertDeck(t, "player2 deck", g.Player2Deck, "9_of_diamonds")

	if want := "WAR! Both cards are Kings. Click to resolve the war!"; g.Message != want {
		t.Errorf("message = %q, want %q", g.Message, want)
	}
	if g.CardsInPlay() != before {
		t.Errorf("cards in play changed: %d -> %d", before, g.CardsInPlay())
	}
}

func TestWarCommitsOnlyRemainingCards(t *testing.T) {
	// O jogador 1 só tem 1 carta depois do empate: a guerra compromete o
	// que existe, e deck e pilha não podem desincronizar.
	g := riggedGame(t,
		[]string{"5_of_hearts", "9_of_clubs"},
		[]string{"5_of_spades", "2_of_hearts", "3_of_hearts", "4_of_hearts", "6_of_hearts"},
	)
	before := g.CardsInPlay()

	g.ProcessAction("p1", ActionDrawCard)

	if g.Phase != PhaseWar {
		t.Fatalf("phase = %s, want war", g.Phase)
	}
	assertDeck(t, "player1 war pile", g.Player1WarCards, "9_of_clubs")
	assertDeck(t, "player1 deck", g.Player1Deck)
	assertDeck(t, "player2 war pile", g.Player2WarCards, "2_of_hearts", "3_of_hearts", "4_of_hearts")
	assertDeck(t, "player2 deck", g.Player2Deck, "6_of_hearts")

	if g.CardsInPlay() != before {
		t.Errorf("cards in play changed: %d -> %d", before, g.CardsInPlay())
	}
}

func TestResolveWarWinnerTakesPool(t *testing.T) {
	g := riggedGame(t,
		[]string{"5_of_hearts", "2_of_clubs", "3_of_clubs", "4_of_clubs", "king_of_spades"},
		[]string{"5_of_spades", "2_of_diamonds", "3_of_diamonds", "4_of_diamonds", "9_of_diamonds"},
	)
	before := g.CardsInPlay()

	g.ProcessAction("p1", ActionDrawCard) // empate nos 5, guerra aberta
	g.ProcessAction("p1", ActionDrawCard) // king vs 9 decide

	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", g.Phase)
	}
	// Pool completo: 2 viradas + 3+3 das pilhas + as 2 compradas.
	if len(g.Player1Deck) != 10 {
		t.Fatalf("winner deck = %v, want all 10 cards", deckNames(g.Player1Deck))
	}
	assertDeck(t, "player2 deck", g.Player2Deck)
	if len(g.Player1WarCards) != 0 || len(g.Player2WarCards) != 0 {
		t.Errorf("war piles not reset: %d/%d", len(g.Player1WarCards), len(g.Player2WarCards))
	}
	if g.Current != RolePlayer1 {
		t.Errorf("turn owner = %s, want player1 (war winner)", g.Current)
	}
	if want := "Alice wins the war! King Of Spades beats 9 Of Diamonds"; g.Message != want {
		t.Errorf("message = %q, want %q", g.Message, want)
	}
	if g.CardsInPlay() != before {
		t.Errorf("cards in play changed: %d -> %d", before, g.CardsInPlay())
	}
}

func TestResolveWarTieEscalates(t *testing.T) {
	g := riggedGame(t,
		[]string{"5_of_hearts", "2_of_clubs", "3_of_clubs", "4_of_clubs", "9_of_hearts", "6_of_clubs", "7_of_clubs", "8_of_clubs", "king_of_spades"},
		[]string{"5_of_spades", "2_of_diamonds", "3_of_diamonds", "4_of_diamonds", "9_of_diamonds", "6_of_diamonds", "7_of_diamonds", "8_of_diamonds", "queen_of_hearts"},
	)
	before := g.CardsInPlay()

	g.ProcessAction("p1", ActionDrawCard) // 5 vs 5: guerra
	g.ProcessAction("p1", ActionDrawCard) // 9 vs 9: escala

	if g.Phase != PhaseWar {
		t.Fatalf("phase = %s, want war after escalation", g.Phase)
	}
	// A virada anterior entra na frente da pilha, seguida do que já estava
	// lá e das até 3 cartas novas.
	assertDeck(t, "player1 war pile", g.Player1WarCards,
		"5_of_hearts", "2_of_clubs", "3_of_clubs", "4_of_clubs", "6_of_clubs", "7_of_clubs", "8_of_clubs")
	assertDeck(t, "player2 war pile", g.Player2WarCards,
		"5_of_spades", "2_of_diamonds", "3_of_diamonds", "4_of_diamonds", "6_of_diamonds", "7_of_diamonds", "8_of_diamonds")

	if g.Player1Card == nil || g.Player1Card.Name != "9_of_hearts" {
		t.Errorf("player1 face-up = %v, want 9_of_hearts", g.Player1Card)
	}
	if g.Current != RolePlayer1 {
		t.Errorf("turn owner = %s, want player1 (acting side)", g.Current)
	}
	if !strings.HasPrefix(g.Message, "Another WAR! Both cards are 9s.") {
		t.Errorf("message = %q", g.Message)
	}
	if g.CardsInPlay() != before {
		t.Errorf("cards in play changed: %d -> %d", before, g.CardsInPlay())
	}

	// A escalada resolve no king vs queen: a Alice leva tudo.
	g.ProcessAction("p1", ActionDrawCard)
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", g.Phase)
	}
	if len(g.Player1Deck) != 18 || len(g.Player2Deck) != 0 {
		t.Fatalf("decks = %d/%d, want 18/0", len(g.Player1Deck), len(g.Player2Deck))
	}
	if g.CardsInPlay() != before {
		t.Errorf("cards in play changed: %d -> %d", before, g.CardsInPlay())
	}
}

func TestEscalationCommitsOnlyRemainingCards(t *testing.T) {
	// Na escalada o jogador 1 só tem 1 carta no deck: o corte min(3, restante)
	// vale também aqui, e a contagem total não pode vazar.
	g := riggedGame(t,
		[]string{"5_of_hearts", "2_of_clubs", "3_of_clubs", "4_of_clubs", "9_of_hearts", "king_of_hearts"},
		[]string{"5_of_spades", "2_of_diamonds", "3_of_diamonds", "4_of_diamonds", "9_of_diamonds", "6_of_diamonds", "7_of_diamonds", "8_of_diamonds", "queen_of_diamonds"},
	)
	before := g.CardsInPlay()

	g.ProcessAction("p1", ActionDrawCard) // 5 vs 5: guerra
	g.ProcessAction("p1", ActionDrawCard) // 9 vs 9: escala

	if g.Phase != PhaseWar {
		t.Fatalf("phase = %s, want war after escalation", g.Phase)
	}
	assertDeck(t, "player1 war pile", g.Player1WarCards,
		"5_of_hearts", "2_of_clubs", "3_of_clubs", "4_of_clubs", "king_of_hearts")
	assertDeck(t, "player1 deck", g.Player1Deck)
	assertDeck(t, "player2 war pile", g.Player2WarCards,
		"5_of_spades", "2_of_diamonds", "3_of_diamonds", "4_of_diamonds", "6_of_diamonds", "7_of_diamonds", "8_of_diamonds")
	assertDeck(t, "player2 deck", g.Player2Deck, "queen_of_diamonds")

	if g.CardsInPlay() != before {
		t.Errorf("cards in play changed: %d -> %d", before, g.CardsInPlay())
	}
}

func TestDrawWithEmptyDeckEndsGame(t *testing.T) {
	tests := []struct {
		name       string
		p1Deck     []string
		p2Deck     []string
		wantWinner Role
	}{
		{name: "acting side out of cards", p1Deck: nil, p2Deck: []string{"2_of_hearts"}, wantWinner: RolePlayer2},
		{name: "opponent out of cards", p1Deck: []string{"2_of_hearts"}, p2Deck: nil, wantWinner: RolePlayer1},
		{name: "both out of cards", p1Deck: nil, p2Deck: nil, wantWinner: RolePlayer2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := riggedGame(t, tt.p1Deck, tt.p2Deck)
			g.ProcessAction("p1", ActionDrawCard)

			if g.Phase != PhaseFinished {
				t.Fatalf("phase = %s, want finished", g.Phase)
			}
			if g.Winner != tt.wantWinner {
				t.Fatalf("winner = %s, want %s", g.Winner, tt.wantWinner)
			}
			// A narração nomeia o lado que agiu, vencedor ou não.
			if !strings.HasPrefix(g.Message, "Alice wins!") {
				t.Errorf("message = %q, want it to name the acting side", g.Message)
			}
		})
	}
}

func TestWarDeckExhaustionEndsGame(t *testing.T) {
	g := riggedGame(t,
		[]string{"5_of_hearts"},
		[]string{"5_of_spades", "2_of_hearts"},
	)

	g.ProcessAction("p1", ActionDrawCard) // guerra: p1 fica sem cartas
	if g.Phase != PhaseWar {
		t.Fatalf("phase = %s, want war", g.Phase)
	}

	g.ProcessAction("p1", ActionDrawCard) // p1 não tem carta para resolver

	if g.Phase != PhaseFinished {
		t.Fatalf("phase = %s, want finished", g.Phase)
	}
	// Vence o lado com pelo menos uma carta restante.
	if g.Winner != RolePlayer2 {
		t.Fatalf("winner = %s, want player2", g.Winner)
	}
}

func TestNonTurnActionIsNoOp(t *testing.T) {
	g := riggedGame(t,
		[]string{"king_of_spades"},
		[]string{"2_of_hearts"},
	)
	beforeMessage := g.Message
	beforeLen := len(g.Player1Deck)

	g.ProcessAction("p2", ActionDrawCard) // vez é do player1

	if g.Phase != PhasePlaying || len(g.Player1Deck) != beforeLen || g.Message != beforeMessage {
		t.Fatal("action out of turn mutated the match")
	}
	if g.Player1Card != nil || g.Player2Card != nil {
		t.Fatal("action out of turn drew cards")
	}
}

func TestFinishedGameIgnoresActions(t *testing.T) {
	g := riggedGame(t, nil, []string{"2_of_hearts"})
	g.ProcessAction("p1", ActionDrawCard)
	if g.Phase != PhaseFinished {
		t.Fatalf("setup failed: phase = %s", g.Phase)
	}

	winner, message := g.Winner, g.Message
	g.ProcessAction("p2", ActionDrawCard)

	if g.Winner != winner || g.Message != message || len(g.Player2Deck) != 1 {
		t.Fatal("finished match mutated by a late action")
	}
}

func TestStrangerActionIsIgnored(t *testing.T) {
	g := riggedGame(t, []string{"king_of_spades"}, []string{"2_of_hearts"})
	g.ProcessAction("somebody-else", ActionDrawCard)

	if g.Player1Card != nil || len(g.Player1Deck) != 1 {
		t.Fatal("action from a non-participant mutated the match")
	}
}

func TestWaitingGameIgnoresActions(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	deck := card.Shuffle(card.NewOrderedDeck(), r)
	g := NewWaitingGame("g1", Seat{ID: "a", Name: "Alice"}, deck, "ABC123")

	if g.Phase != PhaseWaiting {
		t.Fatalf("phase = %s, want waiting", g.Phase)
	}
	g.ProcessAction("a", ActionDrawCard)
	if g.Phase != PhaseWaiting || len(g.Player1Deck) != 26 {
		t.Fatal("waiting match processed an action")
	}

	g.Start(Seat{ID: "b", Name: "Bob"})
	if g.Phase != PhasePlaying || g.Player2.ID != "b" {
		t.Fatalf("start failed: phase=%s player2=%s", g.Phase, g.Player2.ID)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := riggedGame(t,
		[]string{"king_of_spades", "3_of_clubs"},
		[]string{"2_of_hearts", "4_of_clubs"},
	)
	g.ProcessAction("p1", ActionDrawCard)

	snap := g.Snapshot()
	if snap.Player1Deck != 3 || snap.Player2Deck != 1 {
		t.Fatalf("snapshot deck counts = %d/%d, want 3/1", snap.Player1Deck, snap.Player2Deck)
	}
	if snap.Winner != nil {
		t.Errorf("snapshot winner = %v, want nil", *snap.Winner)
	}
	if snap.Player1WarCards == nil || snap.Player2WarCards == nil {
		t.Error("war piles must marshal as [], not null")
	}

	// Mutar a partida depois não pode alcançar o snapshot.
	faceUp := snap.Player1Card.Name
	g.ProcessAction("p1", ActionDrawCard)
	if snap.Player1Card.Name != faceUp {
		t.Fatal("snapshot shares face-up card with the live match")
	}
	if snap.Player1Deck == len(g.Player1Deck) && snap.GameStatus == g.Phase && snap.Message == g.Message {
		t.Fatal("snapshot appears to track the live match")
	}
}
