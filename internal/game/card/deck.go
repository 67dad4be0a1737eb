package card

import (
	"math/rand/v2"
)

// DeckSize é o tamanho do baralho completo: 13 ranks x 4 naipes.
const DeckSize = 52

// HalfDeckSize é a mão inicial de cada jogador após a distribuição.
const HalfDeckSize = DeckSize / 2

// NewOrderedDeck gera as 52 cartas na ordem canônica de geração
// (naipe maior, rank menor). Os nomes são sempre válidos por construção,
// então o erro de Parse é impossível aqui.
func NewOrderedDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range suits {
		for _, rank := range ranks {
			c, _ := Parse(rank + "_of_" + suit)
			deck = append(deck, c)
		}
	}
	return deck
}

// Shuffle devolve uma permutação uniforme (Fisher-Yates) do baralho recebido,
// sem modificar a entrada. Cada partida recebe um slice novo: o baralho de uma
// partida nunca pode compartilhar backing array com o de outra.
func Shuffle(deck []Card, r *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Deal divide um baralho embaralhado em duas metades de 26 cartas.
// As metades são cópias: um append na mão do jogador 1 não pode sobrescrever
// as cartas do jogador 2 no array original.
func Deal(deck []Card) (player1, player2 []Card) {
	player1 = make([]Card, HalfDeckSize)
	player2 = make([]Card, HalfDeckSize)
	copy(player1, deck[:HalfDeckSize])
	copy(player2, deck[HalfDeckSize:])
	return player1, player2
}
