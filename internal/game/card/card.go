package card

import (
	"fmt"
	"strings"
)

// Valores especiais do rank. Cartas numéricas usam o próprio número (2-10).
const (
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

// Ordem canônica de geração do baralho: naipe maior, valor menor.
var (
	suits = []string{"hearts", "diamonds", "clubs", "spades"}
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "jack", "queen", "king", "ace"}
)

// Card é um valor imutável. O nome canônico ("<rank>_of_<suit>") determina
// sozinho o naipe e o rank; Parse é a única forma de construir uma carta.
type Card struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
	Name string `json:"name"`
}

// Parse deriva uma carta do seu nome canônico, ex: "queen_of_hearts".
// Um sufixo ".png" é tolerado: os clientes herdaram nomes de arquivos de
// imagem como identificadores de carta.
func Parse(name string) (Card, error) {
	clean := strings.TrimSuffix(name, ".png")
	parts := strings.Split(clean, "_")
	if len(parts) != 3 || parts[1] != "of" {
		return Card{}, fmt.Errorf("invalid card name %q", name)
	}

	rank, err := parseRank(parts[0])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card name %q: %w", name, err)
	}

	suit := parts[2]
	if !validSuit(suit) {
		return Card{}, fmt.Errorf("invalid card name %q: unknown suit %q", name, suit)
	}

	return Card{Suit: suit, Rank: rank, Name: clean}, nil
}

func parseRank(s string) (int, error) {
	switch s {
	case "ace":
		return RankAce, nil
	case "king":
		return RankKing, nil
	case "queen":
		return RankQueen, nil
	case "jack":
		return RankJack, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("unknown rank %q", s)
	}
	return n, nil
}

func validSuit(s string) bool {
	for _, suit := range suits {
		if s == suit {
			return true
		}
	}
	return false
}

func (c Card) String() string { return c.Name }

// FormatName devolve o nome de exibição, ex: "Queen Of Hearts".
func FormatName(name string) string {
	words := strings.Split(strings.TrimSuffix(name, ".png"), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatRankPlural devolve o rank no plural para a narração de guerra,
// ex: "Aces", "7s".
func FormatRankPlural(name string) string {
	clean := strings.TrimSuffix(name, ".png")
	rankStr := strings.SplitN(clean, "_", 2)[0]
	switch rankStr {
	case "ace":
		return "Aces"
	case "king":
		return "Kings"
	case "queen":
		return "Queens"
	case "jack":
		return "Jacks"
	}
	return rankStr + "s"
}
