package session

import (
	"math/rand/v2"
)

const (
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength   = 6
)

// randomJoinCode sorteia um código de 6 caracteres uniformes em [A-Z0-9].
func randomJoinCode(r *rand.Rand) string {
	code := make([]byte, joinCodeLength)
	for i := range code {
		code[i] = joinCodeAlphabet[r.IntN(len(joinCodeAlphabet))]
	}
	return string(code)
}

// uniqueJoinCode sorteia até achar um código livre no registro. Com 36^6
// combinações e poucas partidas abertas, colisão é raríssima, mas o
// invariante "um código aponta para exatamente uma partida" não fica por
// conta da sorte.
func (h *GameHandler) uniqueJoinCode() string {
	for {
		code := randomJoinCode(h.rng)
		if !h.registry.CodeInUse(code) {
			return code
		}
	}
}
