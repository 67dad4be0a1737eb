package events

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/addlightness/whop-war-websocket/internal/game/war"
)

// Subjects dos eventos de ciclo de vida de partida.
const (
	SubjectMatchStarted   = "war.match.started"
	SubjectMatchFinished  = "war.match.finished"
	SubjectMatchAbandoned = "war.match.abandoned"
)

// MatchEvent é o corpo publicado em todos os subjects de partida.
type MatchEvent struct {
	GameID  string `json:"gameId"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Status  string `json:"status"`
	Winner  string `json:"winner,omitempty"`
}

// Publisher publica eventos de partida no NATS em fire-and-forget. Todo o
// servidor funciona normalmente com um Publisher nil: os métodos aceitam
// receiver nulo e viram no-ops, então o NATS é estritamente opcional.
type Publisher struct {
	nc *nats.Conn
}

// Connect abre a conexão com o NATS. A reconexão fica por conta do próprio
// cliente; uma queda do broker não pode derrubar partidas em andamento.
func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("war-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc}, nil
}

// Close drena o que estiver pendente antes de fechar.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Drain()
}

// Healthy serve de CheckFunc para o agregador de saúde.
func (p *Publisher) Healthy() error {
	if p == nil || p.nc == nil {
		return errors.New("nats: not configured")
	}
	if !p.nc.IsConnected() {
		return errors.New("nats: disconnected")
	}
	return nil
}

func (p *Publisher) MatchStarted(g *war.Game) {
	p.publish(SubjectMatchStarted, eventFor(g))
}

func (p *Publisher) MatchFinished(g *war.Game) {
	p.publish(SubjectMatchFinished, eventFor(g))
}

func (p *Publisher) MatchAbandoned(g *war.Game) {
	p.publish(SubjectMatchAbandoned, eventFor(g))
}

func eventFor(g *war.Game) MatchEvent {
	return MatchEvent{
		GameID:  g.ID,
		Player1: g.Player1.Name,
		Player2: g.Player2.Name,
		Status:  string(g.Phase),
		Winner:  string(g.Winner),
	}
}

func (p *Publisher) publish(subject string, event MatchEvent) {
	if p == nil || p.nc == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := p.nc.Publish(subject, payload); err != nil {
		// Fire-and-forget: falha de publicação só gera log.
		log.Printf("[Events] Falha ao publicar %s: %v", subject, err)
	}
}
