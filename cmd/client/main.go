// Cliente de desenvolvimento: conecta no servidor, entra na fila (ou cria /
// entra numa partida por código) e manda draw_card a cada Enter. Serve para
// jogar contra outra instância do próprio cliente durante o desenvolvimento.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/addlightness/whop-war-websocket/internal/network"
)

var (
	addr     = flag.String("addr", "localhost:3001", "endereço do servidor")
	name     = flag.String("name", "Player", "nome de exibição")
	create   = flag.Bool("create", false, "cria uma partida por código em vez de entrar na fila")
	joinCode = flag.String("join", "", "entra na partida com este código de convite")
)

func send(conn *websocket.Conn, msgType string, payload any) {
	var data json.RawMessage
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	if err := conn.WriteJSON(network.Message{Type: msgType, Data: data}); err != nil {
		log.Fatalf("Erro de escrita: %v", err)
	}
}

func main() {
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Conectando em %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Falha ao conectar: %v", err)
	}
	defer conn.Close()

	playerID := uuid.NewString()

	switch {
	case *create:
		send(conn, "create_game", map[string]string{"playerId": playerID, "name": *name})
	case *joinCode != "":
		send(conn, "join_game", map[string]string{
			"playerId": playerID,
			"name":     *name,
			"joinCode": strings.ToUpper(strings.TrimSpace(*joinCode)),
		})
	default:
		send(conn, "join_queue", map[string]string{"playerId": playerID, "name": *name})
	}

	// Loop de leitura: imprime tudo que o servidor mandar.
	go func() {
		for {
			var msg network.Message
			if err := conn.ReadJSON(&msg); err != nil {
				log.Fatalf("Conexão encerrada: %v", err)
			}
			fmt.Printf("<- %s %s\n", msg.Type, string(msg.Data))
		}
	}()

	fmt.Println("Enter envia draw_card; 'q' + Enter sai.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "q" {
			return
		}
		send(conn, "game_action", map[string]string{"action": "draw_card"})
	}
}
