package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/addlightness/whop-war-websocket/internal/network"
	"github.com/addlightness/whop-war-websocket/internal/services/cluster"
	"github.com/addlightness/whop-war-websocket/internal/services/events"
	"github.com/addlightness/whop-war-websocket/internal/session"
)

const (
	defaultServiceName = "war-server"
	defaultServicePort = 3001
)

type Config struct {
	ServiceName string
	ServicePort int
	ConsulAddr  string
	NatsURL     string
}

func loadConfig() (*Config, error) {
	serviceName := os.Getenv("WAR_SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	servicePortStr := os.Getenv("WAR_SERVER_PORT")
	if servicePortStr == "" {
		servicePortStr = fmt.Sprintf("%d", defaultServicePort)
	}
	servicePort, err := strconv.Atoi(servicePortStr)
	if err != nil {
		return nil, fmt.Errorf("formato de WAR_SERVER_PORT inválido: %w", err)
	}
	return &Config{
		ServiceName: serviceName,
		ServicePort: servicePort,
		ConsulAddr:  os.Getenv("CONSUL_HTTP_ADDR"),
		NatsURL:     os.Getenv("NATS_URL"),
	}, nil
}

func main() {
	log.Println("Iniciando servidor War...")

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Fatal: Falha ao carregar configuração: %v", err)
	}
	log.Printf("[Main] Configuração carregada: ServiceName=%s, Port=%d", cfg.ServiceName, cfg.ServicePort)

	// NATS é opcional: sem NATS_URL o publisher fica nil e todos os eventos
	// viram no-ops.
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		publisher, err = events.Connect(cfg.NatsURL)
		if err != nil {
			log.Printf("[Main] AVISO: NATS indisponível em %s: %v. Eventos desativados.", cfg.NatsURL, err)
			publisher = nil
		} else {
			defer publisher.Close()
			log.Printf("[Main] Publicando eventos de partida no NATS em %s", cfg.NatsURL)
		}
	}

	gameHandler := session.NewGameHandler(publisher)
	server := network.NewServer(gameHandler)

	mux := http.NewServeMux()
	health := cluster.NewHealthAggregator()
	if publisher != nil {
		health.AddCheck("nats", publisher.Healthy)
	}
	mux.Handle("/health", health.Handler())

	// Registro no Consul só quando o endereço foi configurado; um servidor
	// de jogo standalone não depende de service discovery.
	if cfg.ConsulAddr != "" {
		if err := cluster.RegisterServiceInConsul(cfg.ServiceName, cfg.ServicePort, cfg.ServicePort); err != nil {
			log.Printf("[Main] AVISO: registro no Consul falhou: %v", err)
		}
	}

	if err := server.Listen(fmt.Sprintf(":%d", cfg.ServicePort), mux); err != nil {
		log.Fatalf("Não foi possível iniciar o servidor: %v", err)
	}
}
