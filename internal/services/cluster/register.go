package cluster

import (
	"fmt"
	"log"
	"os"

	consul "github.com/hashicorp/consul/api"
)

// RegisterServiceInConsul registra esta instância no Consul com um health
// check HTTP apontando para /health. Diferente de um serviço de cluster, o
// servidor de jogo precisa funcionar standalone: falha de registro é
// devolvida ao chamador, nunca fatal.
func RegisterServiceInConsul(serviceName string, servicePort, healthPort int) error {
	config := consul.DefaultConfig()
	config.Address = os.Getenv("CONSUL_HTTP_ADDR")
	if config.Address == "" {
		config.Address = "consul:8500"
	}

	consulClient, err := consul.NewClient(config)
	if err != nil {
		return fmt.Errorf("criando cliente Consul: %w", err)
	}

	// O hostname dá um ID de serviço único por instância.
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: servicePort,

		// Sem Address: o agente do Consul usa o IP de quem registra.
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, healthPort),
			Timeout:  "5s",
			Interval: "10s",
			// Desregistra sozinho se ficar crítico por mais de 1 minuto.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := consulClient.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("registrando serviço no Consul: %w", err)
	}

	log.Printf("[Cluster] Serviço '%s' registrado no Consul com ID: %s", serviceName, serviceID)
	return nil
}
