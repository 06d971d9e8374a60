package websocket

import (
	"encoding/json"
	"sync"

	"stabsurvival/internal/infra/logger"
)

// Envelope é o formato de toda mensagem trocada com o cliente.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// HubMessage envolve a mensagem e o cliente remetente.
type HubMessage struct {
	Client  *Client
	Content Envelope
}

// Hub implementa ports.RealTimeHub. Uma sessão pode ter mais de uma
// conexão (abas): o envio para a sessão alcança todas.
type Hub struct {
	clients    map[*Client]bool
	sessions   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client

	// IncomingMsgs é o canal onde o Hub recebe comandos dos clientes
	IncomingMsgs chan HubMessage

	// EventHandler processa eventos de negócio (injetado pelo handler)
	EventHandler func(*Client, Envelope)

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		clients:      make(map[*Client]bool),
		sessions:     make(map[string]map[*Client]bool),
		IncomingMsgs: make(chan HubMessage),
	}
}

// SendToSession envia a mensagem para todas as conexões da sessão.
func (h *Hub) SendToSession(sessionID string, message interface{}) {
	bytes, err := json.Marshal(message)
	if err != nil {
		logger.Error("erro ao serializar mensagem para sessão", "erro", err)
		return
	}

	// Lock de escrita: clientes lentos são removidos no caminho de envio.
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.sessions[sessionID]; ok {
		for client := range clients {
			select {
			case client.Send <- bytes:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(clients, client)
			}
		}
		if len(clients) == 0 {
			delete(h.sessions, sessionID)
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if _, ok := h.sessions[client.SessionID]; !ok {
				h.sessions[client.SessionID] = make(map[*Client]bool)
			}
			h.sessions[client.SessionID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if clients, ok := h.sessions[client.SessionID]; ok {
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.sessions, client.SessionID)
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.IncomingMsgs:
			// Delega para o handler de negócio
			if h.EventHandler != nil {
				go h.EventHandler(msg.Client, msg.Content)
			}
		}
	}
}
