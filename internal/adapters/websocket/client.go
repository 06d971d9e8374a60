package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"stabsurvival/internal/infra/logger"
)

const (
	// Tempo máximo para escrever uma mensagem.
	writeWait = 10 * time.Second

	// Tempo máximo sem pong antes de derrubar a conexão.
	pongWait = 60 * time.Second

	// Intervalo dos pings (precisa ser menor que pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Tamanho máximo de mensagem vinda do cliente.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS já é tratado no router; o jogo não tem estado sensível.
		return true
	},
}

// Client é uma conexão WebSocket de uma sessão de jogo.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
}

// readPump bombeia mensagens da conexão para o Hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("conexão encerrada inesperadamente", "erro", err)
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			logger.Warn("mensagem inválida do cliente", "erro", err)
			continue
		}
		c.Hub.IncomingMsgs <- HubMessage{Client: c, Content: env}
	}
}

// writePump bombeia mensagens do canal Send para a conexão.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// O Hub fechou o canal
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
