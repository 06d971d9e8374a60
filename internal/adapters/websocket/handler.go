package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"stabsurvival/internal/application/usecases"
	"stabsurvival/internal/infra/logger"
	"stabsurvival/internal/ports"
)

// WebSocketHandler gerencia o upgrade e o roteamento de eventos de jogo.
type WebSocketHandler struct {
	hub          *Hub
	gameUC       *usecases.GameUseCases
	sessionUC    *usecases.SessionUseCases
	tokenService ports.TokenService
}

func NewWebSocketHandler(
	hub *Hub,
	gameUC *usecases.GameUseCases,
	sessionUC *usecases.SessionUseCases,
	tokenService ports.TokenService,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub:          hub,
		gameUC:       gameUC,
		sessionUC:    sessionUC,
		tokenService: tokenService,
	}

	// Registra o callback no Hub
	hub.EventHandler = handler.HandleEvent
	return handler
}

// HandleWS faz o upgrade da conexão HTTP para WebSocket. O token de sessão
// vem na query string (browsers não enviam headers no handshake de WS).
func (h *WebSocketHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token de sessão obrigatório (token)", http.StatusBadRequest)
		return
	}

	sessionID, err := h.tokenService.ValidateToken(token)
	if err != nil {
		http.Error(w, "Token inválido ou expirado", http.StatusUnauthorized)
		return
	}

	s, err := h.sessionUC.FindSession(sessionID)
	if err != nil {
		http.Error(w, "Sessão não encontrada", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("falha no upgrade para websocket", "erro", err)
		return
	}

	client := &Client{
		Hub:       h.hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: sessionID,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()

	// Estado atual direto para a conexão que chegou (resync de reconexão)
	h.sendToClient(client, map[string]interface{}{
		"type":    "session_state",
		"payload": s.Snapshot(),
	})
}

// HandleEvent processa mensagens vindas dos clientes (Router de Eventos).
func (h *WebSocketHandler) HandleEvent(client *Client, msg Envelope) {
	ctx := context.Background()
	sid := client.SessionID

	var err error
	switch msg.Type {
	case "start_game":
		err = h.gameUC.StartGame(ctx, sid)

	case "advance_intro":
		err = h.gameUC.AdvanceIntro(ctx, sid)

	case "retreat_intro":
		err = h.gameUC.RetreatIntro(ctx, sid)

	case "skip_intro":
		err = h.gameUC.SkipIntro(ctx, sid)

	case "submit_answer":
		var payload struct {
			OptionID string `json:"optionId"`
		}
		if err = json.Unmarshal(msg.Payload, &payload); err == nil {
			err = h.gameUC.SubmitAnswer(ctx, sid, payload.OptionID)
		}

	case "advance_step":
		err = h.gameUC.AdvanceStep(ctx, sid)

	case "advance_round":
		err = h.gameUC.AdvanceRound(ctx, sid)

	case "restart_game":
		err = h.gameUC.RestartGame(ctx, sid)

	case "go_home":
		err = h.gameUC.GoHome(ctx, sid)

	case "activate_dev_mode":
		var payload struct {
			Password string `json:"password"`
		}
		if err = json.Unmarshal(msg.Payload, &payload); err == nil {
			err = h.gameUC.ActivateDevMode(ctx, sid, payload.Password)
		}

	case "dev_skip":
		err = h.gameUC.DevSkip(ctx, sid)

	case "submit_cheat_code":
		var payload struct {
			Code string `json:"code"`
		}
		if err = json.Unmarshal(msg.Payload, &payload); err == nil {
			err = h.gameUC.SubmitCheatCode(ctx, sid, payload.Code)
		}

	case "request_content":
		var payload struct {
			Kind string `json:"kind"`
		}
		if err = json.Unmarshal(msg.Payload, &payload); err == nil {
			err = h.gameUC.RequestContent(ctx, sid, payload.Kind)
		}

	default:
		logger.Warn("evento desconhecido", "tipo", msg.Type)
		return
	}

	if err != nil {
		h.sendError(client, err.Error())
	}
}

func (h *WebSocketHandler) sendError(client *Client, errorMsg string) {
	h.sendToClient(client, map[string]interface{}{
		"type":    "error",
		"payload": errorMsg,
	})
}

func (h *WebSocketHandler) sendToClient(client *Client, message interface{}) {
	bytes, err := json.Marshal(message)
	if err != nil {
		logger.Error("erro ao serializar mensagem direta", "erro", err)
		return
	}
	select {
	case client.Send <- bytes:
	default:
		// Falha no envio
	}
}
