package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"stabsurvival/internal/adapters/http/middlewares"
	"stabsurvival/internal/application/usecases"
)

// SessionHandler expõe criação e consulta de sessões de jogo.
type SessionHandler struct {
	sessionUC *usecases.SessionUseCases
	gameUC    *usecases.GameUseCases
}

func NewSessionHandler(sessionUC *usecases.SessionUseCases, gameUC *usecases.GameUseCases) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC, gameUC: gameUC}
}

// CreateSession godoc
// @Summary Cria uma sessão de jogo
// @Description Cria uma sessão anônima nova e retorna o token de acesso e o snapshot inicial.
// @Tags Sessions
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.sessionUC.CreateSession()
	if err != nil {
		http.Error(w, "Não foi possível criar a sessão", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessionId":   out.SessionID,
		"accessToken": out.AccessToken,
		"expiresIn":   out.ExpiresIn,
		"state":       out.Snapshot,
	})
}

// GetCurrent godoc
// @Summary Retorna o estado atual da sessão
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} session.StateSnapshot
// @Failure 404 "Sessão não encontrada"
// @Router /sessions/current [get]
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Context().Value(middlewares.SessionIDKey).(string)

	snap, err := h.gameUC.GetSnapshot(sessionID)
	if err != nil {
		if errors.Is(err, usecases.ErrSessaoNaoEncontrada) {
			http.Error(w, "Sessão não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
