package persistence

import (
	"errors"
	"sync"
	"time"

	"stabsurvival/internal/domain/session"
	"stabsurvival/internal/ports"
)

// InMemorySessionRepository implementa SessionRepository usando memória RAM.
// Nenhum estado de jogo toca o disco: uma sessão some no restart do processo.
type InMemorySessionRepository struct {
	sessions sync.Map // Map[string]*session.Session
}

func NewInMemorySessionRepository() ports.SessionRepository {
	return &InMemorySessionRepository{}
}

func (r *InMemorySessionRepository) Save(s *session.Session) error {
	r.sessions.Store(s.ID, s)
	return nil
}

func (r *InMemorySessionRepository) FindByID(id string) (*session.Session, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, nil // Não encontrado (sem erro)
	}

	s, ok := val.(*session.Session)
	if !ok {
		return nil, errors.New("erro de tipo no repositório de sessões")
	}
	return s, nil
}

func (r *InMemorySessionRepository) Delete(id string) error {
	r.sessions.Delete(id)
	return nil
}

// EvictIdle remove sessões sem atividade há mais de maxIdle.
func (r *InMemorySessionRepository) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	r.sessions.Range(func(key, val any) bool {
		if s, ok := val.(*session.Session); ok && s.LastTouched().Before(cutoff) {
			r.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
