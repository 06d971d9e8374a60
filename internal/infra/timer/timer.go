// Package timer implementa o serviço de contagem regressiva dos steps:
// um slot por sessão, resolução de um tick por segundo, com callbacks de
// tick e expiração entregues na ordem (o tick 0 é observável antes do
// OnExpire, que dispara exatamente uma vez).
package timer

import (
	"sync"
	"time"
)

// DefaultInterval é a resolução padrão da contagem.
const DefaultInterval = time.Second

// Callbacks são invocados fora do lock do serviço.
type Callbacks struct {
	OnTick   func(key string, remaining int)
	OnExpire func(key string)
}

// Option configura o serviço.
type Option func(*Service)

// WithInterval troca a resolução do tick (testes usam milissegundos).
func WithInterval(d time.Duration) Option {
	return func(s *Service) { s.interval = d }
}

// Service gerencia um slot de contagem por chave. Iniciar uma contagem
// cancela implicitamente a anterior da mesma chave.
type Service struct {
	cb       Callbacks
	interval time.Duration

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	cancel chan struct{}
}

// NewService cria o serviço com os callbacks dados.
func NewService(cb Callbacks, opts ...Option) *Service {
	s := &Service{
		cb:       cb,
		interval: DefaultInterval,
		slots:    make(map[string]*slot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start inicia uma contagem de seconds para a chave. seconds <= 0 é no-op.
func (s *Service) Start(key string, seconds int) {
	if seconds <= 0 {
		return
	}

	s.mu.Lock()
	if old, ok := s.slots[key]; ok {
		close(old.cancel)
	}
	sl := &slot{cancel: make(chan struct{})}
	s.slots[key] = sl
	s.mu.Unlock()

	go s.run(key, sl, seconds)
}

// Stop cancela a contagem da chave. Seguro chamar sem contagem ativa.
func (s *Service) Stop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl, ok := s.slots[key]; ok {
		close(sl.cancel)
		delete(s.slots, key)
	}
}

// StopAll cancela todas as contagens ativas.
func (s *Service) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, sl := range s.slots {
		close(sl.cancel)
		delete(s.slots, key)
	}
}

func (s *Service) run(key string, sl *slot, seconds int) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	remaining := seconds
	for {
		select {
		case <-sl.cancel:
			return
		case <-ticker.C:
			// Um Stop/Start concorrente invalida este slot: ticks
			// atrasados não podem ser emitidos.
			if !s.isCurrent(key, sl) {
				return
			}
			remaining--
			if s.cb.OnTick != nil {
				s.cb.OnTick(key, remaining)
			}
			if remaining <= 0 {
				s.release(key, sl)
				if s.cb.OnExpire != nil {
					s.cb.OnExpire(key)
				}
				return
			}
		}
	}
}

func (s *Service) isCurrent(key string, sl *slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[key] == sl
}

// release remove o slot ao expirar, sem fechar o canal de cancelamento
// (a goroutine dona já está encerrando).
func (s *Service) release(key string, sl *slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots[key] == sl {
		delete(s.slots, key)
	}
}
