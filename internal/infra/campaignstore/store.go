// Package campaignstore carrega o documento de campanha e o mantém
// disponível para novas sessões. Sessões em andamento guardam a referência
// do snapshot com que nasceram: um reload nunca muda um jogo no meio.
package campaignstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"stabsurvival/internal/domain/campaign"
	"stabsurvival/internal/infra/logger"
)

// debounce absorve a rajada de eventos que editores geram num único save.
const debounce = 200 * time.Millisecond

// Store guarda a campanha corrente.
type Store struct {
	path string

	mu      sync.RWMutex
	current *campaign.Campaign
}

// Load lê e valida o documento de campanha. Documento malformado é erro
// fatal: o servidor não sobe com campanha parcial.
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	c, err := s.read()
	if err != nil {
		return nil, err
	}
	s.current = c
	return s, nil
}

// Current retorna o snapshot corrente da campanha.
func (s *Store) Current() *campaign.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload relê o documento e troca o snapshot corrente. Um documento
// inválido mantém o snapshot anterior.
func (s *Store) Reload() error {
	c, err := s.read()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return nil
}

// Watch observa o arquivo de campanha e recarrega a cada alteração.
// Bloqueia até o contexto encerrar.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("criação do watcher: %w", err)
	}
	defer watcher.Close()

	// Observa o diretório: editores costumam salvar via rename, o que
	// invalidaria um watch direto no arquivo.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch de %s: %w", s.path, err)
	}

	var pending *time.Timer
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounce, func() {
				if err := s.Reload(); err != nil {
					logger.Warn("reload da campanha falhou; mantendo a anterior", "erro", err)
					return
				}
				logger.Info("campanha recarregada", "arquivo", s.path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("erro no watcher da campanha", "erro", err)
		}
	}
}

func (s *Store) read() (*campaign.Campaign, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("leitura da campanha %s: %w", s.path, err)
	}
	c, err := campaign.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("campanha %s: %w", s.path, err)
	}
	return c, nil
}
