package content

import (
	"context"
	"sync"

	"stabsurvival/internal/infra/logger"
	"stabsurvival/internal/ports"
)

// PlaceholderIndisponivel é o fallback exibido para regras/dicas quando a
// busca falha. Os demais tipos degradam para texto vazio.
const PlaceholderIndisponivel = "_Conteúdo indisponível no momento._"

// Loader implementa ports.ContentLoader com cache append-only chaveado por
// (versão, caminho). Falhas de busca nunca são cacheadas.
type Loader struct {
	source  ports.ContentSource
	version string

	mu    sync.RWMutex
	cache map[string]string
}

// NewLoader cria o loader. version é a tag de cache busting: trocá-la
// invalida todo o conteúdo já resolvido.
func NewLoader(source ports.ContentSource, version string) *Loader {
	return &Loader{
		source:  source,
		version: version,
		cache:   make(map[string]string),
	}
}

// Resolve resolve uma referência de conteúdo para o texto final de exibição.
// Conteúdo inline retorna imediatamente, sem I/O; referências por caminho
// passam pelo cache e, em caso de falha, degradam para o fallback do tipo.
func (l *Loader) Resolve(ctx context.Context, req ports.ContentRequest) ports.ContentResult {
	if req.Inline != "" {
		return ports.ContentResult{Text: req.Inline, Title: req.StaticTitle}
	}
	if req.Path == "" {
		return ports.ContentResult{Title: req.StaticTitle}
	}

	key := l.version + "\x00" + req.Path
	l.mu.RLock()
	cached, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return l.project(req, cached)
	}

	raw, err := l.source.Fetch(ctx, req.Path)
	if err != nil {
		logger.Warn("falha ao buscar conteúdo", "tipo", req.Kind, "caminho", req.Path, "erro", err)
		return ports.ContentResult{Text: fallbackFor(req.Kind), Title: req.StaticTitle}
	}

	clean := StripFrontmatter(raw)
	l.mu.Lock()
	l.cache[key] = clean
	l.mu.Unlock()

	return l.project(req, clean)
}

// project aplica as transformações pós-cache. Para corpo de slide, um
// heading H1 na primeira linha vira o título autoritativo do slide.
func (l *Loader) project(req ports.ContentRequest, text string) ports.ContentResult {
	if req.Kind == ports.ContentSlideBody {
		if title, rest := ExtractTitle(text); title != "" {
			return ports.ContentResult{Text: rest, Title: title}
		}
	}
	return ports.ContentResult{Text: text, Title: req.StaticTitle}
}

func fallbackFor(kind string) string {
	switch kind {
	case ports.ContentRules, ports.ContentHints:
		return PlaceholderIndisponivel
	default:
		return ""
	}
}
