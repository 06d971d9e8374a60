package ports

import (
	"context"
	"time"

	"stabsurvival/internal/domain/session"
)

// SessionRepository define a persistência em memória das sessões de jogo.
// Por contrato, nada é gravado em disco: o estado é efêmero por sessão.
type SessionRepository interface {
	Save(s *session.Session) error
	FindByID(id string) (*session.Session, error)
	Delete(id string) error

	// EvictIdle remove sessões sem atividade há mais de maxIdle.
	// Retorna quantas foram removidas.
	EvictIdle(maxIdle time.Duration) int
}

// TokenService define o contrato para geração e validação de tokens de sessão.
type TokenService interface {
	// GenerateToken gera um token de acesso para o ID de sessão fornecido.
	GenerateToken(sessionID string) (string, int64, error)

	// ValidateToken valida o token e retorna o ID de sessão se válido.
	ValidateToken(tokenString string) (string, error)
}

// PasswordVerifier compara a senha fornecida com a esperada (hash bcrypt ou
// texto plano, em comparação de tempo constante e case-sensitive).
type PasswordVerifier interface {
	Verify(expected, provided string) error
}

// RealTimeHub define o contrato para envio de mensagens via WebSocket.
type RealTimeHub interface {
	// SendToSession envia para todas as conexões da sessão.
	SendToSession(sessionID string, message interface{})
}

// TimerService é o slot único de contagem regressiva por sessão: iniciar um
// novo timer cancela o anterior da mesma chave.
type TimerService interface {
	// Start inicia a contagem. seconds <= 0 é um no-op.
	Start(key string, seconds int)

	// Stop cancela a contagem da chave. Idempotente.
	Stop(key string)

	// StopAll cancela todas as contagens (shutdown).
	StopAll()
}

// Tipos de conteúdo resolvidos pelo ContentLoader. O fallback em caso de
// falha de rede depende do tipo.
const (
	ContentSlideBody    = "slide_body"
	ContentRoundContext = "round_context"
	ContentStepPrompt   = "step_prompt"
	ContentRules        = "rules"
	ContentHints        = "hints"
	ContentCircuitText  = "circuit_text"
)

// ContentRequest referencia um fragmento de conteúdo: inline OU por caminho.
type ContentRequest struct {
	Kind        string
	Inline      string
	Path        string
	StaticTitle string
}

// ContentResult é o conteúdo final para exibição.
type ContentResult struct {
	Text  string
	Title string
}

// ContentLoader resolve referências de conteúdo exatamente uma vez por
// caminho distinto na sessão do processo (cache por versão+caminho).
// Falhas de busca viram fallback, nunca erro propagado à transição.
type ContentLoader interface {
	Resolve(ctx context.Context, req ContentRequest) ContentResult
}

// ContentSource busca o texto bruto de um caminho relativo.
type ContentSource interface {
	Fetch(ctx context.Context, path string) (string, error)
}
