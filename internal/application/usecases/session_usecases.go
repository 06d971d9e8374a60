package usecases

import (
	"github.com/google/uuid"

	"stabsurvival/internal/domain/campaign"
	"stabsurvival/internal/domain/session"
	"stabsurvival/internal/ports"
)

// CampaignProvider entrega o snapshot corrente da campanha para novas
// sessões (sessões vivas guardam o snapshot com que nasceram).
type CampaignProvider interface {
	Current() *campaign.Campaign
}

// SessionUseCases coordena a criação e consulta de sessões de jogo.
type SessionUseCases struct {
	sessions     ports.SessionRepository
	campaigns    CampaignProvider
	tokenService ports.TokenService
}

func NewSessionUseCases(
	sessions ports.SessionRepository,
	campaigns CampaignProvider,
	tokenService ports.TokenService,
) *SessionUseCases {
	return &SessionUseCases{
		sessions:     sessions,
		campaigns:    campaigns,
		tokenService: tokenService,
	}
}

type CreateSessionOutput struct {
	SessionID   string
	AccessToken string
	ExpiresIn   int64 // Segundos
	Snapshot    session.StateSnapshot
}

// Execute do fluxo de criação: cada navegador/jogador ganha uma sessão
// anônima nova, identificada pelo token.
func (uc *SessionUseCases) CreateSession() (*CreateSessionOutput, error) {
	s := session.New(uuid.NewString(), uc.campaigns.Current())

	if err := uc.sessions.Save(s); err != nil {
		return nil, err
	}

	token, expiresIn, err := uc.tokenService.GenerateToken(s.ID)
	if err != nil {
		return nil, err
	}

	return &CreateSessionOutput{
		SessionID:   s.ID,
		AccessToken: token,
		ExpiresIn:   expiresIn,
		Snapshot:    s.Snapshot(),
	}, nil
}

// FindSession retorna a sessão pelo ID (já validado pelo token).
func (uc *SessionUseCases) FindSession(sessionID string) (*session.Session, error) {
	s, err := uc.sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessaoNaoEncontrada
	}
	return s, nil
}
