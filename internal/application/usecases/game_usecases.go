package usecases

import (
	"context"
	"errors"

	"stabsurvival/internal/domain/session"
	"stabsurvival/internal/ports"
)

var (
	ErrSessaoNaoEncontrada = errors.New("sessão não encontrada")
	ErrSenhaIncorreta      = errors.New("senha do modo desenvolvedor incorreta")
)

// GameUseCases orquestra as transições de estado: aplica o evento na
// sessão, executa a diretiva de timer, transmite o snapshot e dispara a
// resolução de conteúdo do novo alvo.
type GameUseCases struct {
	sessions  ports.SessionRepository
	hub       ports.RealTimeHub
	contentUC *ContentUseCases
	verifier  ports.PasswordVerifier

	// timers é ligado depois da construção: os callbacks do serviço de
	// timer apontam de volta para estes casos de uso.
	timers ports.TimerService
}

func NewGameUseCases(
	sessions ports.SessionRepository,
	hub ports.RealTimeHub,
	contentUC *ContentUseCases,
	verifier ports.PasswordVerifier,
) *GameUseCases {
	return &GameUseCases{
		sessions:  sessions,
		hub:       hub,
		contentUC: contentUC,
		verifier:  verifier,
	}
}

// AttachTimers liga o serviço de timer (resolvendo a dependência circular
// entre casos de uso e callbacks do timer).
func (uc *GameUseCases) AttachTimers(timers ports.TimerService) {
	uc.timers = timers
}

// --- Controles do jogador ---

func (uc *GameUseCases) StartGame(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.Start()
	})
}

func (uc *GameUseCases) AdvanceIntro(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return session.TimerCmd{}, s.AdvanceIntro()
	})
}

func (uc *GameUseCases) RetreatIntro(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return session.TimerCmd{}, s.RetreatIntro()
	})
}

func (uc *GameUseCases) SkipIntro(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.SkipIntro()
	})
}

func (uc *GameUseCases) SubmitAnswer(ctx context.Context, sessionID, optionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.SubmitAnswer(optionID)
	})
}

func (uc *GameUseCases) AdvanceStep(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.AdvanceStep()
	})
}

func (uc *GameUseCases) AdvanceRound(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.AdvanceRound()
	})
}

func (uc *GameUseCases) RestartGame(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		// Parar o timer é a primeira ação do restart: um timer órfão não
		// pode disparar gameover depois que o jogador já recomeçou.
		return s.Restart(), nil
	})
}

func (uc *GameUseCases) GoHome(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.GoHome(), nil
	})
}

func (uc *GameUseCases) DevSkip(ctx context.Context, sessionID string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.DevSkip()
	})
}

func (uc *GameUseCases) SubmitCheatCode(ctx context.Context, sessionID, code string) error {
	return uc.transition(ctx, sessionID, func(s *session.Session) (session.TimerCmd, error) {
		return s.SubmitCheatCode(code)
	})
}

// ActivateDevMode valida a senha contra a configuração da campanha e ativa
// o modo desenvolvedor da sessão (one-way).
func (uc *GameUseCases) ActivateDevMode(ctx context.Context, sessionID, password string) error {
	s, err := uc.find(sessionID)
	if err != nil {
		return err
	}

	cfg := s.Campaign.Config.DevMode
	if !cfg.Enabled {
		return session.ErrDevModeDesabilitado
	}
	if err := uc.verifier.Verify(cfg.Password, password); err != nil {
		return ErrSenhaIncorreta
	}

	cmd, err := s.EnableDevMode()
	if err != nil {
		return err
	}
	uc.afterTransition(ctx, s, cmd)
	return nil
}

// RequestContent atende ao pedido explícito do overlay de regras/dicas.
func (uc *GameUseCases) RequestContent(ctx context.Context, sessionID, kind string) error {
	s, err := uc.find(sessionID)
	if err != nil {
		return err
	}
	s.Touch()
	go uc.contentUC.PushInfo(ctx, s, kind)
	return nil
}

// GetSnapshot retorna o estado atual (resync de clientes HTTP).
func (uc *GameUseCases) GetSnapshot(sessionID string) (session.StateSnapshot, error) {
	s, err := uc.find(sessionID)
	if err != nil {
		return session.StateSnapshot{}, err
	}
	s.Touch()
	return s.Snapshot(), nil
}

// --- Callbacks do serviço de timer ---

// OnTimerTick espelha o valor restante e o transmite ao cliente.
func (uc *GameUseCases) OnTimerTick(sessionID string, remaining int) {
	s, err := uc.sessions.FindByID(sessionID)
	if err != nil || s == nil {
		return
	}
	if !s.SetTimerRemaining(remaining) {
		return // tick atrasado de um timer já parado
	}
	uc.hub.SendToSession(sessionID, map[string]interface{}{
		"type":    "timer_tick",
		"payload": map[string]int{"remaining": remaining},
	})
}

// OnTimerExpire processa a expiração: se o step ainda estava sem resposta,
// a sessão vai para gameover por timeout.
func (uc *GameUseCases) OnTimerExpire(sessionID string) {
	s, err := uc.sessions.FindByID(sessionID)
	if err != nil || s == nil {
		return
	}
	changed, _ := s.ExpireTimer()
	if !changed {
		return
	}
	uc.broadcastState(s)
	go uc.contentUC.PushForState(context.Background(), s)
}

// --- Internos ---

func (uc *GameUseCases) transition(ctx context.Context, sessionID string, op func(*session.Session) (session.TimerCmd, error)) error {
	s, err := uc.find(sessionID)
	if err != nil {
		return err
	}
	s.Touch()

	cmd, err := op(s)
	if err != nil {
		return err
	}
	uc.afterTransition(ctx, s, cmd)
	return nil
}

func (uc *GameUseCases) find(sessionID string) (*session.Session, error) {
	s, err := uc.sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessaoNaoEncontrada
	}
	return s, nil
}

func (uc *GameUseCases) afterTransition(ctx context.Context, s *session.Session, cmd session.TimerCmd) {
	uc.applyTimerCmd(s.ID, cmd)
	uc.broadcastState(s)
	go uc.contentUC.PushForState(ctx, s)
}

func (uc *GameUseCases) applyTimerCmd(sessionID string, cmd session.TimerCmd) {
	if uc.timers == nil {
		return
	}
	if cmd.StartSeconds > 0 {
		uc.timers.Start(sessionID, cmd.StartSeconds)
		return
	}
	if cmd.Stop {
		uc.timers.Stop(sessionID)
	}
}

func (uc *GameUseCases) broadcastState(s *session.Session) {
	uc.hub.SendToSession(s.ID, map[string]interface{}{
		"type":    "session_state",
		"payload": s.Snapshot(),
	})
}
