package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"stabsurvival/internal/domain/campaign"
)

// Fases da sessão (State Machine)
const (
	PhaseHome     = "home"
	PhaseIntro    = "intro"
	PhaseRound    = "round"
	PhaseGameOver = "gameover"
	PhaseVictory  = "victory"
)

// Motivos de fim de jogo
const (
	ReasonTimeout     = "timeout"
	ReasonWrongAnswer = "wrong-answer"
)

var (
	ErrFaseInvalida        = errors.New("ação não permitida na fase atual")
	ErrJaRespondeu         = errors.New("este step já foi respondido")
	ErrRespondaPrimeiro    = errors.New("responda o step atual antes de avançar")
	ErrCheatDesabilitado   = errors.New("código de atalho desabilitado nesta campanha")
	ErrCodigoInvalido      = errors.New("código de atalho inválido")
	ErrDevModeDesabilitado = errors.New("modo desenvolvedor desabilitado nesta campanha")
	ErrDevModeInativo      = errors.New("modo desenvolvedor não está ativo")
)

// Stats acumula o placar da sessão.
type Stats struct {
	CorrectCount int `json:"correctCount"`
	WrongCount   int `json:"wrongCount"`
}

// TimerCmd é a diretiva de timer produzida por uma transição. O domínio não
// agenda timers: quem chama aplica a diretiva no serviço de timer.
type TimerCmd struct {
	Stop         bool
	StartSeconds int
}

// Session é o registro autoritativo do estado de jogo de um jogador.
// Toda mutação passa pelos métodos de transição, um evento por vez.
type Session struct {
	ID        string
	Campaign  *campaign.Campaign
	CreatedAt time.Time

	phase            string
	introIndex       int
	roundIndex       int
	stepIndex        int
	activeSteps      []campaign.Step
	selectedOptionID string
	hasAnswered      bool
	lastFeedback     string
	timerActive      bool
	timerRemaining   int
	stats            Stats
	gameOverReason   string
	devMode          bool

	// contentGen cresce a cada transição que muda o alvo visível.
	// Usado para descartar conteúdo que chega atrasado (race guard).
	contentGen uint64

	lastTouched time.Time

	mu sync.RWMutex
}

// New cria uma sessão na fase inicial (home) com um snapshot imutável
// da campanha.
func New(id string, c *campaign.Campaign) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		Campaign:    c,
		CreatedAt:   now,
		phase:       PhaseHome,
		lastTouched: now,
	}
}

// --- Transições (Navigation Engine) ---

// Start inicia o jogo a partir da home: vai para a intro se houver slides,
// senão direto para o primeiro round.
func (s *Session) Start() (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseHome {
		return TimerCmd{}, ErrFaseInvalida
	}

	s.resetProgressLocked()
	if len(s.Campaign.IntroSlides) > 0 {
		s.phase = PhaseIntro
		s.contentGen++
		return TimerCmd{Stop: true}, nil
	}
	return s.enterRoundLocked(0), nil
}

// AdvanceIntro avança um slide. No último slide é um no-op (o avanço para o
// round é feito por SkipIntro, o "start level" da interface).
func (s *Session) AdvanceIntro() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIntro {
		return ErrFaseInvalida
	}
	if s.introIndex < len(s.Campaign.IntroSlides)-1 {
		s.introIndex++
		s.contentGen++
	}
	return nil
}

// RetreatIntro volta um slide. No primeiro slide é um no-op.
func (s *Session) RetreatIntro() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIntro {
		return ErrFaseInvalida
	}
	if s.introIndex > 0 {
		s.introIndex--
		s.contentGen++
	}
	return nil
}

// SkipIntro sai da intro direto para o primeiro round (também usado pelo
// botão "start level" no último slide).
func (s *Session) SkipIntro() (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIntro {
		return TimerCmd{}, ErrFaseInvalida
	}
	return s.enterRoundLocked(0), nil
}

// SubmitAnswer registra a resposta do step atual. Aceita no máximo uma
// resposta por step: a segunda submissão é rejeitada sem mudar o estado.
// Resposta errada encerra o jogo imediatamente.
func (s *Session) SubmitAnswer(optionID string) (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRound {
		return TimerCmd{}, ErrFaseInvalida
	}
	if s.hasAnswered {
		return TimerCmd{}, ErrJaRespondeu
	}

	step := s.activeSteps[s.stepIndex]
	s.hasAnswered = true
	s.selectedOptionID = optionID
	s.timerActive = false

	// Alternativa inexistente conta como errada (entrada não validada
	// não derruba o jogo).
	correct := optionID == step.Answer.CorrectOptionID
	if _, ok := step.FindOption(optionID); !ok {
		correct = false
	}
	s.lastFeedback = step.FeedbackFor(correct)

	if correct {
		s.stats.CorrectCount++
		return TimerCmd{Stop: true}, nil
	}

	s.stats.WrongCount++
	s.gameOverReason = ReasonWrongAnswer
	s.phase = PhaseGameOver
	s.contentGen++
	return TimerCmd{Stop: true}, nil
}

// AdvanceStep avança para o próximo step após um acerto. No último step do
// round comporta-se como AdvanceRound.
func (s *Session) AdvanceStep() (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRound {
		return TimerCmd{}, ErrFaseInvalida
	}
	if !s.hasAnswered {
		return TimerCmd{}, ErrRespondaPrimeiro
	}
	return s.advanceStepLocked(), nil
}

// AdvanceRound avança para o próximo round. No último round vai para victory.
func (s *Session) AdvanceRound() (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRound {
		return TimerCmd{}, ErrFaseInvalida
	}
	if !s.hasAnswered {
		return TimerCmd{}, ErrRespondaPrimeiro
	}
	return s.advanceRoundLocked(), nil
}

// DevSkip avança exatamente um step (ou um round, no último step) sem exigir
// resposta. Disponível apenas com o modo desenvolvedor ativo.
func (s *Session) DevSkip() (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRound {
		return TimerCmd{}, ErrFaseInvalida
	}
	if !s.devMode {
		return TimerCmd{}, ErrDevModeInativo
	}
	return s.advanceStepLocked(), nil
}

// SubmitCheatCode compara o código (case-insensitive) com a configuração da
// campanha. Código certo avança um round; errado não muda nada.
func (s *Session) SubmitCheatCode(code string) (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRound {
		return TimerCmd{}, ErrFaseInvalida
	}
	cheat := s.Campaign.Config.Cheat
	if !cheat.Enabled {
		return TimerCmd{}, ErrCheatDesabilitado
	}
	if !strings.EqualFold(code, cheat.Code) {
		return TimerCmd{}, ErrCodigoInvalido
	}
	return s.advanceRoundLocked(), nil
}

// EnableDevMode ativa o modo desenvolvedor (one-way para a sessão):
// suprime o timer atual e os dos próximos steps e libera o DevSkip.
// A verificação da senha acontece antes, no caso de uso.
func (s *Session) EnableDevMode() (TimerCmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Campaign.Config.DevMode.Enabled {
		return TimerCmd{}, ErrDevModeDesabilitado
	}
	s.devMode = true
	s.timerActive = false
	return TimerCmd{Stop: true}, nil
}

// ExpireTimer processa a expiração do timer do step atual. Expirações
// atrasadas (step já respondido ou fase trocada) são ignoradas.
// Retorna true se o estado mudou.
func (s *Session) ExpireTimer() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRound || s.hasAnswered || !s.timerActive {
		return false, nil
	}

	s.timerActive = false
	s.timerRemaining = 0
	s.gameOverReason = ReasonTimeout
	s.phase = PhaseGameOver
	s.contentGen++
	return true, nil
}

// SetTimerRemaining espelha o valor corrente do timer para os snapshots.
// Ticks atrasados de um timer já parado são descartados.
func (s *Session) SetTimerRemaining(remaining int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.timerActive {
		return false
	}
	s.timerRemaining = remaining
	return true
}

// Restart reinicia a sessão: para o timer, zera cursores, placar e estado de
// resposta e volta para a home. O modo desenvolvedor é preservado.
// Chamar duas vezes produz o mesmo estado que chamar uma vez.
func (s *Session) Restart() TimerCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restartLocked()
}

// GoHome volta para a home. A entrada na home sempre reinicia o progresso,
// então equivale a Restart.
func (s *Session) GoHome() TimerCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restartLocked()
}

// --- Internos (chamados com o lock já adquirido) ---

func (s *Session) restartLocked() TimerCmd {
	s.resetProgressLocked()
	s.phase = PhaseHome
	s.contentGen++
	return TimerCmd{Stop: true}
}

func (s *Session) resetProgressLocked() {
	s.introIndex = 0
	s.roundIndex = 0
	s.stepIndex = 0
	s.activeSteps = nil
	s.selectedOptionID = ""
	s.hasAnswered = false
	s.lastFeedback = ""
	s.timerActive = false
	s.timerRemaining = 0
	s.stats = Stats{}
	s.gameOverReason = ""
}

func (s *Session) advanceStepLocked() TimerCmd {
	if s.stepIndex < len(s.activeSteps)-1 {
		s.stepIndex++
		return s.enterStepLocked()
	}
	return s.advanceRoundLocked()
}

func (s *Session) advanceRoundLocked() TimerCmd {
	return s.enterRoundLocked(s.roundIndex + 1)
}

// enterRoundLocked entra no primeiro round jogável a partir do índice dado.
// Rounds sem steps ativos são pulados; esgotados os rounds, é vitória.
func (s *Session) enterRoundLocked(index int) TimerCmd {
	for ; index < len(s.Campaign.Rounds); index++ {
		steps := s.Campaign.Rounds[index].ActiveSteps()
		if len(steps) == 0 {
			continue
		}
		s.phase = PhaseRound
		s.roundIndex = index
		s.stepIndex = 0
		s.activeSteps = steps
		return s.enterStepLocked()
	}

	s.phase = PhaseVictory
	s.timerActive = false
	s.timerRemaining = 0
	s.contentGen++
	return TimerCmd{Stop: true}
}

func (s *Session) enterStepLocked() TimerCmd {
	s.selectedOptionID = ""
	s.hasAnswered = false
	s.lastFeedback = ""
	s.contentGen++

	seconds := s.Campaign.TimerSeconds(s.activeSteps[s.stepIndex])
	if seconds <= 0 || s.devMode {
		s.timerActive = false
		s.timerRemaining = 0
		return TimerCmd{Stop: true}
	}
	s.timerActive = true
	s.timerRemaining = seconds
	return TimerCmd{StartSeconds: seconds}
}

// --- Leituras ---

// Phase retorna a fase atual.
func (s *Session) Phase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// DevMode indica se o modo desenvolvedor está ativo.
func (s *Session) DevMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.devMode
}

// Stats retorna o placar acumulado.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// GameOverReason retorna o motivo do fim de jogo ("" se não terminou).
func (s *Session) GameOverReason() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameOverReason
}

// ContentGen retorna o token de geração de conteúdo corrente.
func (s *Session) ContentGen() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contentGen
}

// CurrentSlide retorna o slide visível na fase intro.
func (s *Session) CurrentSlide() (campaign.IntroSlide, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phase != PhaseIntro || s.introIndex >= len(s.Campaign.IntroSlides) {
		return campaign.IntroSlide{}, false
	}
	return s.Campaign.IntroSlides[s.introIndex], true
}

// CurrentRound retorna o round visível na fase round.
func (s *Session) CurrentRound() (campaign.Round, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phase != PhaseRound || s.roundIndex >= len(s.Campaign.Rounds) {
		return campaign.Round{}, false
	}
	return s.Campaign.Rounds[s.roundIndex], true
}

// CurrentStep retorna o step ativo na fase round.
func (s *Session) CurrentStep() (campaign.Step, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phase != PhaseRound || s.stepIndex >= len(s.activeSteps) {
		return campaign.Step{}, false
	}
	return s.activeSteps[s.stepIndex], true
}

// Touch marca atividade da sessão (usado pela coleta de sessões ociosas).
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()
}

// LastTouched retorna o instante da última atividade.
func (s *Session) LastTouched() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTouched
}
