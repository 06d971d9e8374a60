package session

import "stabsurvival/internal/domain/campaign"

// OptionView é a projeção de uma alternativa para o cliente.
type OptionView struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	DetailMarkdown string `json:"detailMarkdown,omitempty"`
}

// StepView é a projeção do step atual. O ID da resposta correta só é
// exposto depois que o step foi respondido.
type StepView struct {
	ID              string       `json:"id"`
	Kind            string       `json:"kind"`
	PromptMarkdown  string       `json:"promptMarkdown,omitempty"`
	PromptPath      string       `json:"promptPath,omitempty"`
	Options         []OptionView `json:"options"`
	CorrectOptionID string       `json:"correctOptionId,omitempty"`
	Feedback        string       `json:"feedback,omitempty"`
}

// RoundView é a projeção do round atual.
type RoundView struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Difficulty      int    `json:"difficulty"`
	ContextMarkdown string `json:"contextMarkdown,omitempty"`
	ContextPath     string `json:"contextPath,omitempty"`
	GraphImage      string `json:"graphImage,omitempty"`
	CircuitImage    string `json:"circuitImage,omitempty"`
	CircuitTextPath string `json:"circuitTextPath,omitempty"`
}

// SlideView é a projeção do slide atual da intro.
type SlideView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	BodyMarkdown string   `json:"bodyMarkdown,omitempty"`
	BodyPath     string   `json:"bodyPath,omitempty"`
	Images       []string `json:"images,omitempty"`
}

// TimerView espelha o timer corrente.
type TimerView struct {
	Active    bool `json:"active"`
	Remaining int  `json:"remaining"`
}

// StateSnapshot é o estado completo enviado ao renderer após cada transição.
type StateSnapshot struct {
	SessionID        string     `json:"sessionId"`
	Phase            string     `json:"phase"`
	IntroIndex       int        `json:"introIndex"`
	IntroCount       int        `json:"introCount"`
	RoundIndex       int        `json:"roundIndex"`
	RoundCount       int        `json:"roundCount"`
	StepIndex        int        `json:"stepIndex"`
	StepCount        int        `json:"stepCount"`
	Slide            *SlideView `json:"slide,omitempty"`
	Round            *RoundView `json:"round,omitempty"`
	Step             *StepView  `json:"step,omitempty"`
	SelectedOptionID string     `json:"selectedOptionId,omitempty"`
	HasAnswered      bool       `json:"hasAnswered"`
	Feedback         string     `json:"feedback,omitempty"`
	Timer            TimerView  `json:"timer"`
	Stats            Stats      `json:"stats"`
	GameOverReason   string     `json:"gameOverReason,omitempty"`
	DevMode          bool       `json:"devMode"`
	ContentGen       uint64     `json:"contentGen"`
}

// Snapshot projeta o estado atual para envio ao cliente.
func (s *Session) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := StateSnapshot{
		SessionID:        s.ID,
		Phase:            s.phase,
		IntroIndex:       s.introIndex,
		IntroCount:       len(s.Campaign.IntroSlides),
		RoundIndex:       s.roundIndex,
		RoundCount:       len(s.Campaign.Rounds),
		StepIndex:        s.stepIndex,
		StepCount:        len(s.activeSteps),
		SelectedOptionID: s.selectedOptionID,
		HasAnswered:      s.hasAnswered,
		Timer:            TimerView{Active: s.timerActive, Remaining: s.timerRemaining},
		Stats:            s.stats,
		Feedback:         s.lastFeedback,
		GameOverReason:   s.gameOverReason,
		DevMode:          s.devMode,
		ContentGen:       s.contentGen,
	}

	if s.phase == PhaseIntro && s.introIndex < len(s.Campaign.IntroSlides) {
		slide := s.Campaign.IntroSlides[s.introIndex]
		snap.Slide = &SlideView{
			ID:           slide.ID,
			Title:        slide.Title,
			BodyMarkdown: slide.BodyMarkdown,
			BodyPath:     slide.BodyMarkdownPath,
			Images:       slide.Images,
		}
	}

	if s.phase == PhaseRound && s.roundIndex < len(s.Campaign.Rounds) {
		round := s.Campaign.Rounds[s.roundIndex]
		rv := &RoundView{
			ID:              round.ID,
			Title:           round.Title,
			Difficulty:      round.Difficulty,
			ContextMarkdown: round.ContextMarkdown,
			ContextPath:     round.ContextMarkdownPath,
		}
		if round.Assets != nil {
			rv.GraphImage = round.Assets.GraphImage
			rv.CircuitImage = round.Assets.CircuitImage
			rv.CircuitTextPath = round.Assets.CircuitTextPath
		}
		snap.Round = rv

		if s.stepIndex < len(s.activeSteps) {
			snap.Step = s.stepViewLocked(s.activeSteps[s.stepIndex])
		}
	}

	return snap
}

func (s *Session) stepViewLocked(step campaign.Step) *StepView {
	view := &StepView{
		ID:             step.ID,
		Kind:           step.Kind,
		PromptMarkdown: step.PromptMarkdown,
		PromptPath:     step.PromptMarkdownPath,
	}
	for _, o := range step.Options {
		view.Options = append(view.Options, OptionView{
			ID:             o.ID,
			Label:          o.Label,
			DetailMarkdown: o.DetailMarkdown,
		})
	}
	// Resposta correta e feedback são revelados apenas após responder.
	if s.hasAnswered {
		view.CorrectOptionID = step.Answer.CorrectOptionID
		view.Feedback = s.lastFeedback
	}
	return view
}
