package usecases

import (
	"context"
	"sync"

	"stabsurvival/internal/domain/campaign"
	"stabsurvival/internal/ports"
)

// fakeHub registra as mensagens enviadas, na ordem.
type fakeHub struct {
	mu   sync.Mutex
	msgs []sentMsg
}

type sentMsg struct {
	sessionID string
	envelope  map[string]interface{}
}

func (h *fakeHub) SendToSession(sessionID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, sentMsg{sessionID: sessionID, envelope: message.(map[string]interface{})})
}

// byType retorna os payloads das mensagens do tipo dado.
func (h *fakeHub) byType(msgType string) []interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []interface{}
	for _, m := range h.msgs {
		if m.envelope["type"] == msgType {
			out = append(out, m.envelope["payload"])
		}
	}
	return out
}

func (h *fakeHub) count(msgType string) int {
	return len(h.byType(msgType))
}

// fakeLoader resolve conteúdo fixo; gate, quando definido, bloqueia cada
// resolução até o teste liberar. entered, quando definido, é fechado na
// primeira resolução para o teste saber que a busca está em voo.
type fakeLoader struct {
	gate    chan struct{}
	entered chan struct{}
	once    sync.Once

	mu    sync.Mutex
	calls []ports.ContentRequest
}

func (l *fakeLoader) Resolve(_ context.Context, req ports.ContentRequest) ports.ContentResult {
	if l.entered != nil {
		l.once.Do(func() { close(l.entered) })
	}
	if l.gate != nil {
		<-l.gate
	}
	l.mu.Lock()
	l.calls = append(l.calls, req)
	l.mu.Unlock()

	if req.Inline != "" {
		return ports.ContentResult{Text: req.Inline, Title: req.StaticTitle}
	}
	return ports.ContentResult{Text: "conteúdo de " + req.Path, Title: req.StaticTitle}
}

// fakeTimers registra as diretivas de timer aplicadas.
type fakeTimers struct {
	mu     sync.Mutex
	starts []int
	stops  int
}

func (f *fakeTimers) Start(_ string, seconds int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, seconds)
}

func (f *fakeTimers) Stop(_ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeTimers) StopAll() {}

// fakeTokens emite tokens previsíveis para os testes de sessão.
type fakeTokens struct{}

func (fakeTokens) GenerateToken(sessionID string) (string, int64, error) {
	return "token-" + sessionID, 3600, nil
}

func (fakeTokens) ValidateToken(token string) (string, error) {
	return token[len("token-"):], nil
}

// fixedCampaign implementa CampaignProvider com um snapshot fixo.
type fixedCampaign struct{ c *campaign.Campaign }

func (f fixedCampaign) Current() *campaign.Campaign { return f.c }

// campanhaTeste: um slide de intro e um round com dois steps ("a" correto
// no primeiro, "b" no segundo).
func campanhaTeste() *campaign.Campaign {
	opcoes := []campaign.Option{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}
	return &campaign.Campaign{
		Config: campaign.Config{
			Timer:   campaign.TimerConfig{Enabled: true, SecondsPerStep: 30},
			DevMode: campaign.DevModeConfig{Enabled: true, Password: "letmein"},
		},
		IntroSlides: []campaign.IntroSlide{
			{ID: "slide-1", Title: "Bem-vindo", BodyMarkdown: "corpo do slide"},
			{ID: "slide-2", Title: "Regras", BodyMarkdownPath: "content/slides/s2.md"},
		},
		Rounds: []campaign.Round{
			{ID: "r1", Title: "Round 1", ContextMarkdownPath: "content/rounds/r1.md", Steps: []campaign.Step{
				{ID: "s1", PromptMarkdown: "pergunta 1", Options: opcoes, Answer: campaign.StepAnswer{CorrectOptionID: "a"}},
				{ID: "s2", PromptMarkdown: "pergunta 2", Options: opcoes, Answer: campaign.StepAnswer{CorrectOptionID: "b"}},
			}},
		},
	}
}
