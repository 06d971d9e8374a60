package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stabsurvival/internal/domain/session"
	"stabsurvival/internal/ports"
)

func TestPushForState_Intro(t *testing.T) {
	hub := &fakeHub{}
	uc := NewContentUseCases(&fakeLoader{}, hub)

	s := session.New("sess-1", campanhaTeste())
	_, err := s.Start()
	require.NoError(t, err)

	uc.PushForState(context.Background(), s)

	payloads := hub.byType("content_resolved")
	require.Len(t, payloads, 1)
	p := payloads[0].(ContentPayload)
	assert.Equal(t, ports.ContentSlideBody, p.Kind)
	assert.Equal(t, "slide-1", p.TargetID)
	assert.Equal(t, "corpo do slide", p.Text)
	assert.Equal(t, s.ContentGen(), p.Gen)
}

func TestPushForState_RoundComStep(t *testing.T) {
	hub := &fakeHub{}
	uc := NewContentUseCases(&fakeLoader{}, hub)

	s := session.New("sess-1", campanhaTeste())
	_, err := s.Start()
	require.NoError(t, err)
	_, err = s.SkipIntro()
	require.NoError(t, err)

	uc.PushForState(context.Background(), s)

	payloads := hub.byType("content_resolved")
	require.Len(t, payloads, 2)

	kinds := []string{
		payloads[0].(ContentPayload).Kind,
		payloads[1].(ContentPayload).Kind,
	}
	assert.Equal(t, []string{ports.ContentRoundContext, ports.ContentStepPrompt}, kinds)
}

func TestPushForState_ForaDeFaseComConteudo(t *testing.T) {
	hub := &fakeHub{}
	uc := NewContentUseCases(&fakeLoader{}, hub)

	// Na home não há alvo de conteúdo.
	s := session.New("sess-1", campanhaTeste())
	uc.PushForState(context.Background(), s)
	assert.Zero(t, hub.count("content_resolved"))
}

func TestPushForState_DescartaResultadoAtrasado(t *testing.T) {
	hub := &fakeHub{}
	loader := &fakeLoader{gate: make(chan struct{}), entered: make(chan struct{})}
	uc := NewContentUseCases(loader, hub)

	s := session.New("sess-1", campanhaTeste())
	_, err := s.Start()
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		uc.PushForState(context.Background(), s)
	}()

	// Espera a busca do slide 1 estar em voo (geração já capturada) e só
	// então navega; a busca continua bloqueada durante a navegação.
	<-loader.entered
	require.NoError(t, s.AdvanceIntro())

	close(loader.gate)
	wg.Wait()

	assert.Zero(t, hub.count("content_resolved"),
		"conteúdo de um alvo antigo não pode sobrescrever o novo")
}

func TestPushInfo(t *testing.T) {
	hub := &fakeHub{}
	uc := NewContentUseCases(&fakeLoader{}, hub)

	c := campanhaTeste()
	c.Info.Markdown = "as regras do jogo"
	c.Info.HintsPath = "content/hints.md"
	s := session.New("sess-1", c)

	uc.PushInfo(context.Background(), s, ports.ContentRules)
	uc.PushInfo(context.Background(), s, ports.ContentHints)

	payloads := hub.byType("content_resolved")
	require.Len(t, payloads, 2)
	assert.Equal(t, "as regras do jogo", payloads[0].(ContentPayload).Text)
	assert.Equal(t, ports.ContentHints, payloads[1].(ContentPayload).Kind)
}
