package usecases

import (
	"context"

	"stabsurvival/internal/domain/session"
	"stabsurvival/internal/ports"
)

// ContentPayload é o conteúdo resolvido enviado ao renderer.
type ContentPayload struct {
	Kind     string `json:"kind"`
	TargetID string `json:"targetId,omitempty"`
	Gen      uint64 `json:"gen"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text"`
}

// ContentUseCases resolve os fragmentos de conteúdo do alvo visível e os
// empurra para o cliente, descartando resultados que chegam depois de o
// jogador ter navegado para outro alvo.
type ContentUseCases struct {
	loader ports.ContentLoader
	hub    ports.RealTimeHub
}

func NewContentUseCases(loader ports.ContentLoader, hub ports.RealTimeHub) *ContentUseCases {
	return &ContentUseCases{loader: loader, hub: hub}
}

// PushForState resolve o conteúdo referente ao estado visível da sessão.
// O token de geração capturado antes da busca é comparado de novo antes do
// envio: se a sessão navegou nesse meio-tempo, o resultado é descartado.
// Pensado para rodar em goroutine própria; as buscas podem bloquear.
func (uc *ContentUseCases) PushForState(ctx context.Context, s *session.Session) {
	gen := s.ContentGen()

	for _, item := range uc.requestsFor(s) {
		result := uc.loader.Resolve(ctx, item.req)
		if s.ContentGen() != gen {
			// Alvo mudou durante a busca: resultado atrasado não pode
			// sobrescrever o conteúdo mais novo.
			return
		}
		uc.hub.SendToSession(s.ID, map[string]interface{}{
			"type": "content_resolved",
			"payload": ContentPayload{
				Kind:     item.req.Kind,
				TargetID: item.targetID,
				Gen:      gen,
				Title:    result.Title,
				Text:     result.Text,
			},
		})
	}
}

// PushInfo resolve regras ou dicas para o overlay de informações. O overlay
// é ortogonal à fase: não participa do race guard de navegação.
func (uc *ContentUseCases) PushInfo(ctx context.Context, s *session.Session, kind string) {
	info := s.Campaign.Info

	req := ports.ContentRequest{Kind: ports.ContentRules, Inline: info.Markdown, Path: info.MarkdownPath}
	if kind == ports.ContentHints {
		req = ports.ContentRequest{Kind: ports.ContentHints, Inline: info.HintsMarkdown, Path: info.HintsPath}
	}

	result := uc.loader.Resolve(ctx, req)
	uc.hub.SendToSession(s.ID, map[string]interface{}{
		"type": "content_resolved",
		"payload": ContentPayload{
			Kind: req.Kind,
			Text: result.Text,
		},
	})
}

type contentItem struct {
	targetID string
	req      ports.ContentRequest
}

func (uc *ContentUseCases) requestsFor(s *session.Session) []contentItem {
	switch s.Phase() {
	case session.PhaseIntro:
		slide, ok := s.CurrentSlide()
		if !ok {
			return nil
		}
		return []contentItem{{
			targetID: slide.ID,
			req: ports.ContentRequest{
				Kind:        ports.ContentSlideBody,
				Inline:      slide.BodyMarkdown,
				Path:        slide.BodyMarkdownPath,
				StaticTitle: slide.Title,
			},
		}}

	case session.PhaseRound:
		round, ok := s.CurrentRound()
		if !ok {
			return nil
		}
		items := []contentItem{{
			targetID: round.ID,
			req: ports.ContentRequest{
				Kind:   ports.ContentRoundContext,
				Inline: round.ContextMarkdown,
				Path:   round.ContextMarkdownPath,
			},
		}}
		if round.Assets != nil && round.Assets.CircuitTextPath != "" {
			items = append(items, contentItem{
				targetID: round.ID,
				req: ports.ContentRequest{
					Kind: ports.ContentCircuitText,
					Path: round.Assets.CircuitTextPath,
				},
			})
		}
		if step, ok := s.CurrentStep(); ok {
			items = append(items, contentItem{
				targetID: step.ID,
				req: ports.ContentRequest{
					Kind:   ports.ContentStepPrompt,
					Inline: step.PromptMarkdown,
					Path:   step.PromptMarkdownPath,
				},
			})
		}
		return items

	default:
		return nil
	}
}
