package campaign

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrSemRounds          = errors.New("campanha sem o campo obrigatório 'rounds'")
	ErrRoundsVazio        = errors.New("a campanha deve ter pelo menos um round")
	ErrJSONInvalido       = errors.New("documento de campanha não é um JSON válido")
	ErrOpcaoDuplicada     = errors.New("IDs de alternativas duplicados dentro de um step")
	ErrRespostaInvalida   = errors.New("a resposta correta não referencia uma alternativa existente")
	ErrStepSemAlternativa = errors.New("o step deve ter pelo menos uma alternativa")
)

// Estruturas intermediárias de decodificação. Espelham o schema v1.0 com
// ponteiros nos campos opcionais, para distinguir "ausente" de "zero"
// antes de aplicar os padrões (enabled=true, seconds=30 etc).
type timerDoc struct {
	Enabled *bool `json:"enabled"`
	Seconds *int  `json:"seconds"`
}

type timerConfigDoc struct {
	Enabled        *bool `json:"enabled"`
	SecondsPerStep *int  `json:"seconds_per_step"`
}

type configDoc struct {
	Timer   *timerConfigDoc `json:"timer"`
	Cheat   *CheatConfig    `json:"cheat"`
	DevMode *DevModeConfig  `json:"dev_mode"`
}

type metaDoc struct {
	Title      *string `json:"title"`
	Subtitle   string  `json:"subtitle"`
	Theme      *string `json:"theme"`
	AssetsBase *string `json:"assets_base"`
}

type feedbackDoc struct {
	OnCorrectMarkdown *string `json:"on_correct_markdown"`
	OnWrongMarkdown   *string `json:"on_wrong_markdown"`
}

type stepDoc struct {
	ID                 string       `json:"id"`
	Kind               string       `json:"kind"`
	Status             string       `json:"status"`
	PromptMarkdown     string       `json:"prompt_markdown"`
	PromptMarkdownPath string       `json:"prompt_markdown_path"`
	Options            []Option     `json:"options"`
	Answer             StepAnswer   `json:"answer"`
	Feedback           *feedbackDoc `json:"feedback"`
	Timer              *timerDoc    `json:"timer"`
}

type roundDoc struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Difficulty          *int         `json:"difficulty"`
	ContextMarkdown     string       `json:"context_markdown"`
	ContextMarkdownPath string       `json:"context_markdown_path"`
	Assets              *RoundAssets `json:"assets"`
	Steps               []stepDoc    `json:"steps"`
}

type campaignDoc struct {
	SchemaVersion string       `json:"schema_version"`
	Meta          *metaDoc     `json:"meta"`
	Config        *configDoc   `json:"config"`
	Info          Info         `json:"info"`
	IntroSlides   []IntroSlide `json:"intro_slides"`
	Rounds        *[]roundDoc  `json:"rounds"`
}

// Decode interpreta o documento JSON de campanha aplicando os padrões do
// schema e valida os invariantes estruturais. Um documento malformado é
// erro fatal: nenhum jogo parcial é iniciado.
func Decode(data []byte) (*Campaign, error) {
	var doc campaignDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONInvalido, err)
	}

	if doc.Rounds == nil {
		return nil, ErrSemRounds
	}
	if len(*doc.Rounds) == 0 {
		return nil, ErrRoundsVazio
	}

	c := &Campaign{
		SchemaVersion: orDefault(doc.SchemaVersion, DefaultSchemaVersion),
		Meta:          metaFromDoc(doc.Meta),
		Config:        configFromDoc(doc.Config),
		Info:          doc.Info,
		IntroSlides:   doc.IntroSlides,
	}
	for _, rd := range *doc.Rounds {
		c.Rounds = append(c.Rounds, roundFromDoc(rd))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func metaFromDoc(d *metaDoc) Meta {
	m := Meta{Title: DefaultTitle, Theme: DefaultTheme, AssetsBase: DefaultAssetsBase}
	if d == nil {
		return m
	}
	if d.Title != nil {
		m.Title = *d.Title
	}
	m.Subtitle = d.Subtitle
	if d.Theme != nil {
		m.Theme = *d.Theme
	}
	if d.AssetsBase != nil {
		m.AssetsBase = *d.AssetsBase
	}
	return m
}

func configFromDoc(d *configDoc) Config {
	cfg := Config{Timer: TimerConfig{Enabled: true, SecondsPerStep: DefaultTimerSeconds}}
	if d == nil {
		return cfg
	}
	if d.Timer != nil {
		if d.Timer.Enabled != nil {
			cfg.Timer.Enabled = *d.Timer.Enabled
		}
		if d.Timer.SecondsPerStep != nil {
			cfg.Timer.SecondsPerStep = *d.Timer.SecondsPerStep
		}
	}
	if d.Cheat != nil {
		cfg.Cheat = *d.Cheat
	}
	if d.DevMode != nil {
		cfg.DevMode = *d.DevMode
	}
	return cfg
}

func roundFromDoc(d roundDoc) Round {
	r := Round{
		ID:                  d.ID,
		Title:               d.Title,
		Difficulty:          1,
		ContextMarkdown:     d.ContextMarkdown,
		ContextMarkdownPath: d.ContextMarkdownPath,
		Assets:              d.Assets,
	}
	if d.Difficulty != nil {
		r.Difficulty = *d.Difficulty
	}
	for _, sd := range d.Steps {
		r.Steps = append(r.Steps, stepFromDoc(sd))
	}
	return r
}

func stepFromDoc(d stepDoc) Step {
	s := Step{
		ID:                 d.ID,
		Kind:               d.Kind,
		Status:             d.Status,
		PromptMarkdown:     d.PromptMarkdown,
		PromptMarkdownPath: d.PromptMarkdownPath,
		Options:            d.Options,
		Answer:             d.Answer,
	}
	if d.Feedback != nil {
		fb := StepFeedback{
			OnCorrectMarkdown: DefaultCorrectFeedback,
			OnWrongMarkdown:   DefaultWrongFeedback,
		}
		if d.Feedback.OnCorrectMarkdown != nil {
			fb.OnCorrectMarkdown = *d.Feedback.OnCorrectMarkdown
		}
		if d.Feedback.OnWrongMarkdown != nil {
			fb.OnWrongMarkdown = *d.Feedback.OnWrongMarkdown
		}
		s.Feedback = &fb
	}
	if d.Timer != nil {
		t := StepTimer{Enabled: true, Seconds: DefaultTimerSeconds}
		if d.Timer.Enabled != nil {
			t.Enabled = *d.Timer.Enabled
		}
		if d.Timer.Seconds != nil {
			t.Seconds = *d.Timer.Seconds
		}
		s.Timer = &t
	}
	return s
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Validate verifica os invariantes do documento: IDs de alternativas únicos
// por step e resposta correta apontando para uma alternativa existente.
// A consistência física do circuito é responsabilidade do gerador, não daqui.
func (c *Campaign) Validate() error {
	if len(c.Rounds) == 0 {
		return ErrRoundsVazio
	}
	for _, r := range c.Rounds {
		for _, s := range r.Steps {
			if len(s.Options) == 0 {
				return fmt.Errorf("%w (round %q, step %q)", ErrStepSemAlternativa, r.ID, s.ID)
			}
			seen := make(map[string]bool, len(s.Options))
			for _, o := range s.Options {
				if seen[o.ID] {
					return fmt.Errorf("%w (round %q, step %q, opção %q)", ErrOpcaoDuplicada, r.ID, s.ID, o.ID)
				}
				seen[o.ID] = true
			}
			if !seen[s.Answer.CorrectOptionID] {
				return fmt.Errorf("%w (round %q, step %q, resposta %q)", ErrRespostaInvalida, r.ID, s.ID, s.Answer.CorrectOptionID)
			}
		}
	}
	return nil
}
