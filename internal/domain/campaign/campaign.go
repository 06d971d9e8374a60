package campaign

import (
	"sort"
)

// Status possíveis de um Step
const (
	StepStatusActive   = "active"
	StepStatusDisabled = "disabled"
	StepStatusTesting  = "testing"
)

// Valores padrão do schema v1.0 (espelham o gerador de campanhas).
const (
	DefaultSchemaVersion   = "1.0"
	DefaultTimerSeconds    = 30
	DefaultTitle           = "Stabilizer Survival"
	DefaultTheme           = "terminal"
	DefaultAssetsBase      = "assets"
	DefaultCorrectFeedback = "Correct!"
	DefaultWrongFeedback   = "Wrong!"
)

// Option representa uma alternativa de resposta de um Step.
type Option struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	DetailMarkdown string `json:"detail_markdown,omitempty"`
}

// StepAnswer indica a alternativa correta de um Step.
type StepAnswer struct {
	CorrectOptionID string `json:"correct_option_id"`
}

// StepTimer é a configuração de timer específica de um Step.
// Quando ausente, vale a configuração global da campanha.
type StepTimer struct {
	Enabled bool `json:"enabled"`
	Seconds int  `json:"seconds"`
}

// StepFeedback contém as mensagens de acerto/erro.
type StepFeedback struct {
	OnCorrectMarkdown string `json:"on_correct_markdown"`
	OnWrongMarkdown   string `json:"on_wrong_markdown"`
}

// Step representa uma pergunta de múltipla escolha dentro de um Round.
type Step struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Status string `json:"status,omitempty"` // active | disabled | testing (ausente = active)

	// O prompt pode vir inline ou por referência a um fragmento externo.
	PromptMarkdown     string `json:"prompt_markdown,omitempty"`
	PromptMarkdownPath string `json:"prompt_markdown_path,omitempty"`

	Options  []Option      `json:"options"`
	Answer   StepAnswer    `json:"answer"`
	Feedback *StepFeedback `json:"feedback,omitempty"`
	Timer    *StepTimer    `json:"timer,omitempty"`
}

// RoundAssets agrupa os assets visuais de um Round.
type RoundAssets struct {
	CircuitImage    string `json:"circuit_image,omitempty"`
	GraphImage      string `json:"graph_image,omitempty"`
	CircuitTextPath string `json:"circuit_text_path,omitempty"`
}

// Round representa um grupo temático de Steps com contexto próprio.
type Round struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty int    `json:"difficulty"`

	ContextMarkdown     string `json:"context_markdown,omitempty"`
	ContextMarkdownPath string `json:"context_markdown_path,omitempty"`

	Assets *RoundAssets `json:"assets,omitempty"`
	Steps  []Step       `json:"steps"`
}

// IntroSlide é um slide exibido antes do jogo começar.
type IntroSlide struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	BodyMarkdown     string `json:"body_markdown,omitempty"`
	BodyMarkdownPath string `json:"body_markdown_path,omitempty"`

	Images []string `json:"images,omitempty"`
}

// TimerConfig é a configuração global de timer.
type TimerConfig struct {
	Enabled        bool `json:"enabled"`
	SecondsPerStep int  `json:"seconds_per_step"`
}

// CheatConfig habilita o código de pulo de round.
type CheatConfig struct {
	Enabled bool   `json:"enabled"`
	Code    string `json:"code"`
}

// DevModeConfig habilita o modo desenvolvedor protegido por senha.
// A senha pode ser um hash bcrypt ou texto plano (apenas para desenvolvimento).
type DevModeConfig struct {
	Enabled  bool   `json:"enabled"`
	Password string `json:"password"`
}

// Config agrupa as configurações da campanha.
type Config struct {
	Timer   TimerConfig   `json:"timer"`
	Cheat   CheatConfig   `json:"cheat"`
	DevMode DevModeConfig `json:"dev_mode"`
}

// Meta contém os metadados da campanha.
type Meta struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	Theme      string `json:"theme,omitempty"`
	AssetsBase string `json:"assets_base"`
}

// Info contém o conteúdo de regras e dicas (inline ou por referência).
type Info struct {
	Markdown      string   `json:"markdown,omitempty"`
	MarkdownPath  string   `json:"markdown_path,omitempty"`
	HintsMarkdown string   `json:"hints_markdown,omitempty"`
	HintsPath     string   `json:"hints_path,omitempty"`
	Images        []string `json:"images,omitempty"`
}

// Campaign é o documento completo de uma campanha (schema v1.0).
// Imutável após o carregamento: nenhum componente altera a campanha.
type Campaign struct {
	SchemaVersion string       `json:"schema_version"`
	Meta          Meta         `json:"meta"`
	Config        Config       `json:"config"`
	Info          Info         `json:"info"`
	IntroSlides   []IntroSlide `json:"intro_slides"`
	Rounds        []Round      `json:"rounds"`
}

// IsActive indica se o step participa do jogo (status ausente = active).
func (s Step) IsActive() bool {
	return s.Status == "" || s.Status == StepStatusActive
}

// FindOption busca uma alternativa pelo ID. Retorna false se não existir.
func (s Step) FindOption(id string) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// FeedbackFor retorna a mensagem de feedback para acerto ou erro,
// com os padrões do schema quando ausente.
func (s Step) FeedbackFor(correct bool) string {
	if s.Feedback != nil {
		if correct {
			return s.Feedback.OnCorrectMarkdown
		}
		return s.Feedback.OnWrongMarkdown
	}
	if correct {
		return DefaultCorrectFeedback
	}
	return DefaultWrongFeedback
}

// ActiveSteps filtra os steps jogáveis de um round e os ordena
// lexicograficamente por ID. Calculado na entrada do round.
func (r Round) ActiveSteps() []Step {
	steps := make([]Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s.IsActive() {
			steps = append(steps, s)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].ID < steps[j].ID })
	return steps
}

// TimerSeconds calcula a duração do timer de um step: override do step,
// senão padrão da campanha, senão a constante de fallback.
// Retorna 0 quando o timer está desabilitado.
func (c *Campaign) TimerSeconds(s Step) int {
	if s.Timer != nil {
		if !s.Timer.Enabled {
			return 0
		}
		if s.Timer.Seconds > 0 {
			return s.Timer.Seconds
		}
		return DefaultTimerSeconds
	}
	if !c.Config.Timer.Enabled {
		return 0
	}
	if c.Config.Timer.SecondsPerStep > 0 {
		return c.Config.Timer.SecondsPerStep
	}
	return DefaultTimerSeconds
}

// TotalActiveSteps soma os steps jogáveis de todos os rounds.
func (c *Campaign) TotalActiveSteps() int {
	total := 0
	for _, r := range c.Rounds {
		total += len(r.ActiveSteps())
	}
	return total
}
