package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campanhaMinima = `{
	"rounds": [
		{
			"id": "round-1",
			"title": "Primeiro",
			"steps": [
				{
					"id": "step-1",
					"options": [
						{"id": "a", "label": "A"},
						{"id": "b", "label": "B"}
					],
					"answer": {"correct_option_id": "a"}
				}
			]
		}
	]
}`

func TestDecode_AplicaPadroes(t *testing.T) {
	c, err := Decode([]byte(campanhaMinima))
	require.NoError(t, err)

	assert.Equal(t, DefaultSchemaVersion, c.SchemaVersion)
	assert.Equal(t, DefaultTitle, c.Meta.Title)
	assert.Equal(t, DefaultTheme, c.Meta.Theme)
	assert.Equal(t, DefaultAssetsBase, c.Meta.AssetsBase)

	assert.True(t, c.Config.Timer.Enabled, "timer habilitado por padrão")
	assert.Equal(t, DefaultTimerSeconds, c.Config.Timer.SecondsPerStep)
	assert.False(t, c.Config.Cheat.Enabled, "cheat desabilitado por padrão")
	assert.False(t, c.Config.DevMode.Enabled)

	require.Len(t, c.Rounds, 1)
	assert.Equal(t, 1, c.Rounds[0].Difficulty, "dificuldade padrão")
}

func TestDecode_EnabledFalseExplicito(t *testing.T) {
	// false explícito não pode ser confundido com campo ausente.
	doc := `{
		"config": {"timer": {"enabled": false}},
		"rounds": [
			{"id": "r1", "steps": [
				{"id": "s1", "options": [{"id": "a", "label": "A"}], "answer": {"correct_option_id": "a"}}
			]}
		]
	}`
	c, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.False(t, c.Config.Timer.Enabled)
	assert.Equal(t, DefaultTimerSeconds, c.Config.Timer.SecondsPerStep)
}

func TestDecode_SemRounds(t *testing.T) {
	_, err := Decode([]byte(`{"meta": {"title": "X"}}`))
	assert.ErrorIs(t, err, ErrSemRounds)
}

func TestDecode_RoundsVazio(t *testing.T) {
	_, err := Decode([]byte(`{"rounds": []}`))
	assert.ErrorIs(t, err, ErrRoundsVazio)
}

func TestDecode_JSONInvalido(t *testing.T) {
	_, err := Decode([]byte(`{"rounds": [`))
	assert.ErrorIs(t, err, ErrJSONInvalido)
}

func TestDecode_OpcaoDuplicada(t *testing.T) {
	doc := `{"rounds": [
		{"id": "r1", "steps": [
			{"id": "s1", "options": [{"id": "a", "label": "1"}, {"id": "a", "label": "2"}], "answer": {"correct_option_id": "a"}}
		]}
	]}`
	_, err := Decode([]byte(doc))
	assert.ErrorIs(t, err, ErrOpcaoDuplicada)
}

func TestDecode_RespostaInvalida(t *testing.T) {
	doc := `{"rounds": [
		{"id": "r1", "steps": [
			{"id": "s1", "options": [{"id": "a", "label": "A"}], "answer": {"correct_option_id": "zzz"}}
		]}
	]}`
	_, err := Decode([]byte(doc))
	assert.ErrorIs(t, err, ErrRespostaInvalida)
}

func TestDecode_StepSemAlternativa(t *testing.T) {
	doc := `{"rounds": [
		{"id": "r1", "steps": [
			{"id": "s1", "options": [], "answer": {"correct_option_id": "a"}}
		]}
	]}`
	_, err := Decode([]byte(doc))
	assert.ErrorIs(t, err, ErrStepSemAlternativa)
}

func TestDecode_FeedbackParcial(t *testing.T) {
	doc := `{"rounds": [
		{"id": "r1", "steps": [
			{
				"id": "s1",
				"options": [{"id": "a", "label": "A"}],
				"answer": {"correct_option_id": "a"},
				"feedback": {"on_correct_markdown": "Mandou bem"}
			}
		]}
	]}`
	c, err := Decode([]byte(doc))
	require.NoError(t, err)

	fb := c.Rounds[0].Steps[0].Feedback
	require.NotNil(t, fb)
	assert.Equal(t, "Mandou bem", fb.OnCorrectMarkdown)
	assert.Equal(t, DefaultWrongFeedback, fb.OnWrongMarkdown, "lado ausente recebe o padrão")
}

func TestDecode_TimerDeStep(t *testing.T) {
	doc := `{"rounds": [
		{"id": "r1", "steps": [
			{
				"id": "s1",
				"options": [{"id": "a", "label": "A"}],
				"answer": {"correct_option_id": "a"},
				"timer": {"seconds": 15}
			}
		]}
	]}`
	c, err := Decode([]byte(doc))
	require.NoError(t, err)

	st := c.Rounds[0].Steps[0].Timer
	require.NotNil(t, st)
	assert.True(t, st.Enabled, "enabled ausente no timer do step vale true")
	assert.Equal(t, 15, st.Seconds)
}
