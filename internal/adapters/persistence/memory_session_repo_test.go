package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stabsurvival/internal/domain/campaign"
	"stabsurvival/internal/domain/session"
)

func novaCampanha() *campaign.Campaign {
	return &campaign.Campaign{Rounds: []campaign.Round{{ID: "r1"}}}
}

func TestRepo_SaveEFind(t *testing.T) {
	repo := NewInMemorySessionRepository()
	s := session.New("sess-1", novaCampanha())

	require.NoError(t, repo.Save(s))

	found, err := repo.FindByID("sess-1")
	require.NoError(t, err)
	assert.Same(t, s, found)
}

func TestRepo_FindInexistente(t *testing.T) {
	repo := NewInMemorySessionRepository()
	found, err := repo.FindByID("fantasma")
	require.NoError(t, err, "ausência não é erro")
	assert.Nil(t, found)
}

func TestRepo_Delete(t *testing.T) {
	repo := NewInMemorySessionRepository()
	require.NoError(t, repo.Save(session.New("sess-1", novaCampanha())))
	require.NoError(t, repo.Delete("sess-1"))

	found, err := repo.FindByID("sess-1")
	require.NoError(t, err)
	assert.Nil(t, found)

	// Delete de novo é inofensivo.
	assert.NoError(t, repo.Delete("sess-1"))
}

func TestRepo_EvictIdle(t *testing.T) {
	repo := NewInMemorySessionRepository()

	ociosa := session.New("ociosa", novaCampanha())
	ativa := session.New("ativa", novaCampanha())
	require.NoError(t, repo.Save(ociosa))
	require.NoError(t, repo.Save(ativa))

	time.Sleep(20 * time.Millisecond)
	ativa.Touch()

	removed := repo.EvictIdle(10 * time.Millisecond)
	assert.Equal(t, 1, removed)

	found, _ := repo.FindByID("ociosa")
	assert.Nil(t, found)
	found, _ = repo.FindByID("ativa")
	assert.NotNil(t, found)
}
