package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder coleta os callbacks do serviço com segurança para concorrência.
type recorder struct {
	mu      sync.Mutex
	ticks   []int
	expires []string
	done    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{})}
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnTick: func(_ string, remaining int) {
			r.mu.Lock()
			r.ticks = append(r.ticks, remaining)
			r.mu.Unlock()
		},
		OnExpire: func(key string) {
			r.mu.Lock()
			r.expires = append(r.expires, key)
			r.mu.Unlock()
			close(r.done)
		},
	}
}

func (r *recorder) snapshot() ([]int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...), append([]string(nil), r.expires...)
}

func TestStart_ContaAteExpirar(t *testing.T) {
	rec := newRecorder()
	svc := NewService(rec.callbacks(), WithInterval(5*time.Millisecond))
	defer svc.StopAll()

	svc.Start("sess-1", 3)

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer não expirou")
	}

	ticks, expires := rec.snapshot()
	assert.Equal(t, []int{2, 1, 0}, ticks, "o tick zero precede a expiração")
	assert.Equal(t, []string{"sess-1"}, expires, "expira exatamente uma vez")
}

func TestStart_ZeroENoOp(t *testing.T) {
	rec := newRecorder()
	svc := NewService(rec.callbacks(), WithInterval(5*time.Millisecond))
	defer svc.StopAll()

	svc.Start("sess-1", 0)
	svc.Start("sess-1", -10)

	time.Sleep(30 * time.Millisecond)
	ticks, expires := rec.snapshot()
	assert.Empty(t, ticks)
	assert.Empty(t, expires)
}

func TestStop_CancelaSemExpirar(t *testing.T) {
	rec := newRecorder()
	svc := NewService(rec.callbacks(), WithInterval(10*time.Millisecond))

	svc.Start("sess-1", 100)
	svc.Stop("sess-1")
	// Idempotente.
	svc.Stop("sess-1")

	time.Sleep(50 * time.Millisecond)
	_, expires := rec.snapshot()
	assert.Empty(t, expires)
}

func TestStart_ReiniciarCancelaOAnterior(t *testing.T) {
	rec := newRecorder()
	svc := NewService(rec.callbacks(), WithInterval(5*time.Millisecond))
	defer svc.StopAll()

	svc.Start("sess-1", 1000)
	svc.Start("sess-1", 2)

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("a segunda contagem não expirou")
	}

	_, expires := rec.snapshot()
	require.Equal(t, []string{"sess-1"}, expires, "apenas a contagem corrente expira")
}

func TestChavesIndependentes(t *testing.T) {
	rec := newRecorder()
	svc := NewService(rec.callbacks(), WithInterval(5*time.Millisecond))
	defer svc.StopAll()

	svc.Start("sess-a", 2)
	svc.Start("sess-b", 1000)
	svc.Stop("sess-b")

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("sess-a não expirou")
	}

	_, expires := rec.snapshot()
	assert.Equal(t, []string{"sess-a"}, expires)
}
