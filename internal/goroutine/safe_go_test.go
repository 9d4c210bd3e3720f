package goroutine

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEntries(hook *test.Hook, n int) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(hook.AllEntries()) >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	log, hook := test.NewNullLogger()
	rh := NewRecoveryHandler(log)

	rh.SafeGo("worker", func() { panic("boom") })

	require.True(t, waitEntries(hook, 1))
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "worker", entry.Data["goroutine"])
	assert.Equal(t, "boom", entry.Data["panic"])
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	log, hook := test.NewNullLogger()
	rh := NewRecoveryHandler(log)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	got := make(chan interface{}, 1)

	rh.SafeGoWithContext(ctx, "ctx", func(ctx context.Context) { got <- ctx.Value(key{}) })

	select {
	case v := <-got:
		assert.Equal(t, "v", v)
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
	assert.Empty(t, hook.AllEntries())
}
