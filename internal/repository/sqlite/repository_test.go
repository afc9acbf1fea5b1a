package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counters/internal/section"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

func newManager(t *testing.T) *queue.Manager {
	t.Helper()
	cat, err := section.NewCatalog(section.DefaultSections)
	require.NoError(t, err)

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	return queue.NewManager(cat, queue.WithClock(func() time.Time {
		now = now.Add(1500 * time.Millisecond)
		return now
	}))
}

func newRepo(t *testing.T, path string, m *queue.Manager) *Repository {
	t.Helper()
	r, err := NewRepository(path, m, logger.InitializeTestZapLogger())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestLoad_EmptyDatabase(t *testing.T) {
	m := newManager(t)
	r := newRepo(t, filepath.Join(t.TempDir(), "counters.db"), m)

	st, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, m.NewState(), st)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	path := filepath.Join(t.TempDir(), "nested", "counters.db")
	r := newRepo(t, path, m)

	st := m.NewState()
	for _, req := range []struct {
		sec, name string
		prio      bool
	}{
		{"Deli", "Ann", false},
		{"Bakery", "Bob", false},
		{"Deli", "Cid", true},
		{"Deli", "Dee", false},
		{"Bakery", "Eve", true},
	} {
		_, _, err := m.RequestTicket(st, req.sec, req.name, req.prio)
		require.NoError(t, err)
	}
	st.CurrentUserName = "Eve"
	_, err := m.CallNextTicket(st, "Deli")
	require.NoError(t, err)
	_, err = m.CallNextTicket(st, "Bakery")
	require.NoError(t, err)

	require.NoError(t, r.Save(ctx, st))
	require.NoError(t, r.Save(ctx, st))

	reopened := newRepo(t, path, newManager(t))
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, got)
	assert.Equal(t, []string{"Ann", "Bob", "Dee"}, []string{got.Queue[0].HolderName, got.Queue[1].HolderName, got.Queue[2].HolderName})
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	r := newRepo(t, filepath.Join(t.TempDir(), "counters.db"), m)

	st := m.NewState()
	_, _, err := m.RequestTicket(st, "Checkout", "Ann", false)
	require.NoError(t, err)
	st.CurrentUserName = "Ann"
	require.NoError(t, r.Save(ctx, st))

	require.NoError(t, r.Clear(ctx))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.NewState(), got)
}

func TestLoad_ClosedDatabaseReportsPersistenceError(t *testing.T) {
	m := newManager(t)
	r, err := NewRepository(filepath.Join(t.TempDir(), "counters.db"), m, logger.InitializeTestZapLogger())
	require.NoError(t, err)
	require.NoError(t, r.Close())

	st, err := r.Load(context.Background())
	assert.ErrorIs(t, err, qErrors.ErrPersistence)
	assert.Equal(t, m.NewState(), st)

	assert.ErrorIs(t, r.Save(context.Background(), st), qErrors.ErrPersistence)
}
