package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
	"github.com/vogiaan1904/ticketbottle-counters/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counters/internal/section"
	"github.com/vogiaan1904/ticketbottle-counters/internal/storage"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

type failingBlob struct {
	err error
}

func (b failingBlob) Get(ctx context.Context) ([]byte, error) { return nil, b.err }
func (b failingBlob) Put(ctx context.Context, data []byte) error { return b.err }
func (b failingBlob) Delete(ctx context.Context) error { return b.err }

func newManager(t *testing.T) *queue.Manager {
	t.Helper()
	cat, err := section.NewCatalog(section.DefaultSections)
	require.NoError(t, err)

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	return queue.NewManager(cat, queue.WithClock(func() time.Time {
		now = now.Add(90 * time.Second)
		return now
	}))
}

func populated(t *testing.T, m *queue.Manager) *models.SystemState {
	t.Helper()
	st := m.NewState()
	for _, req := range []struct {
		sec, name string
		prio      bool
	}{
		{"Bakery", "Ann", false},
		{"Deli", "Bob", false},
		{"Bakery", "Cid", true},
		{"Deli", "Dee", true},
		{"Bakery", "Eve", false},
	} {
		_, _, err := m.RequestTicket(st, req.sec, req.name, req.prio)
		require.NoError(t, err)
		st.CurrentUserName = req.name
	}
	_, err := m.CallNextTicket(st, "Bakery")
	require.NoError(t, err)
	return st
}

func codecs(t *testing.T) []Codec {
	t.Helper()
	var out []Codec
	for _, name := range []string{CodecJSON, CodecCBOR} {
		c, err := CodecByName(name)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, c := range codecs(t) {
		t.Run(c.Name(), func(t *testing.T) {
			m := newManager(t)
			repo := NewSnapshotRepository(storage.NewMemoryBlob(), c, m, logger.InitializeTestZapLogger())

			want := populated(t, m)
			require.NoError(t, repo.Save(ctx, want))

			got, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			require.Len(t, got.History, 1)
			require.NotNil(t, got.History[0].CalledAt)
		})
	}
}

func TestRoundTripThroughFile(t *testing.T) {
	ctx := context.Background()
	blob, err := storage.NewFileBlob(filepath.Join(t.TempDir(), "state", "state.json"))
	require.NoError(t, err)

	m := newManager(t)
	want := populated(t, m)

	repo := NewSnapshotRepository(blob, codecs(t)[0], m, logger.InitializeTestZapLogger())
	require.NoError(t, repo.Save(ctx, want))

	reopened := NewSnapshotRepository(blob, codecs(t)[0], newManager(t), logger.InitializeTestZapLogger())
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_MissingSnapshotGivesFreshState(t *testing.T) {
	m := newManager(t)
	repo := NewSnapshotRepository(storage.NewMemoryBlob(), codecs(t)[0], m, logger.InitializeTestZapLogger())

	st, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, m.NewState(), st)
}

func TestLoad_CorruptSnapshotGivesFreshState(t *testing.T) {
	ctx := context.Background()
	for _, c := range codecs(t) {
		t.Run(c.Name(), func(t *testing.T) {
			blob := storage.NewMemoryBlob()
			require.NoError(t, blob.Put(ctx, []byte("\xff{not a snapshot")))

			m := newManager(t)
			st, err := NewSnapshotRepository(blob, c, m, logger.InitializeTestZapLogger()).Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, m.NewState(), st)
		})
	}
}

func TestLoad_UnreadableBackendReportsPersistenceError(t *testing.T) {
	m := newManager(t)
	repo := NewSnapshotRepository(failingBlob{err: errors.New("disk on fire")}, codecs(t)[0], m, logger.InitializeTestZapLogger())

	st, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, qErrors.ErrPersistence)
	assert.Equal(t, m.NewState(), st)
}

func TestLoad_DiscardsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemoryBlob()
	require.NoError(t, blob.Put(ctx, []byte(`{
		"user": "Ann",
		"queue": [
			{"section": "Deli", "sequence": 4, "name": "Ann", "is_priority": false, "issued_at": "2026-10-16T09:00:00Z"},
			{"section": "Deli", "sequence": "four", "name": "Bob"},
			{"section": "Deli", "sequence": 5, "name": "  "},
			{"section": "Pharmacy", "sequence": 1, "name": "Cid"},
			{"section": "Deli", "sequence": 0, "name": "Dee"}
		],
		"history": [
			{"section": "Bakery", "sequence": 7, "name": "Eve", "issued_at": "2026-10-16T09:00:00Z", "called_at": "2026-10-16T09:05:00Z"}
		],
		"sections": {"Deli": 2, "Pharmacy": 9}
	}`)))

	st, err := NewSnapshotRepository(blob, codecs(t)[0], newManager(t), logger.InitializeTestZapLogger()).Load(ctx)
	require.NoError(t, err)

	require.Len(t, st.Queue, 1)
	assert.Equal(t, "Ann", st.Queue[0].HolderName)
	require.Len(t, st.History, 1)
	assert.Equal(t, "Ann", st.CurrentUserName)

	assert.Equal(t, 5, st.SectionCounters["Deli"])
	assert.Equal(t, 8, st.SectionCounters["Bakery"])
	assert.Equal(t, 1, st.SectionCounters["Checkout"])
	assert.NotContains(t, st.SectionCounters, "Pharmacy")
}

func TestSave_FiltersInvalidRecordsWithoutTouchingCaller(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	repo := NewSnapshotRepository(storage.NewMemoryBlob(), codecs(t)[0], m, logger.InitializeTestZapLogger())

	st := populated(t, m)
	st.Queue = append(st.Queue, models.Ticket{Section: "Deli", Sequence: 0, HolderName: "Ghost"})
	require.NoError(t, repo.Save(ctx, st))
	assert.Len(t, st.Queue, 5)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Queue, 4)
}

func TestSave_BackendFailure(t *testing.T) {
	m := newManager(t)
	repo := NewSnapshotRepository(failingBlob{err: errors.New("read-only")}, codecs(t)[0], m, logger.InitializeTestZapLogger())

	err := repo.Save(context.Background(), m.NewState())
	assert.ErrorIs(t, err, qErrors.ErrPersistence)

	err = repo.Clear(context.Background())
	assert.ErrorIs(t, err, qErrors.ErrPersistence)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	blob := storage.NewMemoryBlob()
	repo := NewSnapshotRepository(blob, codecs(t)[1], m, logger.InitializeTestZapLogger())

	require.NoError(t, repo.Save(ctx, populated(t, m)))
	require.NoError(t, repo.Clear(ctx))

	_, err := blob.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	st, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.NewState(), st)
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("")
	require.NoError(t, err)
	assert.Equal(t, CodecJSON, c.Name())

	_, err = CodecByName("xml")
	assert.Error(t, err)
}
