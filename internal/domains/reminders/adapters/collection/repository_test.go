package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/memory"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

func newReminder(t *testing.T, id, dueDate string) *domain.Reminder {
	t.Helper()
	r, err := domain.NewReminder(id, "user-1", "pet-1", domain.CareCheckup, "Annual checkup", dueDate)
	require.NoError(t, err)
	return r
}

func TestRepository_EmptyStoreListsNothing(t *testing.T) {
	repo := NewRepository(memory.NewDocumentStore())
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestRepository_PutReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.NewDocumentStore())

	require.NoError(t, repo.Put(ctx, newReminder(t, "a", "2024-03-01"), newReminder(t, "b", "2024-03-02")))
	updated := newReminder(t, "a", "2024-04-01")
	require.NoError(t, updated.Retitle("Moved checkup"))
	require.NoError(t, repo.Put(ctx, updated))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].ID)
	require.Equal(t, "Moved checkup", list[0].Title)
	require.Equal(t, "2024-04-01", list[0].DueDateString())
	require.Equal(t, "b", list[1].ID)
}

func TestRepository_PutRejectsInvalidReminder(t *testing.T) {
	store := memory.NewDocumentStore()
	repo := NewRepository(store)
	broken := newReminder(t, "a", "2024-03-01")
	broken.Recurring = true

	require.ErrorIs(t, repo.Put(context.Background(), broken), domain.ErrMissingInterval)
	raw, err := store.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	require.Nil(t, raw)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	repo := NewRepository(memory.NewDocumentStore())
	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DeleteUnknownLeavesBytesUntouched(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	repo := NewRepository(store)
	require.NoError(t, repo.Put(ctx, newReminder(t, "a", "2024-03-01")))
	before, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "nonexistent-id")
	require.NoError(t, err)
	require.False(t, deleted)

	after, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestRepository_DeleteRemoves(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.NewDocumentStore())
	require.NoError(t, repo.Put(ctx, newReminder(t, "a", "2024-03-01"), newReminder(t, "b", "2024-03-02")))

	deleted, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	require.True(t, deleted)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "b", list[0].ID)
}

func TestRepository_StoreFailureIsStorageUnavailable(t *testing.T) {
	store := memory.NewDocumentStore()
	store.FailWith(errors.New("quota exceeded"))
	repo := NewRepository(store)

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, ports.ErrStorageUnavailable)

	err = repo.Put(context.Background(), newReminder(t, "a", "2024-03-01"))
	require.ErrorIs(t, err, ports.ErrStorageUnavailable)
}

func TestRepository_MalformedCollectionFailsWholeLoad(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"not json":       `{"id":`,
		"bad due date":   `[{"id":"a","userId":"u","petId":"p","type":"vaccine","title":"t","dueDate":"03/01/2024"}]`,
		"unknown type":   `[{"id":"a","userId":"u","petId":"p","type":"bath","title":"t","dueDate":"2024-03-01"}]`,
		"no interval":    `[{"id":"a","userId":"u","petId":"p","type":"vaccine","title":"t","dueDate":"2024-03-01","recurring":true}]`,
		"one bad of two": `[{"id":"a","userId":"u","petId":"p","type":"vaccine","title":"t","dueDate":"2024-03-01"},{"id":"b"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := memory.NewDocumentStore()
			require.NoError(t, store.Set(ctx, DefaultKey, []byte(raw)))
			_, err := NewRepository(store).List(ctx)
			require.ErrorIs(t, err, ErrMalformedCollection)
			require.ErrorIs(t, err, ports.ErrStorageUnavailable)
		})
	}
}

func TestRepository_StoredShape(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	repo := NewRepository(store, WithKey("tenant-a.reminders"))
	r := newReminder(t, "a", "2024-03-01")
	require.NoError(t, r.SetRecurrence(true, domain.IntervalWeekly))
	require.NoError(t, repo.Put(ctx, r, newReminder(t, "b", "2024-03-02")))

	raw, err := store.Get(ctx, "tenant-a.reminders")
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"id":"a","userId":"user-1","petId":"pet-1","type":"checkup","title":"Annual checkup","dueDate":"2024-03-01","completed":false,"recurring":true,"recurringInterval":"weekly"},
		{"id":"b","userId":"user-1","petId":"pet-1","type":"checkup","title":"Annual checkup","dueDate":"2024-03-02","completed":false,"recurring":false}
	]`, string(raw))
}
