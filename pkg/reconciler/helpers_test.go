package reconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync/pkg/models"
	"github.com/rostersync/rostersync/pkg/store"
	"github.com/rostersync/rostersync/pkg/store/memory"
)

var fixedNow = time.Date(2016, 1, 2, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// mockBackend is a testify mock of store.Backend.
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Get(ctx context.Context, path string) (any, error) {
	args := m.Called(ctx, path)
	return args.Get(0), args.Error(1)
}

func (m *mockBackend) Set(ctx context.Context, path string, value any) error {
	return m.Called(ctx, path, value).Error(0)
}

func (m *mockBackend) Update(ctx context.Context, path string, fields map[string]any) error {
	return m.Called(ctx, path, fields).Error(0)
}

func (m *mockBackend) Remove(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockBackend) Identity(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// countingBackend counts writes reaching a memory store.
type countingBackend struct {
	*memory.Store
	mu     sync.Mutex
	writes []string
}

func (c *countingBackend) record(op, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, op+" "+path)
}

func (c *countingBackend) Set(ctx context.Context, path string, value any) error {
	c.record("set", path)
	return c.Store.Set(ctx, path, value)
}

func (c *countingBackend) Update(ctx context.Context, path string, fields map[string]any) error {
	c.record("update", path)
	return c.Store.Update(ctx, path, fields)
}

func (c *countingBackend) Remove(ctx context.Context, path string) error {
	c.record("remove", path)
	return c.Store.Remove(ctx, path)
}

func (c *countingBackend) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

func (c *countingBackend) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = nil
}

// fakeFetcher serves fixed snapshots.
type fakeFetcher struct {
	characters  []*models.Character
	professions map[string][]*models.Profession
	reputations map[string][]*models.Reputation
	activities  map[string][]*models.Activity
	err         error
}

func (f *fakeFetcher) Characters(context.Context, string) ([]*models.Character, error) {
	return f.characters, f.err
}

func (f *fakeFetcher) Professions(_ context.Context, character string) ([]*models.Profession, error) {
	return f.professions[character], nil
}

func (f *fakeFetcher) Reputations(_ context.Context, character string) ([]*models.Reputation, error) {
	return f.reputations[character], nil
}

func (f *fakeFetcher) Activities(_ context.Context, character string) ([]*models.Activity, error) {
	return f.activities[character], nil
}

func character(name string, level int) *models.Character {
	c := models.NewCharacter()
	c.SetName(name)
	c.SetClass("warrior")
	c.SetRace("orc")
	c.SetGender("male")
	c.SetLevel(level)
	c.SetGuildRank(1)
	return c
}

func profession(char, name string, level int) *models.Profession {
	p := models.NewProfession()
	p.SetName(name)
	p.SetCharacterName(char)
	p.SetLevel(level)
	return p
}

func reputation(char, name string, level int) *models.Reputation {
	r := models.NewReputation()
	r.SetName(name)
	r.SetCharacterName(char)
	r.SetLevel(level)
	return r
}

func loot(char string, id int, datetime string) *models.Activity {
	a := models.NewActivity()
	a.SetType(models.ActivityLoot)
	a.SetID(id)
	a.SetCharacterName(char)
	a.SetDatetime(datetime)
	return a
}

func bosskill(char string, id, bosskillID int, datetime string) *models.Activity {
	a := bosskillWithoutID(char, id, datetime)
	a.SetBosskillID(bosskillID)
	return a
}

func bosskillWithoutID(char string, id int, datetime string) *models.Activity {
	a := models.NewActivity()
	a.SetType(models.ActivityBosskill)
	a.SetID(id)
	a.SetCharacterName(char)
	a.SetDatetime(datetime)
	return a
}

func newTestReconciler(t *testing.T, backend store.Backend, fetcher Fetcher) *Reconciler {
	t.Helper()
	r, err := New(context.Background(), "Nostalrius", "vanguard",
		store.Root(backend).Child("guilds", "vanguard"), fetcher,
		WithClock(fixedClock))
	require.NoError(t, err)
	return r
}

func read(t *testing.T, s *memory.Store, path string) any {
	t.Helper()
	v, err := s.Get(context.Background(), path)
	require.NoError(t, err)
	return v
}
