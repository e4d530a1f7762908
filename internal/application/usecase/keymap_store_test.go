package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/domain/repository"
	repomocks "github.com/bnema/tapmap/internal/domain/repository/mocks"
	"github.com/bnema/tapmap/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func keymapAt(x, y float64, combo ...entity.KeyCode) *entity.Keymap {
	km := entity.NewKeymap(entity.Vec{X: x, Y: y}, entity.Vec{X: 0.05, Y: 0.05})
	km.Combo = combo
	return km
}

func TestKeymapStore_Load_UsesStoredKeymaps(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockKeymapRepository(t)

	stored := []*entity.Keymap{keymapAt(0.1, 0.1, 'A'), keymapAt(0.2, 0.2, 'B')}
	repo.EXPECT().Load(mock.Anything).Return(stored, nil)

	store := usecase.NewKeymapStore(repo)
	require.NoError(t, store.Load(ctx, usecase.DefaultKeymaps(entity.NativeSize{Width: 1280, Height: 720})))

	assert.Equal(t, 2, store.Len())
	assert.Same(t, stored[0], store.At(0))
	assert.False(t, store.Dirty())
}

func TestKeymapStore_Load_SeedsDefaultsWhenNothingStored(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockKeymapRepository(t)

	repo.EXPECT().Load(mock.Anything).Return(nil, repository.ErrKeymapsNotFound)
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(kms []*entity.Keymap) bool {
		return len(kms) == 2
	})).Return(nil)

	store := usecase.NewKeymapStore(repo)
	seed := usecase.DefaultKeymaps(entity.NativeSize{Width: 1280, Height: 720})
	require.NoError(t, store.Load(ctx, seed))

	require.Equal(t, 2, store.Len())
	assert.Equal(t, entity.KeyCombo{entity.KeyShift, 'A'}, store.At(0).Combo)
	assert.Equal(t, entity.KeyCombo{'A'}, store.At(1).Combo)
	assert.NotSame(t, seed[0], store.At(0), "seed must be cloned")
	assert.InDelta(t, 400.0/1280, store.At(1).Position.X, 1e-12)
}

func TestKeymapStore_Load_SeedSaveFailureKeepsDefaults(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockKeymapRepository(t)

	repo.EXPECT().Load(mock.Anything).Return(nil, repository.ErrKeymapsNotFound)
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("read-only fs")).Once()

	store := usecase.NewKeymapStore(repo)
	require.NoError(t, store.Load(ctx, usecase.DefaultKeymaps(entity.NativeSize{Width: 1280, Height: 720})))

	assert.Equal(t, 2, store.Len())
	assert.True(t, store.Dirty())

	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(kms []*entity.Keymap) bool {
		return len(kms) == 2
	})).Return(nil).Once()
	require.NoError(t, store.Commit(ctx))
	assert.False(t, store.Dirty())
}

func TestKeymapStore_Load_PropagatesRepoError(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockKeymapRepository(t)
	repo.EXPECT().Load(mock.Anything).Return(nil, errors.New("disk on fire"))

	store := usecase.NewKeymapStore(repo)
	err := store.Load(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load keymaps")
}

func TestKeymapStore_RemoveKeepsOrder(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockKeymapRepository(t)

	a, b, c := keymapAt(0.1, 0.1, 'A'), keymapAt(0.2, 0.2, 'B'), keymapAt(0.3, 0.3, 'C')
	repo.EXPECT().Load(mock.Anything).Return([]*entity.Keymap{a, b, c}, nil)

	store := usecase.NewKeymapStore(repo)
	require.NoError(t, store.Load(ctx, nil))

	all := store.All()
	require.True(t, store.Remove(b))
	assert.False(t, store.Remove(b))

	assert.Equal(t, []*entity.Keymap{a, c}, store.All())
	assert.Equal(t, []*entity.Keymap{a, b, c}, all, "earlier snapshots are not affected")
	assert.True(t, store.Dirty())
}

func TestKeymapStore_CommitFailureKeepsMemoryAndRetries(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockKeymapRepository(t)
	repo.EXPECT().Load(mock.Anything).Return([]*entity.Keymap{}, nil)

	store := usecase.NewKeymapStore(repo)
	require.NoError(t, store.Load(ctx, nil))

	km := keymapAt(0.5, 0.5, 'Q')
	store.Append(km)

	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("read-only fs")).Once()
	err := store.Commit(ctx)
	require.ErrorIs(t, err, usecase.ErrPersistence)
	assert.True(t, store.Dirty())
	assert.Equal(t, 1, store.Len())

	repo.EXPECT().Save(mock.Anything, []*entity.Keymap{km}).Return(nil).Once()
	require.NoError(t, store.Commit(ctx))
	assert.False(t, store.Dirty())
}

func TestKeymapStore_FindByFirstKeyAndListeners(t *testing.T) {
	repo := repomocks.NewMockKeymapRepository(t)
	store := usecase.NewKeymapStore(repo)

	calls := 0
	store.OnChange(func() { calls++ })

	shiftA := keymapAt(0.1, 0.1, entity.KeyShift, 'A')
	plainA := keymapAt(0.2, 0.2, 'A')
	unbound := keymapAt(0.3, 0.3)
	store.Append(unbound)
	store.Append(shiftA)
	store.Append(plainA)

	assert.Equal(t, 3, calls)
	assert.Same(t, plainA, store.FindByFirstKey('A'))
	assert.Same(t, shiftA, store.FindByFirstKey(entity.KeyShift))
	assert.Nil(t, store.FindByFirstKey('Z'))
	assert.Equal(t, 1, store.IndexOf(shiftA))
}
