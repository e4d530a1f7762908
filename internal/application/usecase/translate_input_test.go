package usecase_test

import (
	"errors"
	"testing"
	"time"

	portmocks "github.com/bnema/tapmap/internal/application/port/mocks"
	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/domain/entity"
	repomocks "github.com/bnema/tapmap/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type translatorFixture struct {
	channel    *portmocks.MockNativeChannel
	store      *usecase.KeymapStore
	translator *usecase.TranslateInputUseCase
}

func newTranslatorFixture(t *testing.T, keymaps ...*entity.Keymap) translatorFixture {
	t.Helper()
	return newTranslatorFixtureAt(t, entity.NativeSize{Width: 1280, Height: 720}, keymaps...)
}

func newTranslatorFixtureAt(t *testing.T, native entity.NativeSize, keymaps ...*entity.Keymap) translatorFixture {
	t.Helper()
	ctx := testContext()

	repo := repomocks.NewMockKeymapRepository(t)
	repo.EXPECT().Load(mock.Anything).Return(keymaps, nil)
	store := usecase.NewKeymapStore(repo)
	require.NoError(t, store.Load(ctx, nil))

	ch := portmocks.NewMockNativeChannel(t)
	dispatcher := usecase.NewCommandDispatcher(ch, time.Second)
	dispatcher.SetDisplayID(3)

	return translatorFixture{
		channel:    ch,
		store:      store,
		translator: usecase.NewTranslateInputUseCase(store, dispatcher, native, 100*time.Millisecond),
	}
}

func TestTranslateInput_TapAtKeymapCenter(t *testing.T) {
	km := entity.NewKeymap(entity.Vec{X: 0.75, Y: 0.75}, entity.Vec{X: 0.075, Y: 0.075})
	km.Combo = entity.KeyCombo{'A'}
	f := newTranslatorFixture(t, km)

	f.channel.EXPECT().IsAlive().Return(true)
	f.channel.EXPECT().WriteLine(mock.Anything, "input -d 3 tap 1008 567").Return(nil).Once()

	assert.True(t, f.translator.HandleKey(testContext(), 'A'))
}

func TestTranslateInput_TapAtCenterOnFullHD(t *testing.T) {
	// the center is offset by half the size: (0.5+0.025)*1920, (0.5+0.025)*1080
	km := entity.NewKeymap(entity.Vec{X: 0.5, Y: 0.5}, entity.Vec{X: 0.05, Y: 0.05})
	km.Combo = entity.KeyCombo{'K'}
	f := newTranslatorFixtureAt(t, entity.NativeSize{Width: 1920, Height: 1080}, km)

	f.channel.EXPECT().IsAlive().Return(true)
	f.channel.EXPECT().WriteLine(mock.Anything, "input -d 3 tap 1008 567").Return(nil).Once()

	assert.True(t, f.translator.HandleKey(testContext(), 'K'))
}

func TestTranslateInput_HoldSendsZeroDistanceSwipe(t *testing.T) {
	km := entity.NewKeymap(entity.Vec{X: 0.5, Y: 0.5}, entity.Vec{X: 0.1, Y: 0.1})
	km.Combo = entity.KeyCombo{'W'}
	km.Hold = true
	f := newTranslatorFixture(t, km)

	f.channel.EXPECT().IsAlive().Return(true)
	f.channel.EXPECT().WriteLine(mock.Anything, "input -d 3 swipe 704 396 704 396 100").Return(nil).Once()

	assert.True(t, f.translator.HandleKey(testContext(), 'W'))
}

func TestTranslateInput_EscapeSendsBack(t *testing.T) {
	f := newTranslatorFixture(t)

	f.channel.EXPECT().IsAlive().Return(true)
	f.channel.EXPECT().WriteLine(mock.Anything, "input keyevent KEYCODE_BACK").Return(nil).Once()

	assert.True(t, f.translator.HandleKey(testContext(), entity.KeyEscape))
}

func TestTranslateInput_MatchesFirstKeyOnly(t *testing.T) {
	km := entity.NewKeymap(entity.Vec{X: 0, Y: 0}, entity.Vec{X: 0.1, Y: 0.1})
	km.Combo = entity.KeyCombo{entity.KeyShift, 'A'}
	f := newTranslatorFixture(t, km)

	assert.False(t, f.translator.HandleKey(testContext(), 'A'))

	f.channel.EXPECT().IsAlive().Return(true)
	f.channel.EXPECT().WriteLine(mock.Anything, "input -d 3 tap 64 36").Return(nil).Once()
	assert.True(t, f.translator.HandleKey(testContext(), entity.KeyShift))
}

func TestTranslateInput_UnmatchedKeyFallsThrough(t *testing.T) {
	km := entity.NewKeymap(entity.Vec{X: 0.2, Y: 0.2}, entity.Vec{X: 0.1, Y: 0.1})
	f := newTranslatorFixture(t, km)

	// no channel expectations: nothing may be written
	assert.False(t, f.translator.HandleKey(testContext(), 'Z'))
}

func TestTranslateInput_SoftKeyboardSuspendsTranslation(t *testing.T) {
	km := entity.NewKeymap(entity.Vec{X: 0.2, Y: 0.2}, entity.Vec{X: 0.1, Y: 0.1})
	km.Combo = entity.KeyCombo{'A'}
	f := newTranslatorFixture(t, km)
	ctx := testContext()

	assert.True(t, f.translator.SetSoftKeyboardVisible(ctx, true))
	assert.False(t, f.translator.SetSoftKeyboardVisible(ctx, true))
	assert.False(t, f.translator.HandleKey(ctx, 'A'))
	assert.False(t, f.translator.HandleKey(ctx, entity.KeyEscape))

	assert.True(t, f.translator.SetSoftKeyboardVisible(ctx, false))
	f.channel.EXPECT().IsAlive().Return(true)
	f.channel.EXPECT().WriteLine(mock.Anything, "input -d 3 tap 320 180").Return(nil).Once()
	assert.True(t, f.translator.HandleKey(ctx, 'A'))
}

func TestTranslateInput_DispatchFailureStillConsumesKey(t *testing.T) {
	km := entity.NewKeymap(entity.Vec{X: 0.2, Y: 0.2}, entity.Vec{X: 0.1, Y: 0.1})
	km.Combo = entity.KeyCombo{'A'}
	f := newTranslatorFixture(t, km)

	f.channel.EXPECT().IsAlive().Return(false)
	f.channel.EXPECT().Connect(mock.Anything).Return(errors.New("no device"))

	assert.True(t, f.translator.HandleKey(testContext(), 'A'))
}

func TestTranslateInput_SeesStoreEditsImmediately(t *testing.T) {
	f := newTranslatorFixture(t)
	assert.False(t, f.translator.HandleKey(testContext(), 'K'))

	km := entity.NewKeymap(entity.Vec{X: 0.5, Y: 0}, entity.Vec{X: 0, Y: 0})
	km.Combo = entity.KeyCombo{'K'}
	f.store.Append(km)

	f.channel.EXPECT().IsAlive().Return(true)
	f.channel.EXPECT().WriteLine(mock.Anything, "input -d 3 tap 640 0").Return(nil).Once()
	assert.True(t, f.translator.HandleKey(testContext(), 'K'))
}
