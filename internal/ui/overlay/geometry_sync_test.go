package overlay_test

import (
	"testing"

	portmocks "github.com/bnema/tapmap/internal/application/port/mocks"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/ui/mainloop"
	"github.com/bnema/tapmap/internal/ui/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	embedder    *portmocks.MockWindowEmbedder
	sync        *overlay.GeometrySync
	play, edit  *overlay.View
	playSurface *fakeSurface
	editSurface *fakeSurface
	queue       *[]func()
}

func newSyncFixture(t *testing.T) syncFixture {
	t.Helper()
	store, _ := newStore(t)

	playSurface, editSurface := &fakeSurface{}, &fakeSurface{}
	play := overlay.NewView(store, playSurface, overlay.ModePassThrough, overlay.DefaultOptions())
	edit := overlay.NewView(store, editSurface, overlay.ModeCapture, overlay.DefaultOptions())

	queue := &[]func(){}
	coalescer := mainloop.NewCoalescer(func(fn func()) { *queue = append(*queue, fn) })

	embedder := portmocks.NewMockWindowEmbedder(t)
	return syncFixture{
		embedder:    embedder,
		sync:        overlay.NewGeometrySync(embedder, 16.0/9.0, play, edit, coalescer),
		play:        play,
		edit:        edit,
		playSurface: playSurface,
		editSurface: editSurface,
		queue:       queue,
	}
}

func TestGeometrySync_AppliesSameRectToBothViews(t *testing.T) {
	f := newSyncFixture(t)
	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{X: 10, Y: 20, Width: 1600, Height: 1000}, true)

	require.NoError(t, f.sync.Sync(testContext()))

	want := entity.DisplayRect{X: 10, Y: 70, Width: 1600, Height: 900}
	assert.Equal(t, want, f.playSurface.rect)
	assert.Equal(t, want, f.editSurface.rect, "hidden view is repositioned too")
	assert.True(t, f.playSurface.visible)
	assert.False(t, f.editSurface.visible)
}

func TestGeometrySync_RedundantSyncDoesNotTouchSurfaces(t *testing.T) {
	f := newSyncFixture(t)
	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{Width: 1600, Height: 900}, true)

	ctx := testContext()
	require.NoError(t, f.sync.Sync(ctx))
	require.NoError(t, f.sync.Sync(ctx))

	assert.Equal(t, 1, f.playSurface.geometrySet)
	assert.Equal(t, 1, f.editSurface.geometrySet)
	assert.Equal(t, entity.DisplayRect{Width: 1600, Height: 900}, f.playSurface.rect)
}

func TestGeometrySync_HidesWhenGeometryUnavailable(t *testing.T) {
	f := newSyncFixture(t)
	ctx := testContext()

	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{Width: 800, Height: 450}, true).Once()
	require.NoError(t, f.sync.Sync(ctx))
	require.True(t, f.playSurface.visible)

	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{Width: 0, Height: 450}, true).Once()
	err := f.sync.Sync(ctx)
	assert.ErrorIs(t, err, entity.ErrGeometryUnavailable)
	assert.False(t, f.playSurface.visible)
	assert.False(t, f.editSurface.visible)
	_, ok := f.play.Rect()
	assert.False(t, ok)

	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{}, false).Once()
	assert.ErrorIs(t, f.sync.Sync(ctx), entity.ErrGeometryUnavailable)
	assert.False(t, f.playSurface.visible)
}

func TestGeometrySync_EditModeSwapsVisibility(t *testing.T) {
	f := newSyncFixture(t)
	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{Width: 1920, Height: 1080}, true)
	ctx := testContext()

	f.sync.SetEditMode(ctx, true)
	assert.True(t, f.sync.EditMode())
	assert.Same(t, f.edit, f.sync.Active())
	assert.True(t, f.editSurface.visible)
	assert.False(t, f.playSurface.visible)

	f.sync.SetEditMode(ctx, false)
	assert.Same(t, f.play, f.sync.Active())
	assert.False(t, f.editSurface.visible)
	assert.True(t, f.playSurface.visible)
}

func TestGeometrySync_PageSwitchHidesOverlay(t *testing.T) {
	f := newSyncFixture(t)
	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{Width: 1920, Height: 1080}, true)
	ctx := testContext()

	require.NoError(t, f.sync.Sync(ctx))
	f.sync.SetPageActive(ctx, false)
	assert.False(t, f.playSurface.visible)

	f.sync.SetPageActive(ctx, true)
	assert.True(t, f.playSurface.visible)
}

func TestGeometrySync_NotificationsCoalesce(t *testing.T) {
	f := newSyncFixture(t)
	ctx := testContext()

	var onResize, onMove func()
	f.embedder.EXPECT().OnResize(mock.Anything).Run(func(fn func()) { onResize = fn })
	f.embedder.EXPECT().OnMove(mock.Anything).Run(func(fn func()) { onMove = fn })
	f.sync.Attach(ctx)
	require.NotNil(t, onResize)
	require.NotNil(t, onMove)

	onResize()
	onMove()
	onResize()
	f.sync.Request(ctx)
	require.Len(t, *f.queue, 1)

	f.embedder.EXPECT().ContainerRect(mock.Anything).
		Return(entity.ScreenRect{Width: 1280, Height: 720}, true).Once()
	(*f.queue)[0]()

	assert.Equal(t, entity.DisplayRect{Width: 1280, Height: 720}, f.playSurface.rect)
}
