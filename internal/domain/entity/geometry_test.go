package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDisplayRect_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		container ScreenRect
		ratio     float64
		want      DisplayRect
	}{
		{
			name:      "exact fit",
			container: ScreenRect{Width: 1600, Height: 900},
			ratio:     16.0 / 9.0,
			want:      DisplayRect{X: 0, Y: 0, Width: 1600, Height: 900},
		},
		{
			name:      "letterbox top and bottom",
			container: ScreenRect{Width: 1600, Height: 1000},
			ratio:     16.0 / 9.0,
			want:      DisplayRect{X: 0, Y: 50, Width: 1600, Height: 900},
		},
		{
			name:      "pillarbox left and right",
			container: ScreenRect{X: 10, Y: 20, Width: 2000, Height: 900},
			ratio:     16.0 / 9.0,
			want:      DisplayRect{X: 10 + 200, Y: 20, Width: 1600, Height: 900},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDisplayRect(tt.container, tt.ratio)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
		})
	}
}

func TestResolveDisplayRect_Degenerate(t *testing.T) {
	_, err := ResolveDisplayRect(ScreenRect{Width: 0, Height: 100}, 1.5)
	assert.ErrorIs(t, err, ErrGeometryUnavailable)

	_, err = ResolveDisplayRect(ScreenRect{Width: 100, Height: -1}, 1.5)
	assert.ErrorIs(t, err, ErrGeometryUnavailable)

	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = ResolveDisplayRect(ScreenRect{Width: 100, Height: 100}, r)
		assert.ErrorIs(t, err, ErrInvalidAspectRatio)
	}
}

func TestResolveDisplayRect_PropertiesHold(t *testing.T) {
	ratios := []float64{16.0 / 9.0, 4.0 / 3.0, 9.0 / 16.0, 1, 2.35, 0.1}
	for w := 1; w <= 2000; w += 97 {
		for h := 1; h <= 2000; h += 89 {
			for _, r := range ratios {
				c := ScreenRect{X: 5, Y: 7, Width: w, Height: h}
				got, err := ResolveDisplayRect(c, r)
				require.NoError(t, err)

				assert.InEpsilon(t, r, got.Width/got.Height, 1e-9)
				assert.LessOrEqual(t, got.Width, float64(w)+1e-9)
				assert.LessOrEqual(t, got.Height, float64(h)+1e-9)

				left := got.X - float64(c.X)
				right := float64(c.X+w) - (got.X + got.Width)
				top := got.Y - float64(c.Y)
				bottom := float64(c.Y+h) - (got.Y + got.Height)
				assert.InDelta(t, left, right, 1e-9)
				assert.InDelta(t, top, bottom, 1e-9)
			}
		}
	}
}

func TestResolveDisplayRect_Idempotent(t *testing.T) {
	c := ScreenRect{X: 13, Y: 77, Width: 1237, Height: 811}
	a, err := ResolveDisplayRect(c, 16.0/9.0)
	require.NoError(t, err)
	b, err := ResolveDisplayRect(c, 16.0/9.0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDisplayRect_Conversions(t *testing.T) {
	r := DisplayRect{X: 100, Y: 50, Width: 800, Height: 450}

	assert.Equal(t, Vec{X: 500, Y: 275}, r.ToScreen(Vec{X: 0.5, Y: 0.5}))
	assert.Equal(t, Vec{X: 400, Y: 225}, r.ToLocal(Vec{X: 0.5, Y: 0.5}))
	assert.Equal(t, Vec{X: 0.25, Y: 0.5}, r.ToNormalized(Vec{X: 200, Y: 225}))
	assert.Equal(t, Vec{}, DisplayRect{}.ToNormalized(Vec{X: 1, Y: 1}))
}
