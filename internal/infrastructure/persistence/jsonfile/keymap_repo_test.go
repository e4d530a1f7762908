package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/domain/repository"
	"github.com/bnema/tapmap/internal/infrastructure/persistence/jsonfile"
	"github.com/bnema/tapmap/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// legacyFile is a file as written by earlier releases.
const legacyFile = `[
    {
        "normalized_size": [
            0.078125,
            0.1388888888888889
        ],
        "keycombo": [
            16777248,
            65
        ],
        "normalized_position": [
            0.0390625,
            0.06944444444444445
        ],
        "type": "circle"
    },
    {
        "normalized_size": [
            0.078125,
            0.1388888888888889
        ],
        "keycombo": [
            65
        ],
        "normalized_position": [
            0.3125,
            0.4166666666666667
        ],
        "type": "circle"
    },
    {
        "normalized_size": [
            0.1,
            0.1
        ],
        "keycombo": [],
        "normalized_position": [
            0.5,
            0.25
        ],
        "type": "rectangle",
        "hold": true,
        "label": "jump"
    }
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keymaps.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKeymapRepository_LoadLegacyFile(t *testing.T) {
	repo := jsonfile.NewKeymapRepository(writeFile(t, legacyFile))

	got, err := repo.Load(testCtx())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, entity.KeyCombo{entity.KeyShift, 'A'}, got[0].Combo)
	assert.Equal(t, entity.Vec{X: 0.0390625, Y: 0.06944444444444445}, got[0].Position)
	assert.Equal(t, entity.ShapeCircle, got[1].ShapeKind())
	assert.Equal(t, entity.ShapeRectangle, got[2].ShapeKind())
	assert.True(t, got[2].Hold)
	assert.Equal(t, "jump", got[2].Label)
	assert.Empty(t, got[2].Combo)
}

func TestKeymapRepository_SaveReproducesUneditedFile(t *testing.T) {
	ctx := testCtx()
	path := writeFile(t, legacyFile)
	repo := jsonfile.NewKeymapRepository(path)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, got))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(legacyFile, string(written)); diff != "" {
		t.Fatalf("round trip changed the file (-want +got):\n%s", diff)
	}
}

func TestKeymapRepository_RoundTripKeepsOrderAndFields(t *testing.T) {
	ctx := testCtx()
	repo := jsonfile.NewKeymapRepository(filepath.Join(t.TempDir(), "nested", "keymaps.json"))

	a := entity.NewKeymap(entity.Vec{X: 0.9, Y: 0.1}, entity.Vec{X: 0.05, Y: 0.0888})
	a.Combo = entity.KeyCombo{entity.KeyControl, 'Q'}
	b := entity.NewKeymap(entity.Vec{X: 0.1, Y: 0.9}, entity.Vec{X: 0.05, Y: 0.0888})
	b.Hold = true
	want := []*entity.Keymap{a, b}

	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestKeymapRepository_MissingFile(t *testing.T) {
	repo := jsonfile.NewKeymapRepository(filepath.Join(t.TempDir(), "absent.json"))

	_, err := repo.Load(testCtx())
	assert.ErrorIs(t, err, repository.ErrKeymapsNotFound)
}

func TestKeymapRepository_SkipsInvalidRecords(t *testing.T) {
	content := `[
		{"normalized_size": [0.1, 0.1], "keycombo": [65], "normalized_position": [0.1, 0.1], "type": "circle"},
		{"normalized_size": [0.1], "keycombo": [66], "normalized_position": [0.2, 0.2], "type": "circle"},
		{"normalized_size": [0.1, 0.1], "keycombo": [67], "normalized_position": [0.3, 0.3], "type": "hexagon"},
		{"normalized_size": [0.1, 0.1], "keycombo": "D", "normalized_position": [0.4, 0.4], "type": "circle"},
		{"keycombo": [69], "normalized_position": [0.5, 0.5], "type": "circle"},
		42,
		{"normalized_size": [0.1, 0.1], "keycombo": [70], "normalized_position": [0.6, 0.6], "type": "circle"}
	]`
	repo := jsonfile.NewKeymapRepository(writeFile(t, content))

	got, err := repo.Load(testCtx())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.KeyCombo{'A'}, got[0].Combo)
	assert.Equal(t, entity.KeyCombo{'F'}, got[1].Combo)
}

func TestKeymapRepository_UnreadableFileIsMovedAside(t *testing.T) {
	path := writeFile(t, `{"not": "a list"}`)
	repo := jsonfile.NewKeymapRepository(path)

	_, err := repo.Load(testCtx())
	assert.ErrorIs(t, err, repository.ErrKeymapsNotFound)
	assert.NoFileExists(t, path)

	matches, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestEncode_EmptyComboIsArray(t *testing.T) {
	km := entity.NewKeymap(entity.Vec{}, entity.Vec{X: 0.5, Y: 0.5})
	data, err := jsonfile.Encode([]*entity.Keymap{km})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"keycombo": []`)
	assert.NotContains(t, string(data), "hold")
	assert.NotContains(t, string(data), "label")
}

func TestSchema(t *testing.T) {
	data, err := jsonfile.Schema()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, jsonfile.SchemaID)
	assert.Contains(t, s, `"normalized_position"`)
	assert.Contains(t, s, `"rectangle"`)
}
