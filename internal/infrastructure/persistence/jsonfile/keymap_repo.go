// Package jsonfile stores keymaps in the JSON file format shared with earlier
// releases: an array of records with normalized_size, keycombo,
// normalized_position and type, in that field order.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/buger/jsonparser"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/domain/repository"
	"github.com/bnema/tapmap/internal/logging"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
	indent   = "    "
)

// Record is the on-disk form of one keymap.
type Record struct {
	NormalizedSize     [2]float64 `json:"normalized_size" jsonschema:"description=Width and height relative to the display area,minItems=2,maxItems=2"`
	KeyCombo           []int      `json:"keycombo" jsonschema:"description=Key codes: optional modifier then main key,maxItems=2"`
	NormalizedPosition [2]float64 `json:"normalized_position" jsonschema:"description=Top-left corner relative to the display area,minItems=2,maxItems=2"`
	Type               string     `json:"type" jsonschema:"enum=circle,enum=rectangle"`
	Hold               bool       `json:"hold,omitempty" jsonschema:"description=Press and hold instead of tap"`
	Label              string     `json:"label,omitempty" jsonschema:"description=Text drawn instead of the key combo"`
}

type keymapRepo struct {
	path string
	now  func() time.Time
}

// NewKeymapRepository creates a repository reading and writing path.
func NewKeymapRepository(path string) repository.KeymapRepository {
	return &keymapRepo{path: path, now: time.Now}
}

func (r *keymapRepo) Load(ctx context.Context) ([]*entity.Keymap, error) {
	log := logging.FromContext(ctx).With().Str("path", r.path).Logger()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, repository.ErrKeymapsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap file: %w", err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		backup := r.quarantine(ctx)
		log.Warn().Str("backup", backup).Msg("keymap file is not a JSON array, starting from defaults")
		return nil, repository.ErrKeymapsNotFound
	}

	keymaps := make([]*entity.Keymap, 0)
	index := 0
	_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		defer func() { index++ }()

		if dataType != jsonparser.Object {
			log.Warn().Int("index", index).Str("type", dataType.String()).Msg("skipping non-object keymap record")
			return
		}
		km, decodeErr := decodeRecord(value)
		if decodeErr != nil {
			log.Warn().Err(decodeErr).Int("index", index).Msg("skipping invalid keymap record")
			return
		}
		keymaps = append(keymaps, km)
	})
	if err != nil {
		// the file as a whole is unreadable; keep it aside and start over
		backup := r.quarantine(ctx)
		log.Warn().Err(err).Str("backup", backup).Msg("keymap file is malformed, starting from defaults")
		return nil, repository.ErrKeymapsNotFound
	}

	log.Debug().Int("count", len(keymaps)).Int("records", index).Msg("keymaps loaded from file")
	return keymaps, nil
}

func (r *keymapRepo) Save(ctx context.Context, keymaps []*entity.Keymap) error {
	data, err := Encode(keymaps)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		return fmt.Errorf("failed to create keymap directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write keymap file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync keymap file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close keymap file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return fmt.Errorf("failed to set keymap file mode: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to replace keymap file: %w", err)
	}

	logging.FromContext(ctx).Debug().Str("path", r.path).Int("count", len(keymaps)).Msg("keymaps saved to file")
	return nil
}

// quarantine renames an unreadable file so the next save does not destroy it.
func (r *keymapRepo) quarantine(ctx context.Context) string {
	backup := fmt.Sprintf("%s.corrupt-%s", r.path, r.now().Format("20060102-150405"))
	if err := os.Rename(r.path, backup); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to move unreadable keymap file aside")
		return ""
	}
	return backup
}

// Encode renders keymaps in the file format: a JSON array indented with four
// spaces and no trailing newline.
func Encode(keymaps []*entity.Keymap) ([]byte, error) {
	records := make([]Record, len(keymaps))
	for i, km := range keymaps {
		records[i] = ToRecord(km)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode keymaps: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ToRecord converts a keymap to its on-disk form.
func ToRecord(km *entity.Keymap) Record {
	combo := make([]int, len(km.Combo))
	for i, k := range km.Combo {
		combo[i] = int(k)
	}
	return Record{
		NormalizedSize:     [2]float64{km.Size.X, km.Size.Y},
		KeyCombo:           combo,
		NormalizedPosition: [2]float64{km.Position.X, km.Position.Y},
		Type:               string(km.ShapeKind()),
		Hold:               km.Hold,
		Label:              km.Label,
	}
}

// ToEntity validates a record and converts it to a keymap. Values are taken
// as stored; they are not clamped so unedited records save back unchanged.
func (rec Record) ToEntity() (*entity.Keymap, error) {
	shape, err := entity.ShapeFromKind(entity.ShapeKind(rec.Type))
	if err != nil {
		return nil, err
	}

	var combo entity.KeyCombo
	if len(rec.KeyCombo) > 0 {
		combo = make(entity.KeyCombo, len(rec.KeyCombo))
		for i, k := range rec.KeyCombo {
			combo[i] = entity.KeyCode(k)
		}
	}

	km := &entity.Keymap{
		Position: entity.Vec{X: rec.NormalizedPosition[0], Y: rec.NormalizedPosition[1]},
		Size:     entity.Vec{X: rec.NormalizedSize[0], Y: rec.NormalizedSize[1]},
		Shape:    shape,
		Combo:    combo,
		Hold:     rec.Hold,
		Label:    rec.Label,
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

func decodeRecord(raw []byte) (*entity.Keymap, error) {
	for _, field := range []string{"normalized_size", "normalized_position"} {
		n, err := pairLen(raw, field)
		if err != nil {
			return nil, fmt.Errorf("%w: missing %s", entity.ErrInvalidKeymapRecord, field)
		}
		if n != 2 {
			return nil, fmt.Errorf("%w: %s has %d values", entity.ErrInvalidKeymapRecord, field, n)
		}
	}
	if _, err := jsonparser.GetString(raw, "type"); err != nil {
		return nil, fmt.Errorf("%w: missing type", entity.ErrInvalidKeymapRecord)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidKeymapRecord, err)
	}
	return rec.ToEntity()
}

func pairLen(raw []byte, field string) (int, error) {
	n := 0
	_, err := jsonparser.ArrayEach(raw, func([]byte, jsonparser.ValueType, int, error) { n++ }, field)
	return n, err
}
