package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/domain/repository"
	"github.com/bnema/tapmap/internal/logging"
)

// DefaultProfile is the profile used when none is configured.
const DefaultProfile = "default"

type keymapRepo struct {
	lazy    *LazyDB
	profile string
}

// NewKeymapRepository creates a SQLite-backed keymap repository bound to one
// named profile. Profiles let several games share one database.
func NewKeymapRepository(lazy *LazyDB, profile string) repository.KeymapRepository {
	if profile == "" {
		profile = DefaultProfile
	}
	return &keymapRepo{lazy: lazy, profile: profile}
}

func (r *keymapRepo) Load(ctx context.Context) ([]*entity.Keymap, error) {
	log := logging.FromContext(ctx).With().Str("profile", r.profile).Logger()

	db, err := r.lazy.DB(ctx)
	if err != nil {
		return nil, err
	}

	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM keymap_profiles WHERE name = ?`, r.profile).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrKeymapsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT ordinal, pos_x, pos_y, size_w, size_h, shape, keycombo, hold, label
		FROM keymaps WHERE profile = ? ORDER BY ordinal`, r.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query keymaps: %w", err)
	}
	defer rows.Close()

	keymaps := make([]*entity.Keymap, 0)
	for rows.Next() {
		var (
			ordinal int
			row     keymapRow
		)
		if err := rows.Scan(&ordinal, &row.posX, &row.posY, &row.sizeW, &row.sizeH,
			&row.shape, &row.combo, &row.hold, &row.label); err != nil {
			return nil, fmt.Errorf("failed to scan keymap: %w", err)
		}

		km, err := row.toEntity()
		if err != nil {
			log.Warn().Err(err).Int("ordinal", ordinal).Msg("skipping invalid keymap row")
			continue
		}
		keymaps = append(keymaps, km)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keymaps: %w", err)
	}

	log.Debug().Int("count", len(keymaps)).Msg("keymaps loaded from database")
	return keymaps, nil
}

func (r *keymapRepo) Save(ctx context.Context, keymaps []*entity.Keymap) (err error) {
	db, err := r.lazy.DB(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO keymap_profiles (name) VALUES (?)
		ON CONFLICT(name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`, r.profile); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM keymaps WHERE profile = ?`, r.profile); err != nil {
		return fmt.Errorf("failed to clear keymaps: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO keymaps (profile, ordinal, pos_x, pos_y, size_w, size_h, shape, keycombo, hold, label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, km := range keymaps {
		if _, err = stmt.ExecContext(ctx, r.profile, i,
			km.Position.X, km.Position.Y, km.Size.X, km.Size.Y,
			string(km.ShapeKind()), encodeCombo(km.Combo), km.Hold, km.Label); err != nil {
			return fmt.Errorf("failed to insert keymap %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit keymaps: %w", err)
	}

	logging.FromContext(ctx).Debug().
		Str("profile", r.profile).
		Int("count", len(keymaps)).
		Msg("keymaps saved to database")
	return nil
}

// ListProfiles returns the stored profile names with their keymap counts.
func ListProfiles(ctx context.Context, lazy *LazyDB) (map[string]int, error) {
	db, err := lazy.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT p.name, COUNT(k.ordinal)
		FROM keymap_profiles p LEFT JOIN keymaps k ON k.profile = p.name
		GROUP BY p.name ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		out[name] = count
	}
	return out, rows.Err()
}

type keymapRow struct {
	posX, posY   float64
	sizeW, sizeH float64
	shape        string
	combo        string
	hold         bool
	label        string
}

func (row keymapRow) toEntity() (*entity.Keymap, error) {
	shape, err := entity.ShapeFromKind(entity.ShapeKind(row.shape))
	if err != nil {
		return nil, err
	}
	combo, err := decodeCombo(row.combo)
	if err != nil {
		return nil, err
	}

	km := &entity.Keymap{
		Position: entity.Vec{X: row.posX, Y: row.posY},
		Size:     entity.Vec{X: row.sizeW, Y: row.sizeH},
		Shape:    shape,
		Combo:    combo,
		Hold:     row.hold,
		Label:    row.label,
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

// encodeCombo stores key codes as a comma separated list of integers so any
// code round-trips, including ones without a name.
func encodeCombo(c entity.KeyCombo) string {
	parts := make([]string, len(c))
	for i, k := range c {
		parts[i] = strconv.Itoa(int(k))
	}
	return strings.Join(parts, ",")
}

func decodeCombo(s string) (entity.KeyCombo, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	combo := make(entity.KeyCombo, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: bad key code %q", entity.ErrInvalidKeymapRecord, f)
		}
		combo = append(combo, entity.KeyCode(n))
	}
	return combo, nil
}
