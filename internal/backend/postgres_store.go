package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

// Schema creates the tables used by PostgresStore. Start and end times are
// stored as text so they round-trip in the layout the client sent.
const Schema = `
CREATE TABLE IF NOT EXISTS categories (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
	id    BIGSERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS events (
	id           BIGSERIAL PRIMARY KEY,
	title        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	image        TEXT NOT NULL DEFAULT '',
	start_time   TEXT NOT NULL DEFAULT '',
	end_time     TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL DEFAULT '',
	created_by   BIGINT NOT NULL DEFAULT 0,
	category_ids INTEGER[] NOT NULL DEFAULT '{}'
);`

const eventColumns = `id, title, description, image, start_time, end_time, location, created_by, category_ids`

type eventRow struct {
	ID          int64         `db:"id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Image       string        `db:"image"`
	StartTime   string        `db:"start_time"`
	EndTime     string        `db:"end_time"`
	Location    string        `db:"location"`
	CreatedBy   int64         `db:"created_by"`
	CategoryIDs pq.Int64Array `db:"category_ids"`
}

func (r eventRow) toModel() (models.Event, error) {
	event := models.Event{
		ID:          models.ID(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Location:    r.Location,
		CreatedBy:   models.ID(r.CreatedBy),
		CategoryIDs: make([]models.ID, 0, len(r.CategoryIDs)),
	}
	for _, id := range r.CategoryIDs {
		event.CategoryIDs = append(event.CategoryIDs, models.ID(id))
	}
	var err error
	if event.StartTime, err = parseStoredTime(r.StartTime); err != nil {
		return event, err
	}
	if event.EndTime, err = parseStoredTime(r.EndTime); err != nil {
		return event, err
	}
	return event, nil
}

func rowFromModel(event models.Event) eventRow {
	ids := make(pq.Int64Array, 0, len(event.CategoryIDs))
	for _, id := range event.CategoryIDs {
		ids = append(ids, int64(id))
	}
	return eventRow{
		ID:          int64(event.ID),
		Title:       event.Title,
		Description: event.Description,
		Image:       event.Image,
		StartTime:   event.StartTime.String(),
		EndTime:     event.EndTime.String(),
		Location:    event.Location,
		CreatedBy:   int64(event.CreatedBy),
		CategoryIDs: ids,
	}
}

func parseStoredTime(raw string) (models.Timestamp, error) {
	if raw == "" {
		return models.Timestamp{}, nil
	}
	ts, err := models.ParseTimestamp(raw)
	if err != nil {
		return models.Timestamp{}, fmt.Errorf("stored time: %w", err)
	}
	return ts, nil
}

// PostgresStore persists the collections in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore constructs the store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates missing tables.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Seed inserts seed rows into empty tables, keeping their ids.
func (s *PostgresStore) Seed(ctx context.Context, seed *Seed) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events`); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if count > 0 || seed == nil {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, category := range seed.Categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, category.ID, category.Name); err != nil {
			return fmt.Errorf("seed category %s: %w", category.ID, err)
		}
	}
	for _, user := range seed.Users {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, name, image) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`, user.ID, user.Name, user.Image); err != nil {
			return fmt.Errorf("seed user %s: %w", user.ID, err)
		}
	}
	for _, event := range seed.Events {
		const query = `INSERT INTO events (` + eventColumns + `)
	VALUES (:id, :title, :description, :image, :start_time, :end_time, :location, :created_by, :category_ids)`
		if _, err := tx.NamedExecContext(ctx, query, rowFromModel(event)); err != nil {
			return fmt.Errorf("seed event %s: %w", event.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('events', 'id'), COALESCE(MAX(id), 1)) FROM events`); err != nil {
		return fmt.Errorf("reset event sequence: %w", err)
	}
	return tx.Commit()
}

// ListEvents returns every event ordered by id.
func (s *PostgresStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+eventColumns+` FROM events ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		event, err := row.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// GetEvent returns one event.
func (s *PostgresStore) GetEvent(ctx context.Context, id models.ID) (*models.Event, error) {
	var row eventRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+eventColumns+` FROM events WHERE id = $1`, int64(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eventNotFound(id)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	event, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent inserts event and returns it with the generated id.
func (s *PostgresStore) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	row := rowFromModel(event)
	const query = `INSERT INTO events (title, description, image, start_time, end_time, location, created_by, category_ids)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	if err := s.db.QueryRowxContext(ctx, query, row.Title, row.Description, row.Image, row.StartTime, row.EndTime, row.Location, row.CreatedBy, row.CategoryIDs).Scan(&id); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	event.ID = models.ID(id)
	return &event, nil
}

// PatchEvent merges patch into the stored row.
func (s *PostgresStore) PatchEvent(ctx context.Context, id models.ID, patch EventPatch) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(event)
	row := rowFromModel(*event)
	const query = `UPDATE events SET title = :title, description = :description, image = :image,
	start_time = :start_time, end_time = :end_time, location = :location, created_by = :created_by,
	category_ids = :category_ids WHERE id = :id`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("patch event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes the event.
func (s *PostgresStore) DeleteEvent(ctx context.Context, id models.ID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return eventNotFound(id)
	}
	return nil
}

// ListCategories returns every category ordered by id.
func (s *PostgresStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := s.db.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns one category.
func (s *PostgresStore) GetCategory(ctx context.Context, id models.ID) (*models.Category, error) {
	var category models.Category
	if err := s.db.GetContext(ctx, &category, `SELECT id, name FROM categories WHERE id = $1`, int64(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &category, nil
}

// ListUsers returns every user ordered by id.
func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.db.SelectContext(ctx, &users, `SELECT id, name, image FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser returns one user.
func (s *PostgresStore) GetUser(ctx context.Context, id models.ID) (*models.User, error) {
	var user models.User
	if err := s.db.GetContext(ctx, &user, `SELECT id, name, image FROM users WHERE id = $1`, int64(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
