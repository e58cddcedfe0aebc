// Package store persists computed estimates as JSON snapshots. Reads return
// the stored snapshot and never reprice.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/reno.works/internal/db"
	"github.com/Simplici0/reno.works/internal/pricing"
)

var ErrNotFound = errors.New("estimate not found")

// Sortable in both sqlite and postgres as plain text.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

const defaultListLimit = 50

// SavedEstimate is a stored estimate with its full result snapshot.
type SavedEstimate struct {
	ID             string                         `json:"id"`
	CreatedAt      time.Time                      `json:"createdAt"`
	Title          string                         `json:"title"`
	Notes          string                         `json:"notes"`
	PricingVersion string                         `json:"pricingVersion"`
	Currency       string                         `json:"currency"`
	RoomCount      int                            `json:"roomCount"`
	Total          float64                        `json:"total"`
	Result         pricing.ItemizedEstimateResult `json:"result"`
}

// Summary is a list row; it carries the denormalised columns only.
type Summary struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	Title          string    `json:"title"`
	PricingVersion string    `json:"pricingVersion"`
	Currency       string    `json:"currency"`
	RoomCount      int       `json:"roomCount"`
	Total          float64   `json:"total"`
}

// ListQuery filters List. Search matches title or notes, case-insensitively.
type ListQuery struct {
	Search string
	Limit  int
}

// Store reads and writes estimates on a sqlite or postgres database.
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
	newID  func() string
}

// New wraps db. driver selects the placeholder style ("sqlite" or "postgres").
func New(database *sql.DB, driver string) *Store {
	return &Store{
		db:     database,
		driver: driver,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

func (s *Store) rebind(query string) string {
	return db.Rebind(s.driver, query)
}

// Save stores result under a new id.
func (s *Store) Save(ctx context.Context, title, notes string, result pricing.ItemizedEstimateResult) (SavedEstimate, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return SavedEstimate{}, fmt.Errorf("encode estimate: %w", err)
	}

	saved := SavedEstimate{
		ID:             s.newID(),
		CreatedAt:      s.now().UTC().Truncate(time.Microsecond),
		Title:          strings.TrimSpace(title),
		Notes:          strings.TrimSpace(notes),
		PricingVersion: result.PricingVersion,
		Currency:       result.Currency,
		RoomCount:      len(result.Rooms),
		Total:          result.Summary.Total,
		Result:         result,
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO estimates (id, created_at, title, notes, pricing_version, currency, room_count, total, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), saved.ID, saved.CreatedAt.Format(timeLayout), saved.Title, saved.Notes,
		saved.PricingVersion, saved.Currency, saved.RoomCount, saved.Total, string(payload))
	if err != nil {
		return SavedEstimate{}, fmt.Errorf("insert estimate: %w", err)
	}
	return saved, nil
}

// Get loads one estimate with its snapshot.
func (s *Store) Get(ctx context.Context, id string) (SavedEstimate, error) {
	var (
		saved     SavedEstimate
		createdAt string
		payload   string
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, created_at, title, notes, pricing_version, currency, room_count, total, result_json
		FROM estimates
		WHERE id = ?
	`), id).Scan(&saved.ID, &createdAt, &saved.Title, &saved.Notes, &saved.PricingVersion,
		&saved.Currency, &saved.RoomCount, &saved.Total, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedEstimate{}, ErrNotFound
	}
	if err != nil {
		return SavedEstimate{}, fmt.Errorf("query estimate: %w", err)
	}

	if saved.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return SavedEstimate{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if err := json.Unmarshal([]byte(payload), &saved.Result); err != nil {
		return SavedEstimate{}, fmt.Errorf("decode estimate %s: %w", id, err)
	}
	return saved, nil
}

// List returns estimates newest first.
func (s *Store) List(ctx context.Context, q ListQuery) ([]Summary, error) {
	search := strings.TrimSpace(q.Search)
	pattern := "%" + strings.ToLower(search) + "%"
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, created_at, title, pricing_version, currency, room_count, total
		FROM estimates
		WHERE (? = '' OR LOWER(title) LIKE ? OR LOWER(notes) LIKE ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), search, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var (
			item      Summary
			createdAt string
		)
		if err := rows.Scan(&item.ID, &createdAt, &item.Title, &item.PricingVersion, &item.Currency, &item.RoomCount, &item.Total); err != nil {
			return nil, fmt.Errorf("scan estimate row: %w", err)
		}
		if item.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}
	return out, nil
}

// Delete removes an estimate. Deleting an unknown id returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM estimates WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
