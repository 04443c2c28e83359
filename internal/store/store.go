package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/helpers"
	"github.com/julien-sobczak/sprout/pkg/clock"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when deleting an unknown card.
var ErrNotFound = errors.New("card not found")

// DefaultFilename is the name of the database relative to the home directory.
const DefaultFilename = ".sprout.db"

// Store indexes the location of every card so that the card of a rendered node can be edited.
type Store struct {
	client *sql.DB
}

// IndexedCard is a card present in the index.
type IndexedCard struct {
	AnchorID     string
	Type         core.CardType
	Title        string
	RelativePath string
	Line         int
	// Hash of the raw text
	Hash      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns where the card is defined.
func (c IndexedCard) Location() core.CardLocation {
	return core.CardLocation{
		AnchorID:     c.AnchorID,
		RelativePath: c.RelativePath,
		Line:         c.Line,
	}
}

// Open connects to the database and applies the migrations.
func Open(path string) (*Store, error) {
	client, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	instance, err := sqlite3.WithInstance(client, &sqlite3.Config{})
	if err != nil {
		client.Close()
		return nil, err
	}

	// Run migrations
	d, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("error while reading migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", d, "sqlite3", instance)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("error while initializing migrations: %w", err)
	}
	err = m.Up() // Create/Update table schema_migrations
	if err != nil && err != migrate.ErrNoChange {
		client.Close()
		return nil, fmt.Errorf("error while running migrations: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Save inserts or updates the card.
func (s *Store) Save(ctx context.Context, card *IndexedCard) error {
	core.CurrentLogger().Debugf("Saving card %s...", card.AnchorID)
	now := clock.Now()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now

	query := `
		INSERT INTO card(
			anchor_id,
			card_type,
			title,
			relative_path,
			line,
			hash,
			created_at,
			updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(anchor_id) DO UPDATE SET
			card_type = excluded.card_type,
			title = excluded.title,
			relative_path = excluded.relative_path,
			line = excluded.line,
			hash = excluded.hash,
			updated_at = excluded.updated_at;
		`
	_, err := s.client.ExecContext(ctx, query,
		card.AnchorID,
		card.Type,
		card.Title,
		card.RelativePath,
		card.Line,
		card.Hash,
		timeToSQL(card.CreatedAt),
		timeToSQL(card.UpdatedAt))
	return err
}

// Delete removes the card from the index.
func (s *Store) Delete(ctx context.Context, anchorID string) error {
	core.CurrentLogger().Debugf("Deleting card %s...", anchorID)
	result, err := s.client.ExecContext(ctx, `DELETE FROM card WHERE anchor_id = ?;`, anchorID)
	if err != nil {
		return err
	}
	count, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of indexed cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.client.QueryRowContext(ctx, `SELECT count(*) FROM card`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// LookupCard returns the card with the given anchor, or nil when the card is unknown.
func (s *Store) LookupCard(ctx context.Context, anchorID string) (*IndexedCard, error) {
	return s.queryCard(ctx, `WHERE anchor_id = ?`, anchorID)
}

// ResolveCard returns where the card is defined, or nil when the card is unknown.
func (s *Store) ResolveCard(ctx context.Context, anchorID string) (*core.CardLocation, error) {
	card, err := s.LookupCard(ctx, anchorID)
	if err != nil || card == nil {
		return nil, err
	}
	location := card.Location()
	return &location, nil
}

// ListByPath returns the cards of a document ordered by line.
func (s *Store) ListByPath(ctx context.Context, relativePath string) ([]*IndexedCard, error) {
	return s.queryCards(ctx, `WHERE relative_path = ? ORDER BY line`, relativePath)
}

// IndexDocument replaces the cards of a document by the cards present in its source.
// Cards that are not parsable are ignored.
func (s *Store) IndexDocument(ctx context.Context, relativePath string, source string) (int, error) {
	existing, err := s.ListByPath(ctx, relativePath)
	if err != nil {
		return 0, err
	}
	previous := make(map[string]*IndexedCard)
	for _, card := range existing {
		previous[card.AnchorID] = card
	}

	count := 0
	for _, anchor := range core.FindAnchors(source) {
		raw, ok := core.ExtractCardFromSource(source, anchor.ID)
		if !ok {
			continue
		}
		card, err := core.ParseCard(raw)
		if err != nil {
			core.CurrentLogger().Debugf("Ignoring anchor %s in %s: %v", anchor.ID, relativePath, err)
			continue
		}
		indexed := &IndexedCard{
			AnchorID:     card.AnchorID,
			Type:         card.Type,
			Title:        card.Title,
			RelativePath: relativePath,
			Line:         anchor.Line,
			Hash:         helpers.HashString(raw),
		}
		if old, ok := previous[card.AnchorID]; ok {
			indexed.CreatedAt = old.CreatedAt
			delete(previous, card.AnchorID)
		}
		if err := s.Save(ctx, indexed); err != nil {
			return count, fmt.Errorf("unable to save card %s: %w", card.AnchorID, err)
		}
		count++
	}

	// Cards removed from the document
	for anchorID := range previous {
		if err := s.Delete(ctx, anchorID); err != nil && !errors.Is(err, ErrNotFound) {
			return count, err
		}
	}
	return count, nil
}

/* SQL Helpers */

const selectCard = `
		SELECT
			anchor_id,
			card_type,
			title,
			relative_path,
			line,
			hash,
			created_at,
			updated_at
		FROM card
		%s;`

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (*IndexedCard, error) {
	var c IndexedCard
	var createdAt string
	var updatedAt string
	if err := row.Scan(
		&c.AnchorID,
		&c.Type,
		&c.Title,
		&c.RelativePath,
		&c.Line,
		&c.Hash,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	c.CreatedAt = timeFromSQL(createdAt)
	c.UpdatedAt = timeFromSQL(updatedAt)
	return &c, nil
}

func (s *Store) queryCard(ctx context.Context, whereClause string, args ...any) (*IndexedCard, error) {
	card, err := scanCard(s.client.QueryRowContext(ctx, fmt.Sprintf(selectCard, whereClause), args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return card, err
}

func (s *Store) queryCards(ctx context.Context, whereClause string, args ...any) ([]*IndexedCard, error) {
	rows, err := s.client.QueryContext(ctx, fmt.Sprintf(selectCard, whereClause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*IndexedCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// timeToSQL converts a time struct to a string representation compatible with SQLite.
func timeToSQL(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.UTC().Format(time.RFC3339Nano)
}

// timeFromSQL parses a string representation of a time to a time struct.
func timeFromSQL(dateStr string) time.Time {
	date, err := time.Parse(time.RFC3339Nano, dateStr)
	if err != nil {
		return time.Time{}
	}
	return date
}
