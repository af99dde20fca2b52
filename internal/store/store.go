// Package store persists contact submissions. Records are append-only:
// nothing in this package updates or deletes a row.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/abhinavshiv7/portfolio/internal/contact"
)

// DefaultDatabaseURL is used when no DATABASE_URL is configured.
const DefaultDatabaseURL = "sqlite://portfolio.db"

// Store is the persistence contract used by the site.
type Store interface {
	InsertContact(ctx context.Context, r *contact.Record) error
	ListContacts(ctx context.Context, limit int) ([]contact.Record, error)
	CountContacts(ctx context.Context) (int64, error)
	Close() error
}

// Dialect selects placeholder and type conventions for a database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Open connects to databaseURL, runs pending migrations and returns a
// ready store. postgres:// and postgresql:// URLs select PostgreSQL;
// anything else is treated as a SQLite path (an optional sqlite:// prefix
// is stripped).
func Open(ctx context.Context, databaseURL string) (*SQLStore, error) {
	if databaseURL == "" {
		databaseURL = DefaultDatabaseURL
	}

	dialect, driver, dsn := parseURL(databaseURL)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	switch dialect {
	case SQLite:
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	case Postgres:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return New(db, dialect), nil
}

func parseURL(u string) (Dialect, string, string) {
	switch {
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return Postgres, "postgres", u
	default:
		path := strings.TrimPrefix(u, "sqlite://")
		if !strings.Contains(path, "?") {
			path += "?_pragma=busy_timeout(5000)"
		}
		return SQLite, "sqlite", path
	}
}

// SQLStore implements Store on database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

var _ Store = (*SQLStore)(nil)
var _ contact.Store = (*SQLStore)(nil)

// New wraps an already migrated database.
func New(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) Dialect() Dialect { return s.dialect }

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// InsertContact appends r. Empty optional fields are stored as NULL.
func (s *SQLStore) InsertContact(ctx context.Context, r *contact.Record) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO visitor_contacts (id, name, email, company, whatsapp, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		r.ID, r.Name, r.Email,
		nullable(r.Company), nullable(r.WhatsApp), nullable(r.Message),
		s.timeArg(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert contact %s: %w", r.ID, err)
	}
	return nil
}

// ListContacts returns up to limit records, newest first.
func (s *SQLStore) ListContacts(ctx context.Context, limit int) ([]contact.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, name, email, company, whatsapp, message, created_at
		FROM visitor_contacts
		ORDER BY created_at DESC
		LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []contact.Record
	for rows.Next() {
		r, err := s.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return out, nil
}

func (s *SQLStore) CountContacts(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitor_contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

func (s *SQLStore) scanRecord(rows *sql.Rows) (contact.Record, error) {
	var (
		r                          contact.Record
		company, whatsapp, message sql.NullString
	)

	if s.dialect == Postgres {
		err := rows.Scan(&r.ID, &r.Name, &r.Email, &company, &whatsapp, &message, &r.CreatedAt)
		if err != nil {
			return r, err
		}
	} else {
		var created string
		err := rows.Scan(&r.ID, &r.Name, &r.Email, &company, &whatsapp, &message, &created)
		if err != nil {
			return r, err
		}
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return r, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		r.CreatedAt = t
	}

	r.Company = company.String
	r.WhatsApp = whatsapp.String
	r.Message = message.String
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// sqliteTimeLayout is fixed width so text order matches time order.
// RFC3339Nano trims trailing zeros, which breaks that.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *SQLStore) timeArg(t time.Time) any {
	if s.dialect == Postgres {
		return t.UTC()
	}
	return t.UTC().Format(sqliteTimeLayout)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
