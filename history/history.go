package history

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pagesift/pagesift/log"
)

const createTable = `CREATE TABLE IF NOT EXISTS scrapes (
	id TEXT NOT NULL PRIMARY KEY,
	url TEXT NOT NULL,
	strategy TEXT NOT NULL,
	success INTEGER NOT NULL,
	error TEXT,
	files TEXT,
	scraped_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL
);`

// Record is one completed scrape.
type Record struct {
	ID        string
	URL       string
	Strategy  string
	Success   bool
	Error     string
	Files     []string
	ScrapedAt time.Time
	Duration  time.Duration
}

// Store keeps a history of scrapes in a sqlite database. The sqlite driver
// does not allow concurrent writes, so records flow through a buffered
// channel into a single writer goroutine.
type Store struct {
	log     zerolog.Logger
	db      *sql.DB
	records chan Record
	wg      sync.WaitGroup
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open history database %s", path)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create scrapes table")
	}

	s := &Store{
		log: log.NewLogger("history"),
		db:  db,
		// Buffered so a batch can queue records without waiting on disk.
		records: make(chan Record, 20),
	}

	s.wg.Add(1)
	go s.writeLoop()

	return s, nil
}

func (s *Store) writeLoop() {
	defer s.wg.Done()

	insert := `INSERT INTO scrapes (id, url, strategy, success, error, files, scraped_at, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	for r := range s.records {
		_, err := s.db.Exec(insert, r.ID, r.URL, r.Strategy, r.Success, r.Error, strings.Join(r.Files, ","), r.ScrapedAt.UTC().Format(time.RFC3339), r.Duration.Milliseconds())
		if err != nil {
			s.log.Warn().Err(err).Str("url", r.URL).Msg("Failed to record scrape")
		}
	}
}

// Add queues a record for insertion. The ID is assigned here.
func (s *Store) Add(r Record) {
	r.ID = uuid.NewString()
	if r.ScrapedAt.IsZero() {
		r.ScrapedAt = time.Now()
	}

	s.records <- r
}

// Recent returns the n most recent records, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, url, strategy, success, error, files, scraped_at, duration_ms FROM scrapes ORDER BY rowid DESC LIMIT ?;`, n)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query scrapes")
	}
	defer rows.Close()

	records := make([]Record, 0, n)
	for rows.Next() {
		var (
			r          Record
			files      string
			scrapedAt  string
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &r.URL, &r.Strategy, &r.Success, &r.Error, &files, &scrapedAt, &durationMS); err != nil {
			return nil, errors.Wrap(err, "failed to scan scrape row")
		}

		if files != "" {
			r.Files = strings.Split(files, ",")
		}
		r.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		r.Duration = time.Duration(durationMS) * time.Millisecond

		records = append(records, r)
	}

	return records, rows.Err()
}

// Close drains pending records and closes the database.
func (s *Store) Close() error {
	close(s.records)
	s.wg.Wait()
	return s.db.Close()
}
