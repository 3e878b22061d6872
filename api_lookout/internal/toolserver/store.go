package toolserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var ErrNoTicket = errors.New("no ticket data found")

type Resource struct {
	Title   string
	URL     string
	Snippet string
}

type Ticket struct {
	TicketID  string
	AgentName string
	Country   string
}

// Store reads the curated resource list and the ticket table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// minTermLength drops short words that would match almost every row.
const minTermLength = 3

// SearchResources returns resources whose title, snippet or tags contain any
// term of the query, newest first.
func (s *Store) SearchResources(ctx context.Context, query string, limit int) ([]Resource, error) {
	patterns := likePatterns(query)
	if len(patterns) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, url, snippet
		FROM lookout.resources
		WHERE title ILIKE ANY($1) OR snippet ILIKE ANY($1) OR tags ILIKE ANY($1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, pq.Array(patterns), limit)
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}
	defer rows.Close()

	var out []Resource
	for rows.Next() {
		var r Resource
		if err := rows.Scan(&r.Title, &r.URL, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return out, nil
}

// RandomTicket picks one row. Only the three user-facing columns are read.
func (s *Store) RandomTicket(ctx context.Context) (Ticket, error) {
	var (
		t       Ticket
		agent   sql.NullString
		country sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT ticket_id, agent_name, country
		FROM lookout.tickets
		ORDER BY random()
		LIMIT 1
	`).Scan(&t.TicketID, &agent, &country)
	if errors.Is(err, sql.ErrNoRows) {
		return Ticket{}, ErrNoTicket
	}
	if err != nil {
		return Ticket{}, fmt.Errorf("select ticket: %w", err)
	}
	t.AgentName = agent.String
	t.Country = country.String
	return t, nil
}

func likePatterns(query string) []string {
	seen := make(map[string]bool)
	var patterns []string
	for _, term := range strings.Fields(strings.ToLower(query)) {
		term = strings.Trim(term, `.,;:!?"'()[]{}`)
		if len([]rune(term)) < minTermLength || seen[term] {
			continue
		}
		seen[term] = true
		patterns = append(patterns, "%"+escapeLike(term)+"%")
	}
	return patterns
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
