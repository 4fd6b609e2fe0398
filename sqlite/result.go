package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ prospect.ResultService = (*ResultService)(nil)

// ResultService implements prospect.ResultService using SQLite.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// CreateResult persists a scrape result and its persons, emails and claims
// in a single transaction.
func (s *ResultService) CreateResult(ctx context.Context, result *prospect.ScrapeResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	result.ID = uuid.New().String()
	if result.FetchedAt.IsZero() {
		result.FetchedAt = time.Now()
	}
	result.FetchedAt = result.FetchedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO results (id, url, registration_id, registered_address, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`, result.ID, result.URL, result.RegistrationID, result.RegisteredAddress,
		result.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, p := range result.Persons {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO persons (result_id, position, name, first_name, last_name, title, claimed_email)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, result.ID, i, p.Name, p.FirstName, p.LastName, p.Title, p.ClaimedEmail)
		if err != nil {
			return err
		}
	}

	for i, e := range result.Emails {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO emails (result_id, position, address, rank)
			VALUES (?, ?, ?, ?)
		`, result.ID, i, e.Address, e.Rank)
		if err != nil {
			return err
		}
	}

	for i, c := range result.Claims {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO claims (result_id, position, person, email)
			VALUES (?, ?, ?, ?)
		`, result.ID, i, c.Person, c.Email)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindResultByID retrieves a result by ID.
func (s *ResultService) FindResultByID(ctx context.Context, id string) (*prospect.ScrapeResult, error) {
	var result prospect.ScrapeResult
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, registration_id, registered_address, fetched_at
		FROM results
		WHERE id = ?
	`, id).Scan(&result.ID, &result.URL, &result.RegistrationID, &result.RegisteredAddress, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, prospect.Errorf(prospect.ENOTFOUND, "result not found")
	}
	if err != nil {
		return nil, err
	}

	result.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	if err := s.loadChildren(ctx, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// FindResults retrieves results matching the filter, most recent first.
func (s *ResultService) FindResults(ctx context.Context, filter prospect.ResultFilter) ([]*prospect.ScrapeResult, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, registration_id, registered_address, fetched_at FROM results WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*prospect.ScrapeResult
	for rows.Next() {
		var result prospect.ScrapeResult
		var fetchedAt string
		if err := rows.Scan(&result.ID, &result.URL, &result.RegistrationID, &result.RegisteredAddress, &fetchedAt); err != nil {
			return nil, err
		}
		result.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, result := range results {
		if err := s.loadChildren(ctx, result); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// loadChildren populates a result's persons, emails and claims.
func (s *ResultService) loadChildren(ctx context.Context, result *prospect.ScrapeResult) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, first_name, last_name, title, claimed_email
		FROM persons
		WHERE result_id = ?
		ORDER BY position ASC
	`, result.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p prospect.Person
		if err := rows.Scan(&p.Name, &p.FirstName, &p.LastName, &p.Title, &p.ClaimedEmail); err != nil {
			return err
		}
		result.Persons = append(result.Persons, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	erows, err := s.db.QueryContext(ctx, `
		SELECT address, rank
		FROM emails
		WHERE result_id = ?
		ORDER BY position ASC
	`, result.ID)
	if err != nil {
		return err
	}
	defer erows.Close()
	for erows.Next() {
		var e prospect.Email
		if err := erows.Scan(&e.Address, &e.Rank); err != nil {
			return err
		}
		result.Emails = append(result.Emails, e)
	}
	if err := erows.Err(); err != nil {
		return err
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT person, email
		FROM claims
		WHERE result_id = ?
		ORDER BY position ASC
	`, result.ID)
	if err != nil {
		return err
	}
	defer crows.Close()
	for crows.Next() {
		var c prospect.Claim
		if err := crows.Scan(&c.Person, &c.Email); err != nil {
			return err
		}
		result.Claims = append(result.Claims, c)
	}
	return crows.Err()
}
