package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soundbridge/opportunity-engine/internal/models"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const opportunityCols = `id, title, description, source, url, deadline, amount,
	requirements, organizer_name, organizer_description, organizer_website,
	organizer_address, organizer_phone, contact_email, application_process,
	credibility_score, tags, category_id, location, compensation_type,
	verification_status, discovery_method, created_at`

func scanOpportunity(scan func(dest ...interface{}) error) (models.Opportunity, error) {
	var o models.Opportunity
	var deadline *time.Time

	err := scan(
		&o.ID, &o.Title, &o.Description, &o.Source, &o.URL, &deadline, &o.Amount,
		&o.Requirements, &o.OrganizerName, &o.OrganizerDescription, &o.OrganizerWebsite,
		&o.OrganizerAddress, &o.OrganizerPhone, &o.ContactEmail, &o.ApplicationProcess,
		&o.CredibilityScore, &o.Tags, &o.CategoryID, &o.Location, &o.CompensationType,
		&o.VerificationStatus, &o.DiscoveryMethod, &o.CreatedAt,
	)
	if err != nil {
		return o, err
	}

	if deadline != nil {
		o.Deadline = *deadline
	}

	return o, nil
}

// List returns every opportunity in the catalog, newest first.
func (s *Store) List(ctx context.Context) ([]models.Opportunity, error) {
	sql := fmt.Sprintf("SELECT %s FROM opportunities ORDER BY created_at DESC", opportunityCols)
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list opportunities failed: %w", err)
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	if opps == nil {
		opps = []models.Opportunity{}
	}
	return opps, nil
}

// Create inserts a new opportunity. A title collision returns
// models.ErrDuplicateTitle; the unique index is the real guarantor of
// uniqueness under concurrent writers.
func (s *Store) Create(ctx context.Context, o models.Opportunity) error {
	var deadline *time.Time
	if !o.Deadline.IsZero() {
		d := o.Deadline
		deadline = &d
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO opportunities (
			title, description, source, url, deadline, amount,
			requirements, organizer_name, organizer_description, organizer_website,
			organizer_address, organizer_phone, contact_email, application_process,
			credibility_score, tags, category_id, location, compensation_type,
			verification_status, discovery_method
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18, $19,
			$20, $21
		)
		ON CONFLICT ((lower(title))) DO NOTHING
	`,
		o.Title, o.Description, o.Source, o.URL, deadline, o.Amount,
		o.Requirements, o.OrganizerName, o.OrganizerDescription, o.OrganizerWebsite,
		o.OrganizerAddress, o.OrganizerPhone, o.ContactEmail, o.ApplicationProcess,
		o.CredibilityScore, o.Tags, o.CategoryID, o.Location, o.CompensationType,
		o.VerificationStatus, o.DiscoveryMethod,
	)
	if err != nil {
		return fmt.Errorf("create opportunity failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDuplicateTitle
	}

	return nil
}

// GetProfile fetches a user profile by ID. Missing profiles map to
// models.ErrProfileNotFound so callers can downgrade to empty results.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.pool.QueryRow(ctx, `
		SELECT id, role_id, genres, skills, location, management_level
		FROM user_profiles
		WHERE id = $1
	`, userID).Scan(&p.ID, &p.RoleID, &p.Genres, &p.Skills, &p.Location, &p.ManagementLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile failed: %w", err)
	}

	return &p, nil
}

// UpsertProfile creates or replaces a user profile. Used by the HTTP layer's
// profile sync endpoint, not by the engine itself.
func (s *Store) UpsertProfile(ctx context.Context, p models.UserProfile) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_profiles (id, role_id, genres, skills, location, management_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			role_id = EXCLUDED.role_id,
			genres = EXCLUDED.genres,
			skills = EXCLUDED.skills,
			location = EXCLUDED.location,
			management_level = EXCLUDED.management_level,
			updated_at = NOW()
	`, p.ID, p.RoleID, p.Genres, p.Skills, p.Location, p.ManagementLevel)
	if err != nil {
		return fmt.Errorf("upsert profile failed: %w", err)
	}
	return nil
}
