package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"talent-hive/internal/database"
	"talent-hive/internal/domain/resource"

	"github.com/jackc/pgx/v5"
)

// InterviewResourceStore is the persistence contract of the resource lookup.
// FindLatestMatching returns (nil, nil) when nothing matches.
type InterviewResourceStore interface {
	FindLatestMatching(ctx context.Context, companyName, jobTitle string) (*resource.Record, error)
	Upsert(ctx context.Context, rec resource.Record) error
}

type PostgresInterviewResourceRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresInterviewResourceRepository(db database.DB) *PostgresInterviewResourceRepository {
	return &PostgresInterviewResourceRepository{db: db, now: time.Now}
}

// FindLatestMatching matches both columns by case-insensitive containment of
// the requested values and returns the most recently updated row.
func (r *PostgresInterviewResourceRepository) FindLatestMatching(ctx context.Context, companyName, jobTitle string) (*resource.Record, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("nil db")
	}

	row := r.db.QueryRow(ctx,
		`SELECT company_name, job_title, resources, last_updated
		 FROM interview_resources
		 WHERE strpos(lower(company_name), lower($1)) > 0
		   AND strpos(lower(job_title), lower($2)) > 0
		 ORDER BY last_updated DESC
		 LIMIT 1`,
		companyName, jobTitle,
	)

	var rec resource.Record
	if err := row.Scan(&rec.CompanyName, &rec.JobTitle, &rec.Resources, &rec.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if rec.Resources == nil {
		rec.Resources = []string{}
	}
	return &rec, nil
}

// Upsert writes the record under its exact company and job title key.
func (r *PostgresInterviewResourceRepository) Upsert(ctx context.Context, rec resource.Record) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil db")
	}
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = r.now().UTC()
	}
	resources := rec.Resources
	if resources == nil {
		resources = []string{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO interview_resources (id, company_name, job_title, resources, last_updated)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4)
		 ON CONFLICT (company_name, job_title)
		 DO UPDATE SET resources = EXCLUDED.resources, last_updated = EXCLUDED.last_updated`,
		rec.CompanyName, rec.JobTitle, resources, rec.LastUpdated,
	)
	return err
}

var _ InterviewResourceStore = (*PostgresInterviewResourceRepository)(nil)
