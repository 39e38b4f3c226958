package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-hive/internal/database"
	"talent-hive/internal/domain/application"

	"github.com/google/uuid"
)

var ErrApplicationInvalid = errors.New("application invalid")

type ApplicationRepository interface {
	Create(ctx context.Context, app application.Application) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db, now: time.Now}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, app application.Application) (application.Application, error) {
	if r == nil || r.db == nil {
		return application.Application{}, fmt.Errorf("nil db")
	}
	if app.UserID == "" || app.JobTitle == "" || app.Email == "" {
		return application.Application{}, ErrApplicationInvalid
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = r.now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, user_id, student_name, job_title, company_name, resume_url, email, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.UserID, app.StudentName, app.JobTitle, nullableText(app.CompanyName), app.ResumeURL, app.Email, app.CreatedAt,
	)
	if err != nil {
		return application.Application{}, err
	}
	return app, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ ApplicationRepository = (*PostgresApplicationRepository)(nil)
