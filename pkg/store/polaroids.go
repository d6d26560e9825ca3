package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // used to setup the PG driver
	"github.com/pkg/errors"

	"github.com/polaroidwall/polaroidwall/pkg/models"
)

type PolaroidStore interface {
	Create(ctx context.Context, polaroid models.Polaroid) (models.Polaroid, error)
	List(ctx context.Context) ([]models.Polaroid, error)
	Update(ctx context.Context, id string, update models.PolaroidUpdate) (models.Polaroid, error)
	Destroy(ctx context.Context, id string) (models.Polaroid, error)
}

type DBPolaroidStore struct {
	DB *sql.DB
}

func (s DBPolaroidStore) Create(ctx context.Context, polaroid models.Polaroid) (models.Polaroid, error) {
	if err := validate(polaroid); err != nil {
		return polaroid, err
	}

	polaroid.ID = uuid.New().String()
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO polaroids (id, image, caption, date)
		 VALUES ($1, $2, $3, $4)`,
		polaroid.ID,
		polaroid.Image,
		polaroid.Caption,
		polaroid.Date,
	)
	if err != nil {
		return models.Polaroid{}, errors.Wrap(err, "failed to insert polaroid")
	}

	return polaroid, nil
}

func (s DBPolaroidStore) List(ctx context.Context) ([]models.Polaroid, error) {
	polaroids := make([]models.Polaroid, 0)

	rows, err := s.DB.QueryContext(
		ctx,
		`SELECT id, image, caption, date
		 FROM polaroids
		 ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return polaroids, errors.Wrap(err, "failed to query polaroids")
	}

	defer rows.Close()

	var polaroid models.Polaroid
	for rows.Next() {
		err = rows.Scan(
			&polaroid.ID,
			&polaroid.Image,
			&polaroid.Caption,
			&polaroid.Date,
		)

		if err != nil {
			return polaroids, errors.Wrap(err, "failed to scan polaroid")
		}

		polaroids = append(polaroids, polaroid)
	}

	return polaroids, errors.Wrap(rows.Err(), "failed to iterate polaroids")
}

// Update replaces the caption and/or date of a polaroid in a single statement,
// so a concurrent Destroy either happens before (ErrPolaroidNotFound) or after.
func (s DBPolaroidStore) Update(ctx context.Context, id string, update models.PolaroidUpdate) (models.Polaroid, error) {
	polaroid := models.Polaroid{}
	if _, err := uuid.Parse(id); err != nil {
		return polaroid, ErrPolaroidNotFound
	}

	row := s.DB.QueryRowContext(
		ctx,
		`UPDATE polaroids
		 SET caption = COALESCE($2, caption), date = COALESCE($3, date)
		 WHERE id = $1
		 RETURNING id, image, caption, date`,
		id,
		nullString(update.Caption),
		nullString(update.Date),
	)

	err := row.Scan(&polaroid.ID, &polaroid.Image, &polaroid.Caption, &polaroid.Date)
	if err == sql.ErrNoRows {
		return polaroid, ErrPolaroidNotFound
	}
	if err != nil {
		return polaroid, errors.Wrap(err, "failed to update polaroid")
	}

	return polaroid, nil
}

// Destroy removes the polaroid and returns the removed row, which tells the
// caller which image file backed it.
func (s DBPolaroidStore) Destroy(ctx context.Context, id string) (models.Polaroid, error) {
	polaroid := models.Polaroid{}
	if _, err := uuid.Parse(id); err != nil {
		return polaroid, ErrPolaroidNotFound
	}

	row := s.DB.QueryRowContext(
		ctx,
		`DELETE FROM polaroids
		 WHERE id = $1
		 RETURNING id, image, caption, date`,
		id,
	)

	err := row.Scan(&polaroid.ID, &polaroid.Image, &polaroid.Caption, &polaroid.Date)
	if err == sql.ErrNoRows {
		return polaroid, ErrPolaroidNotFound
	}
	if err != nil {
		return polaroid, errors.Wrap(err, "failed to delete polaroid")
	}

	return polaroid, nil
}

func validate(polaroid models.Polaroid) error {
	switch {
	case polaroid.Image == "":
		return ValidationError{Field: "image"}
	case polaroid.Caption == "":
		return ValidationError{Field: "caption"}
	case polaroid.Date == "":
		return ValidationError{Field: "date"}
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
