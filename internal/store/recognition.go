package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Recognition represents one committed character recognition.
type Recognition struct {
	ID         string
	Character  string
	Mode       string
	Confidence float64
	CreatedAt  time.Time
}

// RecognitionRepository provides access to the recognition history.
type RecognitionRepository struct {
	db *sql.DB
}

// Recognitions returns the recognition repository for this store.
func (s *Store) Recognitions() *RecognitionRepository {
	return &RecognitionRepository{db: s.db}
}

// Create inserts a new recognition into the history.
func (r *RecognitionRepository) Create(rec *Recognition) error {
	rec.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO recognitions (id, character, mode, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Character, rec.Mode, rec.Confidence, rec.CreatedAt,
	)
	return err
}

// GetByID retrieves a recognition by its ID.
func (r *RecognitionRepository) GetByID(id string) (*Recognition, error) {
	rec := &Recognition{}

	err := r.db.QueryRow(
		`SELECT id, character, mode, confidence, created_at
		 FROM recognitions WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Character, &rec.Mode, &rec.Confidence, &rec.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return rec, nil
}

// Recent returns up to limit recognitions, newest first.
func (r *RecognitionRepository) Recent(limit int) ([]*Recognition, error) {
	rows, err := r.db.Query(
		`SELECT id, character, mode, confidence, created_at
		 FROM recognitions ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*Recognition
	for rows.Next() {
		rec := &Recognition{}
		if err := rows.Scan(&rec.ID, &rec.Character, &rec.Mode, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteAll clears the recognition history.
func (r *RecognitionRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM recognitions`)
	return err
}
