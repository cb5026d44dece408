package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"agartha/internal/data"
)

// SQLiteStore keeps each practitioner as a JSON document next to the columns
// it is looked up by.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func scanPractitioner(row *sql.Row) (*data.Practitioner, error) {
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var p data.Practitioner
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode practitioner: %w", err)
	}
	return &p, nil
}

func getPractitioner(ctx context.Context, q queryer, id string) (*data.Practitioner, error) {
	return scanPractitioner(q.QueryRowContext(ctx, `SELECT doc_json FROM practitioners WHERE id = ?`, id))
}

func savePractitioner(ctx context.Context, q queryer, p *data.Practitioner) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`UPDATE practitioners SET email = ?, description = ?, doc_json = ? WHERE id = ?`,
		p.Email, p.Description, string(doc), p.ID,
	)
	return err
}

func (s *SQLiteStore) InsertPractitioner(ctx context.Context, p *data.Practitioner) (bool, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return false, err
	}
	res, err := s.DB.ExecContext(ctx,
		`INSERT OR IGNORE INTO practitioners (id, email, description, created_at, doc_json)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.Description, p.Created.UnixMilli(), string(doc),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (s *SQLiteStore) GetPractitioner(ctx context.Context, id string) (*data.Practitioner, error) {
	return getPractitioner(ctx, s.DB, id)
}

func (s *SQLiteStore) FindPractitionerByEmail(ctx context.Context, email string) (*data.Practitioner, error) {
	return scanPractitioner(s.DB.QueryRowContext(ctx,
		`SELECT doc_json FROM practitioners WHERE email = ? ORDER BY rowid LIMIT 1`, email))
}

func (s *SQLiteStore) ListPractitioners(ctx context.Context) ([]*data.Practitioner, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT doc_json FROM practitioners ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*data.Practitioner{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p data.Practitioner
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decode practitioner: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdatePractitioners(ctx context.Context, ids []string, fn func([]*data.Practitioner) error) ([]*data.Practitioner, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ps := make([]*data.Practitioner, len(ids))
	for i, id := range ids {
		if ps[i], err = getPractitioner(ctx, tx, id); err != nil {
			return nil, err
		}
	}
	if err := fn(ps); err != nil {
		return nil, err
	}
	for _, p := range ps {
		if p == nil {
			continue
		}
		if err := savePractitioner(ctx, tx, p); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *SQLiteStore) RemovePractitioner(ctx context.Context, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM practitioners WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *SQLiteStore) RemoveAllPractitioners(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM practitioners`)
	return err
}

func (s *SQLiteStore) RemoveGeneratedPractitioners(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM practitioners WHERE description = ?`, GeneratedDescription)
	return err
}

func (s *SQLiteStore) GetSettings(ctx context.Context) (*data.Settings, error) {
	return getSettings(ctx, s.DB)
}

func getSettings(ctx context.Context, q queryer) (*data.Settings, error) {
	row := q.QueryRowContext(ctx, `SELECT doc_json FROM settings ORDER BY rowid LIMIT 1`)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var st data.Settings
	if err := json.Unmarshal([]byte(doc), &st); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &st, nil
}

func (s *SQLiteStore) PutSettings(ctx context.Context, st *data.Settings) error {
	return putSettings(ctx, s.DB, st)
}

func putSettings(ctx context.Context, q queryer, st *data.Settings) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO settings (id, doc_json) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc_json = excluded.doc_json`,
		st.ID, string(doc),
	)
	return err
}

func (s *SQLiteStore) UpdateSettings(ctx context.Context, fallback *data.Settings, fn func(*data.Settings) error) (*data.Settings, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	st, err := getSettings(ctx, tx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		copied := *fallback
		st = &copied
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	if err := putSettings(ctx, tx, st); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) PutImage(ctx context.Context, img *data.Image) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO images (id, file_name, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET file_name = excluded.file_name, data = excluded.data, updated_at = excluded.updated_at`,
		img.ID, img.FileName, img.Image, time.Now().Unix(),
	)
	return err
}

func (s *SQLiteStore) GetImage(ctx context.Context, id string) (*data.Image, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT id, file_name, data FROM images WHERE id = ?`, id)
	var img data.Image
	if err := row.Scan(&img.ID, &img.FileName, &img.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (s *SQLiteStore) InsertMonitorItem(ctx context.Context, item data.MonitorItem) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO monitor (id, value, created_at) VALUES (?, ?, ?)`,
		item.ID, item.Value, item.Created.UnixMilli(),
	)
	return err
}

func (s *SQLiteStore) CountMonitorItems(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM monitor`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
