package store

import (
	"context"
	"time"

	"github.com/rcliao/memchat/internal/model"
)

// Export is a full dump of the database for backup or inspection.
type Export struct {
	Messages []model.Message `json:"messages"`
	Facts    []model.Fact    `json:"facts"`
}

// ExportAll returns every stored message and fact in insertion order.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Export, error) {
	out := &Export{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, role, content, created_at FROM messages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out.Messages = append(out.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	frows, err := s.db.QueryContext(ctx,
		`SELECT fact_key, fact_value, created_at FROM facts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer frows.Close()
	for frows.Next() {
		var f model.Fact
		var createdAt string
		if err := frows.Scan(&f.Key, &f.Value, &createdAt); err != nil {
			return nil, err
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out.Facts = append(out.Facts, f)
	}
	return out, frows.Err()
}
