package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hotdogbot/internal/domain/mms"
	_ "modernc.org/sqlite"
)

// VerdictRepository keeps an audit trail of classifier outputs. It stores no
// phone numbers and no message text.
type VerdictRepository struct {
	db *sql.DB
}

func NewVerdictRepository(dbPath string) (*VerdictRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS verdicts (
    id TEXT PRIMARY KEY,
    message_sid TEXT,
    image_url TEXT NOT NULL,
    answer TEXT NOT NULL,
    hotdog INTEGER NOT NULL,
    model TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_verdicts_answer ON verdicts(answer);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &VerdictRepository{db: db}, nil
}

func (r *VerdictRepository) Record(ctx context.Context, v *mms.Verdict) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verdicts
         (id, message_sid, image_url, answer, hotdog, model, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.MessageSID, v.ImageURL, v.Answer.String(),
		v.Hotdog, v.Model, v.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save verdict: %w", err)
	}
	return nil
}

func (r *VerdictRepository) GetByID(ctx context.Context, id string) (*mms.Verdict, error) {
	var v mms.Verdict
	var answer string
	var createdAt int64

	err := r.db.QueryRowContext(ctx,
		`SELECT id, message_sid, image_url, answer, hotdog, model, created_at
		 FROM verdicts WHERE id = ?`,
		id,
	).Scan(&v.ID, &v.MessageSID, &v.ImageURL, &answer, &v.Hotdog, &v.Model, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("verdict not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query verdict: %w", err)
	}

	v.Answer = mms.Answer(answer)
	v.CreatedAt = time.Unix(createdAt, 0).UTC()

	return &v, nil
}

// CountByAnswer returns how many times the model produced each distinct answer.
func (r *VerdictRepository) CountByAnswer(ctx context.Context) (map[mms.Answer]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT answer, COUNT(*) FROM verdicts GROUP BY answer`)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}
	defer rows.Close()

	counts := make(map[mms.Answer]int)
	for rows.Next() {
		var answer string
		var n int
		if err := rows.Scan(&answer, &n); err != nil {
			return nil, fmt.Errorf("scan answer count: %w", err)
		}
		counts[mms.Answer(answer)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	return counts, nil
}

func (r *VerdictRepository) Close() error {
	return r.db.Close()
}
