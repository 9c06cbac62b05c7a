package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// createSchema builds the attempts table. The table is append-only by
// convention: nothing in this package issues UPDATE or DELETE against it.
func createSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		quiz TEXT NOT NULL,
		question_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		score REAL,
		elapsed_secs REAL NOT NULL DEFAULT 0,
		is_correction INTEGER NOT NULL DEFAULT 0,
		response TEXT,
		response_list TEXT
	)`)
	if err != nil {
		return fmt.Errorf("create attempts table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_attempts_quiz_question
		ON attempts (quiz, question_id, id)`)
	if err != nil {
		return fmt.Errorf("create attempts index: %w", err)
	}
	return nil
}

// ResultLog is the per-quiz attempt log. Appends are durable before Append
// returns; history reads come back oldest first. It satisfies
// quiz.ResultHistory.
type ResultLog struct {
	db   *sql.DB
	quiz string
}

var _ quiz.ResultHistory = (*ResultLog)(nil)

// Append records one attempt. Each append runs in its own transaction so
// an interruption never loses a completed answer and never records a
// partial one.
func (l *ResultLog) Append(ctx context.Context, sessionID string, rec quiz.AttemptRecord) error {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	var score sql.NullFloat64
	if !rec.Ungraded {
		score = sql.NullFloat64{Float64: rec.Score, Valid: true}
	}

	var responseList []byte
	if len(rec.ResponseList) > 0 {
		b, err := json.Marshal(rec.ResponseList)
		if err != nil {
			return fmt.Errorf("encode response list: %w", err)
		}
		responseList = b
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempts
			(quiz, question_id, session_id, timestamp, score, elapsed_secs, is_correction, response, response_list)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.quiz, rec.QuestionID, sessionID, rec.Timestamp.Format(time.RFC3339Nano),
		score, rec.ElapsedSecs, rec.IsCorrection, rec.Response, responseList,
	)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// RecordOverride appends a corrective record carrying a forced score. The
// original record is left untouched; the full audit history is preserved.
func (l *ResultLog) RecordOverride(ctx context.Context, sessionID, questionID string, forcedScore float64) error {
	return l.Append(ctx, sessionID, quiz.AttemptRecord{
		QuestionID:   questionID,
		Timestamp:    time.Now().UTC(),
		Score:        forcedScore,
		IsCorrection: true,
	})
}

// History returns every attempt for a question, oldest first.
func (l *ResultLog) History(questionID string) ([]quiz.AttemptRecord, error) {
	rows, err := l.db.Query(
		`SELECT question_id, timestamp, score, elapsed_secs, is_correction, response, response_list
		 FROM attempts
		 WHERE quiz = ? AND question_id = ?
		 ORDER BY id ASC`,
		l.quiz, questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

// All returns every attempt recorded for the quiz, oldest first, grouped
// by nothing: callers aggregate as they see fit.
func (l *ResultLog) All() ([]quiz.AttemptRecord, error) {
	rows, err := l.db.Query(
		`SELECT question_id, timestamp, score, elapsed_secs, is_correction, response, response_list
		 FROM attempts
		 WHERE quiz = ?
		 ORDER BY id ASC`,
		l.quiz,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

func scanAttempts(rows *sql.Rows) ([]quiz.AttemptRecord, error) {
	var records []quiz.AttemptRecord
	for rows.Next() {
		var (
			rec          quiz.AttemptRecord
			ts           string
			score        sql.NullFloat64
			response     sql.NullString
			responseList []byte
		)
		if err := rows.Scan(&rec.QuestionID, &ts, &score, &rec.ElapsedSecs,
			&rec.IsCorrection, &response, &responseList); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}

		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse attempt timestamp %q: %w", ts, err)
		}
		rec.Timestamp = t

		if score.Valid {
			rec.Score = score.Float64
		} else {
			rec.Ungraded = true
		}
		rec.Response = response.String
		if len(responseList) > 0 {
			if err := json.Unmarshal(responseList, &rec.ResponseList); err != nil {
				return nil, fmt.Errorf("decode response list: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
