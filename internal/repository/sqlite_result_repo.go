package repository

import (
	"adaptivequiz/internal/model"
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type sqliteResultRepo struct {
	db *sql.DB
}

// NewSQLiteResultRepo creates a result repository on an opened SQLite database
func NewSQLiteResultRepo(db *sql.DB) ResultRepo {
	return &sqliteResultRepo{db: db}
}

func (r *sqliteResultRepo) Create(ctx context.Context, res *model.Result) (string, error) {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.Timestamp.IsZero() {
		res.Timestamp = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO results (id, user_id, total_score, questions_answered, correct_answers,
			final_difficulty, feedback, next_difficulty, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.UserID, res.TotalScore, res.QuestionsAnswered, res.CorrectAnswers,
		string(res.FinalDifficulty), res.Feedback, string(res.NextDifficulty),
		res.Timestamp.UTC().Format(sqliteTimeFormat))
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

func (r *sqliteResultRepo) GetAll(ctx context.Context) ([]*model.Result, error) {
	return r.query(ctx, resultSelect+` ORDER BY created_at DESC`)
}

// GetByUser returns the user's results, newest first
func (r *sqliteResultRepo) GetByUser(ctx context.Context, userID string) ([]*model.Result, error) {
	return r.query(ctx, resultSelect+` WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// Fixed width so that text ordering matches time ordering.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z"

const resultSelect = `SELECT id, user_id, total_score, questions_answered, correct_answers,
	final_difficulty, feedback, next_difficulty, created_at FROM results`

func (r *sqliteResultRepo) query(ctx context.Context, query string, args ...any) ([]*model.Result, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*model.Result
	for rows.Next() {
		var (
			res       model.Result
			finalDiff string
			nextDiff  string
			createdAt string
		)
		if err := rows.Scan(&res.ID, &res.UserID, &res.TotalScore, &res.QuestionsAnswered,
			&res.CorrectAnswers, &finalDiff, &res.Feedback, &nextDiff, &createdAt); err != nil {
			return nil, err
		}
		res.FinalDifficulty = model.Difficulty(finalDiff)
		res.NextDifficulty = model.Difficulty(nextDiff)
		if ts, err := time.Parse(sqliteTimeFormat, createdAt); err == nil {
			res.Timestamp = ts
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}
