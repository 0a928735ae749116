package repository

import (
	"adaptivequiz/internal/model"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type sqliteQuestionRepo struct {
	db *sql.DB
}

// NewSQLiteQuestionRepo creates a question repository on an opened SQLite database
func NewSQLiteQuestionRepo(db *sql.DB) QuestionRepo {
	return &sqliteQuestionRepo{db: db}
}

func (r *sqliteQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO questions (id, question_text, options, correct_answer, difficulty) VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.QuestionText, string(opts), q.CorrectAnswer, string(q.Difficulty))
	return err
}

func (r *sqliteQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question_text, options, correct_answer, difficulty FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *sqliteQuestionRepo) GetByDifficulty(ctx context.Context, difficulty model.Difficulty) ([]*model.Question, error) {
	return r.query(ctx,
		`SELECT id, question_text, options, correct_answer, difficulty FROM questions WHERE difficulty = ? ORDER BY rowid`,
		string(difficulty))
}

func (r *sqliteQuestionRepo) GetAll(ctx context.Context, limit int) ([]*model.Question, error) {
	if limit > 0 {
		return r.query(ctx,
			`SELECT id, question_text, options, correct_answer, difficulty FROM questions ORDER BY rowid LIMIT ?`, limit)
	}
	return r.query(ctx, `SELECT id, question_text, options, correct_answer, difficulty FROM questions ORDER BY rowid`)
}

func (r *sqliteQuestionRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteQuestionRepo) ExistsByText(ctx context.Context, text string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM questions WHERE question_text = ?`, text).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteQuestionRepo) query(ctx context.Context, query string, args ...any) ([]*model.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s rowScanner) (*model.Question, error) {
	var (
		q          model.Question
		opts       string
		difficulty string
	)
	if err := s.Scan(&q.ID, &q.QuestionText, &opts, &q.CorrectAnswer, &difficulty); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
		return nil, fmt.Errorf("decode options of %s: %w", q.ID, err)
	}
	q.Difficulty = model.Difficulty(difficulty)
	return &q, nil
}
