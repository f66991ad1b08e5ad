package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"feedbackportal/models"

	"github.com/lib/pq"
)

type PostgresFeedbackRepo struct {
	DB *sql.DB
}

func NewPostgresFeedbackRepo(db *sql.DB) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{DB: db}
}

const feedbackColumns = `
	f.id, f.title, f.description, f.category, f.priority, f.status,
	f.created_at, f.closed_at, f.user_id,
	u.id, u.username, u.role`

func (r *PostgresFeedbackRepo) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	if fb.Status == "" {
		fb.Status = models.StatusNew
	}
	if err := fb.Validate(); err != nil {
		return err
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO feedback (title, description, category, priority, status, created_at, closed_at, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, fb.Title, fb.Description, fb.Category, fb.Priority, fb.Status, fb.CreatedAt, fb.ClosedAt, fb.UserID).Scan(&fb.ID)
}

func (r *PostgresFeedbackRepo) GetFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		WHERE f.id=$1
	`, id)
	fb, err := scanFeedback(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.content, r.created_at, r.feedback_id, r.user_id,
			u.id, u.username, u.role
		FROM responses r
		JOIN users u ON u.id = r.user_id
		WHERE r.feedback_id=$1
		ORDER BY r.created_at ASC, r.id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp models.Response
		author := &models.User{}
		if err := rows.Scan(&resp.ID, &resp.Content, &resp.CreatedAt, &resp.FeedbackID, &resp.UserID,
			&author.ID, &author.Username, &author.Role); err != nil {
			return nil, err
		}
		resp.User = author
		fb.Responses = append(fb.Responses, resp)
	}
	return fb, rows.Err()
}

func (r *PostgresFeedbackRepo) ListFeedback(ctx context.Context, filter FeedbackFilter) ([]*models.Feedback, error) {
	where, args := filterClause(filter)
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		`+where+`
		ORDER BY f.created_at DESC, f.id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, fb)
	}
	return list, rows.Err()
}

func (r *PostgresFeedbackRepo) CountFeedback(ctx context.Context, filter FeedbackFilter) (int64, error) {
	where, args := filterClause(filter)
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback f `+where, args...).Scan(&n)
	return n, err
}

func (r *PostgresFeedbackRepo) UpdateStatus(ctx context.Context, id int64, status models.Status, at time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	// COALESCE keeps the previous closed_at when the new status is not closed.
	res, err := r.DB.ExecContext(ctx, `
		UPDATE feedback
		SET status=$1, closed_at=COALESCE($2, closed_at)
		WHERE id=$3
	`, status, closedAtFor(status, at), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresFeedbackRepo) DeleteFeedback(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The FK cascades too; the explicit delete keeps the contract
	// independent of how the schema was created.
	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE feedback_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresFeedbackRepo) AddResponse(ctx context.Context, resp *models.Response) error {
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}
	if err := resp.Validate(); err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var fbID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM feedback WHERE id=$1 FOR SHARE`, resp.FeedbackID).Scan(&fbID)
	if err == sql.ErrNoRows {
		return ErrFeedbackNotFound
	}
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO responses (content, created_at, feedback_id, user_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, resp.Content, resp.CreatedAt, resp.FeedbackID, resp.UserID).Scan(&resp.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// ------------------------ Helper Functions ------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (*models.Feedback, error) {
	fb := &models.Feedback{}
	owner := &models.User{}
	var closedAt sql.NullTime
	err := row.Scan(&fb.ID, &fb.Title, &fb.Description, &fb.Category, &fb.Priority, &fb.Status,
		&fb.CreatedAt, &closedAt, &fb.UserID,
		&owner.ID, &owner.Username, &owner.Role)
	if err != nil {
		return nil, err
	}
	if closedAt.Valid {
		t := closedAt.Time
		fb.ClosedAt = &t
	}
	fb.User = owner
	return fb, nil
}

func filterClause(filter FeedbackFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("f.category = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		conds = append(conds, fmt.Sprintf("f.status = ANY($%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
