package qna

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"quill/cmd/internal/fault"
)

// PostgresStore is a Store backed by PostgreSQL.
//
// The store does not own the pgx pool; the caller opens and closes it.
// Driver errors are logged here with full detail and surface to callers only
// as fault kinds.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresStore constructs a Postgres-backed Store.
func NewPostgresStore(pool *pgxpool.Pool, log *slog.Logger) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("qna: nil pool")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresStore{pool: pool, log: log}, nil
}

// uniqueViolation is the PostgreSQL SQLSTATE for a unique-constraint breach.
const uniqueViolation = "23505"

// dbFault logs the driver error and returns the opaque database fault.
func (s *PostgresStore) dbFault(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		s.log.Warn("store.unique_violation", "op", op, "constraint", pgErr.ConstraintName)
		return fault.New(op, fault.ErrDatabase, "unique constraint violated")
	}
	s.log.Error("store.query_failure", "op", op, "err", err)
	return fault.New(op, fault.ErrDatabase, "query failed")
}

func (s *PostgresStore) AddAccount(ctx context.Context, a Account) error {
	const op = "store.account.add"
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (email, password_hash) VALUES ($1, $2)`,
		strings.ToLower(a.Email), a.PasswordHash,
	)
	if err != nil {
		return s.dbFault(op, err)
	}
	return nil
}

func (s *PostgresStore) AccountByEmail(ctx context.Context, email string) (Account, error) {
	const op = "store.account.lookup"
	var a Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash FROM accounts WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&a.ID, &a.Email, &a.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, fault.New(op, fault.ErrNotFound, "no such account")
	}
	if err != nil {
		return Account{}, s.dbFault(op, err)
	}
	return a, nil
}

func (s *PostgresStore) Questions(ctx context.Context, limit, offset int) ([]Question, error) {
	const op = "store.question.list"
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, content, tags, account_id
		   FROM questions
		  ORDER BY id ASC
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, s.dbFault(op, err)
	}
	defer rows.Close()

	out := make([]Question, 0, limit)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.Tags, &q.AccountID); err != nil {
			return nil, s.dbFault(op, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, s.dbFault(op, err)
	}
	return out, nil
}

func (s *PostgresStore) AddQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	const op = "store.question.add"
	q := Question{
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		AccountID: in.AccountID,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO questions (title, content, tags, account_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		in.Title, in.Content, in.Tags, in.AccountID,
	).Scan(&q.ID)
	if err != nil {
		return Question{}, s.dbFault(op, err)
	}
	return q, nil
}

func (s *PostgresStore) UpdateQuestion(ctx context.Context, q Question) (Question, error) {
	const op = "store.question.update"
	var out Question
	err := s.pool.QueryRow(ctx,
		`UPDATE questions
		    SET title = $2, content = $3, tags = $4
		  WHERE id = $1
		RETURNING id, title, content, tags, account_id`,
		q.ID, q.Title, q.Content, q.Tags,
	).Scan(&out.ID, &out.Title, &out.Content, &out.Tags, &out.AccountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Question{}, fault.New(op, fault.ErrNotFound, "no such question")
	}
	if err != nil {
		return Question{}, s.dbFault(op, err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteQuestion(ctx context.Context, id int64) error {
	const op = "store.question.delete"
	tag, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return s.dbFault(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fault.New(op, fault.ErrNotFound, "no such question")
	}
	return nil
}

func (s *PostgresStore) QuestionOwner(ctx context.Context, id int64) (int64, error) {
	const op = "store.question.owner"
	var owner int64
	err := s.pool.QueryRow(ctx,
		`SELECT account_id FROM questions WHERE id = $1`, id,
	).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fault.New(op, fault.ErrNotFound, "no such question")
	}
	if err != nil {
		return 0, s.dbFault(op, err)
	}
	return owner, nil
}

func (s *PostgresStore) AddAnswer(ctx context.Context, in NewAnswer) (Answer, error) {
	const op = "store.answer.add"
	a := Answer{
		ID:         ulid.Make().String(),
		Content:    in.Content,
		QuestionID: in.QuestionID,
		AccountID:  in.AccountID,
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO answers (id, content, question_id, account_id)
		 VALUES ($1, $2, $3, $4)`,
		a.ID, a.Content, a.QuestionID, a.AccountID,
	)
	if err != nil {
		// A missing question trips the FK constraint; callers see a
		// not-found, not a database fault.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Answer{}, fault.New(op, fault.ErrNotFound, "no such question")
		}
		return Answer{}, s.dbFault(op, err)
	}
	return a, nil
}
