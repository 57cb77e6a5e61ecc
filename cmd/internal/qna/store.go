package qna

import "context"

// Store is the persistence surface for accounts, questions and answers.
//
// Implementations report failures as fault kinds: a missing record is
// fault.ErrNotFound, everything else (including uniqueness violations) is
// fault.ErrDatabase. Callers never see driver errors.
type Store interface {
	// AddAccount persists a new account. A duplicate email is a database
	// fault, indistinguishable from other query failures by design.
	AddAccount(ctx context.Context, a Account) error

	// AccountByEmail looks an account up by its unique email.
	AccountByEmail(ctx context.Context, email string) (Account, error)

	// Questions returns a page of questions ordered by ascending ID.
	Questions(ctx context.Context, limit, offset int) ([]Question, error)

	// AddQuestion persists a new question and returns it with its ID set.
	AddQuestion(ctx context.Context, in NewQuestion) (Question, error)

	// UpdateQuestion replaces the stored title, content and tags of q.ID.
	// The stored owner is preserved.
	UpdateQuestion(ctx context.Context, q Question) (Question, error)

	// DeleteQuestion removes a question and its answers.
	DeleteQuestion(ctx context.Context, id int64) error

	// QuestionOwner returns the account that posted the question.
	QuestionOwner(ctx context.Context, id int64) (int64, error)

	// AddAnswer persists a new answer and returns it with its ID set.
	AddAnswer(ctx context.Context, in NewAnswer) (Answer, error)
}
