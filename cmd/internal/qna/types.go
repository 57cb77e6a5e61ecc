// Package qna holds the question-and-answer records and their stores.
package qna

// Account is a registered identity. PasswordHash is the argon2id encoded
// form and never leaves the server.
type Account struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Question is a posted question. Tags is optional.
type Question struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	AccountID int64    `json:"-"`
}

// NewQuestion carries the caller-supplied fields of a question before the
// store assigns an ID.
type NewQuestion struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	AccountID int64    `json:"-"`
}

// Answer is a reply to a question. IDs are ULIDs, sortable by creation time.
type Answer struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	QuestionID int64  `json:"question_id"`
	AccountID  int64  `json:"-"`
}

// NewAnswer carries the caller-supplied fields of an answer.
type NewAnswer struct {
	Content    string
	QuestionID int64
	AccountID  int64
}
