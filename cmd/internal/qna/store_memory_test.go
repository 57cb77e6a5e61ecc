package qna

import (
	"context"
	"testing"

	"quill/cmd/internal/fault"
)

func TestMemoryStoreAccounts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.AddAccount(ctx, Account{Email: "Ada@example.com", PasswordHash: "$argon2id$..."}); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}

	// Lookup is case-insensitive on email.
	a, err := s.AccountByEmail(ctx, "ada@EXAMPLE.com")
	if err != nil {
		t.Fatalf("AccountByEmail: %v", err)
	}
	if a.ID == 0 || a.Email != "ada@example.com" || a.PasswordHash != "$argon2id$..." {
		t.Errorf("account = %+v", a)
	}

	// Duplicate email reads as a database fault, not a distinct kind.
	err = s.AddAccount(ctx, Account{Email: "ada@example.com", PasswordHash: "x"})
	if !fault.IsDatabase(err) {
		t.Errorf("duplicate email err = %v, want ErrDatabase", err)
	}

	if _, err := s.AccountByEmail(ctx, "nobody@example.com"); !fault.IsNotFound(err) {
		t.Errorf("unknown email err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreQuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	q1, err := s.AddQuestion(ctx, NewQuestion{Title: "first", Content: "body", Tags: []string{"go"}, AccountID: 7})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	q2, err := s.AddQuestion(ctx, NewQuestion{Title: "second", Content: "body", AccountID: 8})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if q1.ID == q2.ID {
		t.Fatalf("IDs not unique: %d", q1.ID)
	}

	owner, err := s.QuestionOwner(ctx, q1.ID)
	if err != nil {
		t.Fatalf("QuestionOwner: %v", err)
	}
	if owner != 7 {
		t.Errorf("owner = %d, want 7", owner)
	}

	upd, err := s.UpdateQuestion(ctx, Question{ID: q1.ID, Title: "revised", Content: "new body"})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if upd.Title != "revised" || upd.Content != "new body" {
		t.Errorf("updated = %+v", upd)
	}
	// Owner is preserved across updates.
	if upd.AccountID != 7 {
		t.Errorf("owner after update = %d, want 7", upd.AccountID)
	}

	if err := s.DeleteQuestion(ctx, q2.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if err := s.DeleteQuestion(ctx, q2.ID); !fault.IsNotFound(err) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateQuestion(ctx, Question{ID: 999, Title: "x"}); !fault.IsNotFound(err) {
		t.Errorf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreQuestionPaging(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 0; i < 5; i++ {
		if _, err := s.AddQuestion(ctx, NewQuestion{Title: "t", Content: "c", AccountID: 1}); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
	}

	page, err := s.Questions(ctx, 2, 1)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("len = %d, want 2", len(page))
	}
	if page[0].ID != 2 || page[1].ID != 3 {
		t.Errorf("page IDs = %d, %d, want 2, 3", page[0].ID, page[1].ID)
	}

	empty, err := s.Questions(ctx, 10, 100)
	if err != nil {
		t.Fatalf("Questions past end: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("past-end page len = %d, want 0", len(empty))
	}
}

func TestMemoryStoreAnswers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	q, err := s.AddQuestion(ctx, NewQuestion{Title: "t", Content: "c", AccountID: 1})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	a, err := s.AddAnswer(ctx, NewAnswer{Content: "because", QuestionID: q.ID, AccountID: 2})
	if err != nil {
		t.Fatalf("AddAnswer: %v", err)
	}
	if len(a.ID) != 26 {
		t.Errorf("answer ID = %q, want 26-char ULID", a.ID)
	}
	if a.QuestionID != q.ID || a.AccountID != 2 {
		t.Errorf("answer = %+v", a)
	}

	if _, err := s.AddAnswer(ctx, NewAnswer{Content: "x", QuestionID: 999, AccountID: 2}); !fault.IsNotFound(err) {
		t.Errorf("answer to missing question err = %v, want ErrNotFound", err)
	}
}
