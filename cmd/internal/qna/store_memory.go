package qna

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"quill/cmd/internal/fault"
)

// MemoryStore is an in-process Store for tests and single-node development.
// Safe for concurrent use.
type MemoryStore struct {
	mu sync.Mutex

	nextAccountID  int64
	nextQuestionID int64

	accounts  map[int64]Account
	byEmail   map[string]int64
	questions map[int64]Question
	answers   map[string]Answer
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextAccountID:  1,
		nextQuestionID: 1,
		accounts:       make(map[int64]Account),
		byEmail:        make(map[string]int64),
		questions:      make(map[int64]Question),
		answers:        make(map[string]Answer),
	}
}

func (s *MemoryStore) AddAccount(ctx context.Context, a Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(a.Email)
	if _, exists := s.byEmail[email]; exists {
		return fault.New("store.account.add", fault.ErrDatabase, "email already registered")
	}

	a.ID = s.nextAccountID
	s.nextAccountID++
	a.Email = email
	s.accounts[a.ID] = a
	s.byEmail[email] = a.ID
	return nil
}

func (s *MemoryStore) AccountByEmail(ctx context.Context, email string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return Account{}, fault.New("store.account.lookup", fault.ErrNotFound, "no such account")
	}
	return s.accounts[id], nil
}

func (s *MemoryStore) Questions(ctx context.Context, limit, offset int) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return []Question{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemoryStore) AddQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q := Question{
		ID:        s.nextQuestionID,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		AccountID: in.AccountID,
	}
	s.nextQuestionID++
	s.questions[q.ID] = q
	return q, nil
}

func (s *MemoryStore) UpdateQuestion(ctx context.Context, q Question) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.questions[q.ID]
	if !ok {
		return Question{}, fault.New("store.question.update", fault.ErrNotFound, "no such question")
	}
	stored.Title = q.Title
	stored.Content = q.Content
	stored.Tags = q.Tags
	s.questions[q.ID] = stored
	return stored, nil
}

func (s *MemoryStore) DeleteQuestion(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return fault.New("store.question.delete", fault.ErrNotFound, "no such question")
	}
	delete(s.questions, id)
	for aid, a := range s.answers {
		if a.QuestionID == id {
			delete(s.answers, aid)
		}
	}
	return nil
}

func (s *MemoryStore) QuestionOwner(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return 0, fault.New("store.question.owner", fault.ErrNotFound, "no such question")
	}
	return q.AccountID, nil
}

func (s *MemoryStore) AddAnswer(ctx context.Context, in NewAnswer) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[in.QuestionID]; !ok {
		return Answer{}, fault.New("store.answer.add", fault.ErrNotFound, "no such question")
	}
	a := Answer{
		ID:         ulid.Make().String(),
		Content:    in.Content,
		QuestionID: in.QuestionID,
		AccountID:  in.AccountID,
	}
	s.answers[a.ID] = a
	return a, nil
}
