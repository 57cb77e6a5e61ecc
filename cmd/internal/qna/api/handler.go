// Package qnaapi exposes the question and answer endpoints.
package qnaapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"quill/cmd/internal/auth"
	"quill/cmd/internal/fault"
	"quill/cmd/internal/qna"
	"quill/cmd/internal/web"
)

// maxQuestionBody bounds question and answer request bodies.
const maxQuestionBody = 64 << 10

// Sanitizer censors user-supplied text via the external classification
// service before it is stored.
type Sanitizer interface {
	Sanitize(ctx context.Context, text string) (string, error)
	SanitizePair(ctx context.Context, first, second string) (string, string, error)
}

// Handler serves the question and answer routes.
type Handler struct {
	log   *slog.Logger
	store qna.Store
	clean Sanitizer
	gate  *auth.Gate
}

// NewHandler wires the content endpoints.
func NewHandler(log *slog.Logger, store qna.Store, clean Sanitizer, gate *auth.Gate) *Handler {
	return &Handler{log: log, store: store, clean: clean, gate: gate}
}

// Register registers the content routes on mux. Everything except the
// question list requires a session.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /questions", h.handleListQuestions)
	mux.HandleFunc("POST /questions", h.gate.Require(h.handleAddQuestion))
	mux.HandleFunc("PUT /questions/{id}", h.gate.Require(h.handleUpdateQuestion))
	mux.HandleFunc("DELETE /questions/{id}", h.gate.Require(h.handleDeleteQuestion))
	mux.HandleFunc("POST /answers", h.gate.Require(h.handleAddAnswer))
}

func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := qna.ParsePage(r.URL.Query())
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	questions, err := h.store.Questions(r.Context(), page.Limit, page.Offset)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	h.log.Debug("qna.question.list", "limit", page.Limit, "offset", page.Offset, "n", len(questions))
	web.WriteJSON(w, http.StatusOK, questions)
}

type questionInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (in questionInput) validate(op string) error {
	if in.Title == "" {
		return fault.New(op, fault.ErrMalformed, "missing title")
	}
	if in.Content == "" {
		return fault.New(op, fault.ErrMalformed, "missing content")
	}
	return nil
}

func (h *Handler) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "qna.question.add"

	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		web.RenderError(w, h.log, fault.New(op, fault.ErrUnauthorized, "no session"))
		return
	}

	var in questionInput
	if err := web.DecodeJSON(w, r, maxQuestionBody, &in); err != nil {
		web.RenderError(w, h.log, err)
		return
	}
	if err := in.validate(op); err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	title, content, err := h.clean.SanitizePair(r.Context(), in.Title, in.Content)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	q, err := h.store.AddQuestion(r.Context(), qna.NewQuestion{
		Title:     title,
		Content:   content,
		Tags:      in.Tags,
		AccountID: sess.AccountID,
	})
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	h.log.Info("qna.question.add.ok", "id", q.ID, "account_id", sess.AccountID)
	web.WriteJSON(w, http.StatusOK, q)
}

func (h *Handler) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "qna.question.update"

	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		web.RenderError(w, h.log, fault.New(op, fault.ErrUnauthorized, "no session"))
		return
	}
	id, err := pathID(r, op)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	// Ownership before the body is even read; a non-owner learns nothing
	// about whether their payload was acceptable.
	owner, err := h.store.QuestionOwner(r.Context(), id)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}
	if err := auth.RequireOwner(owner, sess); err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	var in questionInput
	if err := web.DecodeJSON(w, r, maxQuestionBody, &in); err != nil {
		web.RenderError(w, h.log, err)
		return
	}
	if err := in.validate(op); err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	title, content, err := h.clean.SanitizePair(r.Context(), in.Title, in.Content)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	q, err := h.store.UpdateQuestion(r.Context(), qna.Question{
		ID:      id,
		Title:   title,
		Content: content,
		Tags:    in.Tags,
	})
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	h.log.Info("qna.question.update.ok", "id", q.ID, "account_id", sess.AccountID)
	web.WriteJSON(w, http.StatusOK, q)
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "qna.question.delete"

	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		web.RenderError(w, h.log, fault.New(op, fault.ErrUnauthorized, "no session"))
		return
	}
	id, err := pathID(r, op)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	owner, err := h.store.QuestionOwner(r.Context(), id)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}
	if err := auth.RequireOwner(owner, sess); err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	if err := h.store.DeleteQuestion(r.Context(), id); err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	h.log.Info("qna.question.delete.ok", "id", id, "account_id", sess.AccountID)
	web.WriteJSON(w, http.StatusOK, fmt.Sprintf("Question %d deleted", id))
}

func (h *Handler) handleAddAnswer(w http.ResponseWriter, r *http.Request) {
	const op = "qna.answer.add"

	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		web.RenderError(w, h.log, fault.New(op, fault.ErrUnauthorized, "no session"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxQuestionBody)
	if err := r.ParseForm(); err != nil {
		web.RenderError(w, h.log, fault.New(op, fault.ErrMalformed, "invalid form body"))
		return
	}

	content := r.PostFormValue("content")
	if content == "" {
		web.RenderError(w, h.log, fault.New(op, fault.ErrMalformed, "missing content"))
		return
	}
	rawID := r.PostFormValue("question_id")
	questionID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || questionID <= 0 {
		web.RenderError(w, h.log, fault.New(op, fault.ErrMalformed, "invalid question_id: "+strconv.Quote(rawID)))
		return
	}

	content, err = h.clean.Sanitize(r.Context(), content)
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	a, err := h.store.AddAnswer(r.Context(), qna.NewAnswer{
		Content:    content,
		QuestionID: questionID,
		AccountID:  sess.AccountID,
	})
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	h.log.Info("qna.answer.add.ok", "id", a.ID, "question_id", questionID, "account_id", sess.AccountID)
	web.WriteJSON(w, http.StatusOK, a)
}

func pathID(r *http.Request, op string) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fault.New(op, fault.ErrMalformed, "invalid question id: "+strconv.Quote(raw))
	}
	return id, nil
}
