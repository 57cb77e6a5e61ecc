// Package authapi exposes the registration and login endpoints.
package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"quill/cmd/internal/fault"
	"quill/cmd/internal/qna"
	"quill/cmd/internal/web"
	"quill/cmd/security/password"
	"quill/cmd/security/token"
)

// maxCredentialBody bounds registration/login request bodies.
const maxCredentialBody = 16 << 10

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler serves account registration and login.
type Handler struct {
	log    *slog.Logger
	store  qna.Store
	hasher password.Config
	codec  *token.Codec
	now    func() time.Time

	// dummyHash is verified against when the email is unknown, so a login
	// probe costs the same whether or not the account exists.
	dummyHash string
}

// NewHandler wires the auth endpoints.
func NewHandler(log *slog.Logger, store qna.Store, hasher password.Config, codec *token.Codec) (*Handler, error) {
	dummy, err := hasher.Hash("quill-timing-pad-credential")
	if err != nil {
		return nil, err
	}
	return &Handler{
		log:       log,
		store:     store,
		hasher:    hasher,
		codec:     codec,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// Register registers the auth routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /registration", h.handleRegistration)
	mux.HandleFunc("POST /login", h.handleLogin)
}

func (h *Handler) handleRegistration(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := web.DecodeJSON(w, r, maxCredentialBody, &in); err != nil {
		web.RenderError(w, h.log, err)
		return
	}
	if err := validateEmail(in.Email); err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	hash, err := h.hasher.Hash(in.Password)
	if err != nil {
		web.RenderError(w, h.log, hashFault("auth.register", err))
		return
	}

	err = h.store.AddAccount(r.Context(), qna.Account{
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	h.log.Info("auth.register.ok", "email", in.Email)
	web.WriteJSON(w, http.StatusOK, "Account added")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := web.DecodeJSON(w, r, maxCredentialBody, &in); err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	account, lookupErr := h.store.AccountByEmail(r.Context(), in.Email)
	if lookupErr != nil && !fault.IsNotFound(lookupErr) {
		web.RenderError(w, h.log, lookupErr)
		return
	}

	storedHash := h.dummyHash
	if lookupErr == nil {
		storedHash = account.PasswordHash
	}

	ok, err := h.hasher.Verify(storedHash, in.Password)
	if err != nil {
		// A stored hash we cannot parse is a server-side defect, except when
		// we were verifying the timing pad for an unknown email.
		if lookupErr == nil {
			web.RenderError(w, h.log, fault.New("auth.login", fault.ErrHashing, err.Error()))
			return
		}
		ok = false
	}
	if lookupErr != nil || !ok {
		h.log.Info("auth.login.fail", "email", in.Email)
		web.RenderError(w, h.log, fault.New("auth.login", fault.ErrWrongCredential, "credential mismatch"))
		return
	}

	tok, err := h.codec.Issue(account.ID, h.now())
	if err != nil {
		web.RenderError(w, h.log, err)
		return
	}

	h.log.Info("auth.login.ok", "account_id", account.ID)
	web.WriteJSON(w, http.StatusOK, tok)
}

func validateEmail(email string) error {
	const op = "auth.register"
	email = strings.TrimSpace(email)
	if email == "" {
		return fault.New(op, fault.ErrMalformed, "missing email")
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return fault.New(op, fault.ErrMalformed, "invalid email address")
	}
	return nil
}

// hashFault maps hashing errors: policy violations are caller-correctable,
// everything else is a hashing failure.
func hashFault(op string, err error) error {
	switch {
	case errors.Is(err, password.ErrPasswordTooShort),
		errors.Is(err, password.ErrPasswordTooLong),
		errors.Is(err, password.ErrWeakPassword):
		return fault.New(op, fault.ErrMalformed, err.Error())
	default:
		return fault.New(op, fault.ErrHashing, err.Error())
	}
}
