package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quill/cmd/internal/fault"
	"quill/cmd/security/token"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func testGate(t *testing.T) (*Gate, *token.Codec) {
	t.Helper()
	codec, err := token.NewCodec(testKeyHex)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGate(log, codec), codec
}

func protected(t *testing.T, g *Gate, wantAccount int64) http.HandlerFunc {
	t.Helper()
	return g.Require(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFromContext(r.Context())
		if !ok {
			t.Fatalf("session missing from context")
		}
		if s.AccountID != wantAccount {
			t.Fatalf("session account = %d, want %d", s.AccountID, wantAccount)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestGate_ValidToken(t *testing.T) {
	g, codec := testGate(t)

	raw, err := codec.Issue(9, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/questions", nil)
	req.Header.Set("Authorization", raw)
	rr := httptest.NewRecorder()
	protected(t, g, 9)(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
}

func TestGate_BearerPrefixTolerated(t *testing.T) {
	g, codec := testGate(t)

	raw, err := codec.Issue(9, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/questions", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rr := httptest.NewRecorder()
	protected(t, g, 9)(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
}

func TestGate_MissingAndInvalidRenderIdentically(t *testing.T) {
	g, _ := testGate(t)

	next := g.Require(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next handler must not run")
	})

	missing := httptest.NewRequest(http.MethodPost, "/questions", nil)
	rrMissing := httptest.NewRecorder()
	next(rrMissing, missing)

	invalid := httptest.NewRequest(http.MethodPost, "/questions", nil)
	invalid.Header.Set("Authorization", "v4.local.garbage")
	rrInvalid := httptest.NewRecorder()
	next(rrInvalid, invalid)

	if rrMissing.Code != http.StatusUnauthorized || rrInvalid.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d; want 401, 401", rrMissing.Code, rrInvalid.Code)
	}
	if rrMissing.Body.String() != rrInvalid.Body.String() {
		t.Fatalf("missing and invalid credentials must render the same body:\n%q\n%q",
			rrMissing.Body.String(), rrInvalid.Body.String())
	}
}

func TestGate_ExpiredToken(t *testing.T) {
	g, codec := testGate(t)

	issued := time.Now().UTC().Add(-token.Lifetime - time.Hour)
	raw, err := codec.Issue(9, issued)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/questions", nil)
	req.Header.Set("Authorization", raw)
	rr := httptest.NewRecorder()
	g.Require(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next handler must not run")
	})(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestRequireOwner(t *testing.T) {
	s := token.Session{AccountID: 4}

	if err := RequireOwner(4, s); err != nil {
		t.Fatalf("owner match: unexpected error %v", err)
	}

	err := RequireOwner(5, s)
	if err == nil {
		t.Fatalf("owner mismatch must be denied")
	}
	if !fault.IsUnauthorized(err) {
		t.Fatalf("mismatch kind = %v, want unauthorized", err)
	}
}
