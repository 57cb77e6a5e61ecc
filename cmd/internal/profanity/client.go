// Package profanity is the client for the external text-classification
// service. It retries transient failures with bounded exponential backoff and
// folds every non-success into the fault taxonomy.
package profanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"quill/cmd/internal/fault"
)

const (
	// maxRetries bounds the retry budget for transient failures. A transient
	// call is attempted at most 1+maxRetries times.
	maxRetries = 3

	defaultRetryBase = 250 * time.Millisecond
	defaultTimeout   = 10 * time.Second

	// maxErrorBodyBytes caps how much of a dependency error body is read.
	maxErrorBodyBytes = 64 << 10
)

// Config for the classification dependency.
type Config struct {
	// BaseURL of the service; the client POSTs to <BaseURL>/classify.
	BaseURL string

	// APIKey is sent in the "apikey" request header.
	APIKey string

	// RetryBase is the first backoff delay; subsequent delays double.
	// Zero means the default.
	RetryBase time.Duration

	// Timeout applies per HTTP attempt. Zero means the default.
	Timeout time.Duration
}

// Result is the service's success body.
type Result struct {
	Content         string    `json:"content"`
	BadWordsTotal   int       `json:"bad_words_total"`
	BadWordsList    []BadWord `json:"bad_words_list"`
	CensoredContent string    `json:"censored_content"`
}

// BadWord describes one flagged word in a classified text.
type BadWord struct {
	Original    string `json:"original"`
	Word        string `json:"word"`
	Deviations  int64  `json:"deviations"`
	Info        int64  `json:"info"`
	ReplacedLen int64  `json:"replacedLen"`
}

type errorBody struct {
	Message string `json:"message"`
}

// Client calls the classification service. It is stateless with respect to
// mutable shared data and safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

// New constructs a Client.
func New(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = defaultRetryBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// Sanitize classifies text and returns the censored version. Transport
// failures and 5xx responses are retried with exponential backoff, bounded at
// maxRetries; a 4xx is terminal on the first sight. When the service reports
// no bad words the input is returned verbatim.
func (c *Client) Sanitize(ctx context.Context, text string) (string, error) {
	var out string
	var lastErr error

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(c.cfg.RetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		censored, transient, err := c.classify(ctx, text)
		if err != nil {
			lastErr = err
			if transient {
				retriesTotal.Inc()
				c.log.Warn("profanity.retry", "err", err)
				return retry.RetryableError(err)
			}
			return err
		}
		out = censored
		return nil
	})
	if err != nil {
		// Report the last attempt's taxonomy fault, not go-retry's wrapper.
		if lastErr != nil {
			err = lastErr
		}
		requestsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return "", err
	}

	requestsTotal.WithLabelValues("success").Inc()
	return out, nil
}

// SanitizePair sanitizes two independent fields concurrently (fork-join).
// Both calls are issued before either result is awaited; the first failure
// cancels the other call and no partial output is returned.
func (c *Client) SanitizePair(ctx context.Context, first, second string) (string, string, error) {
	var outFirst, outSecond string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.Sanitize(ctx, first)
		if err != nil {
			return err
		}
		outFirst = s
		return nil
	})
	g.Go(func() error {
		s, err := c.Sanitize(ctx, second)
		if err != nil {
			return err
		}
		outSecond = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return outFirst, outSecond, nil
}

// classify performs one attempt. transient reports whether the failure may
// succeed on retry (network-level failure or 5xx); malformed success bodies
// and 4xx responses are terminal.
func (c *Client) classify(ctx context.Context, text string) (censored string, transient bool, err error) {
	const op = "profanity.classify"

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/classify?censor_character=*"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(text))
	if err != nil {
		return "", false, fault.New(op, fault.ErrTransport, err.Error())
	}
	req.Header.Set("apikey", c.cfg.APIKey)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, fault.New(op, fault.ErrTransport, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := fault.Remote(op, resp.StatusCode, remoteMessage(resp.Body))
		return "", resp.StatusCode >= 500, remote
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fault.New(op, fault.ErrTransport, err.Error())
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		// Protocol-contract violation, not a silent pass-through.
		return "", false, fault.New(op, fault.ErrTransport, "malformed success body: "+err.Error())
	}

	// The service leaves censored_content empty when nothing was censored;
	// success means identical-to-input in that case.
	if res.BadWordsTotal == 0 {
		return text, false, nil
	}
	if res.CensoredContent == "" {
		return "", false, fault.New(op, fault.ErrTransport,
			fmt.Sprintf("empty censored_content with bad_words_total=%d", res.BadWordsTotal))
	}
	return res.CensoredContent, false, nil
}

// remoteMessage extracts the structured {message} error body, best effort.
func remoteMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return strings.TrimSpace(string(body))
	}
	return eb.Message
}
