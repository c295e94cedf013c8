package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"didauth/internal/domain"
)

// ErrNoRelay is returned when no relay URL is configured.
var ErrNoRelay = errors.New("no relay URL configured")

// HTTP is a ChallengeTransport backed by a relay server.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the relay at base.
func NewHTTP(base string) *HTTP {
	return &HTTP{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: 15 * time.Second},
	}
}

// DeliverChallenge queues env for env.DIDAddress.
func (c *HTTP) DeliverChallenge(ctx context.Context, env domain.ChallengeEnvelope) error {
	if env.DIDAddress == "" {
		return errors.New("relay: envelope has no DID")
	}
	return c.post(ctx, challengePath(env.DIDAddress), env, nil)
}

// FetchChallenges returns up to limit queued envelopes for did. A limit of
// zero or less fetches all of them.
func (c *HTTP) FetchChallenges(
	ctx context.Context,
	did domain.DID,
	limit int,
) ([]domain.ChallengeEnvelope, error) {
	path := challengePath(did)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var envs []domain.ChallengeEnvelope
	if err := c.getJSON(ctx, path, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

// AckChallenges drops the first count envelopes queued for did.
func (c *HTTP) AckChallenges(ctx context.Context, did domain.DID, count int) error {
	return c.post(ctx, challengePath(did)+"/ack", ackRequest{Count: count}, nil)
}

type ackRequest struct {
	Count int `json:"count"`
}

func challengePath(did domain.DID) string {
	return "/challenge/" + url.PathEscape(string(did))
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	if c.Base == "" {
		return ErrNoRelay
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay post %s: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	if c.Base == "" {
		return ErrNoRelay
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay get %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.ChallengeTransport = (*HTTP)(nil)
