// Package azdo is a read-only REST client for Azure DevOps pull-request
// data: threads, reviewers, PR metadata, and the viewing user's profile.
// It hands the timeline engine already-deserialized collections; all wire
// handling lives here.
package azdo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/adoview/internal/retry"
	"github.com/adoview/pkg/models"
)

const apiVersion = "7.1"

// Client talks to one organization/project.
type Client struct {
	baseURL      string
	organization string
	project      string
	token        string
	httpClient   *http.Client
	retryCfg     retry.Config
	cache        *threadCache
}

// NewClient creates a client authenticated with a personal access token.
func NewClient(baseURL, organization, project, token string) *Client {
	return &Client{
		baseURL:      baseURL,
		organization: organization,
		project:      project,
		token:        token,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		retryCfg:     retry.DefaultConfig(),
		cache:        newThreadCache(),
	}
}

type listResponse struct {
	Count int             `json:"count"`
	Value json.RawMessage `json:"value"`
}

// PullRequest fetches the PR metadata, including its reviewer list.
func (c *Client) PullRequest(ctx context.Context, repo string, id int) (*models.PullRequest, error) {
	var pr models.PullRequest
	path := fmt.Sprintf("git/repositories/%s/pullrequests/%d", url.PathEscape(repo), id)
	if err := c.get(ctx, path, &pr); err != nil {
		return nil, fmt.Errorf("fetching pull request %d: %w", id, err)
	}
	return &pr, nil
}

// Threads fetches the full comment-thread collection for a PR. Results are
// cached per PR for the lifetime of the client; the cache is read-through
// and callers treat the returned slice as read-only input.
func (c *Client) Threads(ctx context.Context, repo string, id int) ([]models.Thread, error) {
	key := fmt.Sprintf("%s/%d", repo, id)
	if threads, ok := c.cache.get(key); ok {
		return threads, nil
	}

	var list listResponse
	path := fmt.Sprintf("git/repositories/%s/pullrequests/%d/threads", url.PathEscape(repo), id)
	if err := c.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("fetching threads for pull request %d: %w", id, err)
	}
	var threads []models.Thread
	if err := json.Unmarshal(list.Value, &threads); err != nil {
		return nil, fmt.Errorf("decoding threads for pull request %d: %w", id, err)
	}

	c.cache.set(key, threads)

	// The cached entry is canonical; the caller gets a private copy on the
	// miss path too, not the backing slice just stored.
	out := make([]models.Thread, len(threads))
	copy(out, threads)
	return out, nil
}

// InvalidateThreads drops the cached thread collection for a PR.
func (c *Client) InvalidateThreads(repo string, id int) {
	c.cache.invalidate(fmt.Sprintf("%s/%d", repo, id))
}

// Reviewers fetches the reviewer list for a PR.
func (c *Client) Reviewers(ctx context.Context, repo string, id int) ([]models.Reviewer, error) {
	var list listResponse
	path := fmt.Sprintf("git/repositories/%s/pullrequests/%d/reviewers", url.PathEscape(repo), id)
	if err := c.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("fetching reviewers for pull request %d: %w", id, err)
	}
	var reviewers []models.Reviewer
	if err := json.Unmarshal(list.Value, &reviewers); err != nil {
		return nil, fmt.Errorf("decoding reviewers for pull request %d: %w", id, err)
	}
	return reviewers, nil
}

// Profile fetches the viewing user's own profile, used to attribute the
// synthetic creation event when the viewer is the PR author.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.getURL(ctx, c.baseURL+"/_apis/profile/profiles/me", &profile); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &profile, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s/%s/_apis/%s",
		c.baseURL, url.PathEscape(c.organization), url.PathEscape(c.project), path)
	return c.getURL(ctx, endpoint, out)
}

func (c *Client) getURL(ctx context.Context, endpoint string, out interface{}) error {
	requestID := uuid.NewString()
	return retry.Do(ctx, c.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		q := req.URL.Query()
		q.Set("api-version", apiVersion)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Authorization", "Basic "+
			base64.StdEncoding.EncodeToString([]byte(":"+c.token)))
		req.Header.Set("Accept", "application/json")

		log.Debug().
			Str("request_id", requestID).
			Str("url", req.URL.String()).
			Msg("azdo request")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("azdo request failed: %s: %s", resp.Status, string(body))
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}
