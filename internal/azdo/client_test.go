package azdo

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threadsPayload = `{
	"count": 2,
	"value": [
		{
			"id": 200,
			"publishedDate": "2025-02-10T09:15:00Z",
			"comments": [
				{"id": 1, "author": {"id": "u1", "displayName": "Mei Chen"}, "content": "first"}
			]
		},
		{
			"id": 201,
			"publishedDate": "2025-02-11T09:00:00Z",
			"comments": [
				{"id": 1, "author": {"id": "svc", "displayName": "TFS"}, "content": "voted 10", "commentType": "system"}
			],
			"properties": {
				"CodeReviewThreadType": {"$type": "System.String", "$value": "VoteUpdate"}
			}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "contoso", "platform", "secret-pat")
	client.retryCfg.MaxRetries = 0
	return client, srv
}

func TestThreadsFetchAndCache(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/contoso/platform/_apis/git/repositories/exporter/pullrequests/3412/threads", r.URL.Path)
		assert.Equal(t, "7.1", r.URL.Query().Get("api-version"))

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte(":secret-pat"))
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(threadsPayload))
	})

	ctx := context.Background()
	threads, err := client.Threads(ctx, "exporter", 3412)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, 200, threads[0].ID)
	assert.Equal(t, "Mei Chen", threads[0].Comments[0].Author.DisplayName)

	tt, ok := threads[1].Properties.Get("CodeReviewThreadType")
	require.True(t, ok)
	s, _ := tt.AsString()
	assert.Equal(t, "VoteUpdate", s)

	// Second fetch is served from the cache.
	_, err = client.Threads(ctx, "exporter", 3412)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	// Invalidation forces a refetch.
	client.InvalidateThreads("exporter", 3412)
	_, err = client.Threads(ctx, "exporter", 3412)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestThreadsCacheReturnsPrivateSlice(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(threadsPayload))
	})

	ctx := context.Background()
	first, err := client.Threads(ctx, "exporter", 3412)
	require.NoError(t, err)
	first[0].ID = 999

	second, err := client.Threads(ctx, "exporter", 3412)
	require.NoError(t, err)
	assert.Equal(t, 200, second[0].ID, "cache entries are copied out")
}

func TestPullRequestAndReviewers(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contoso/platform/_apis/git/repositories/exporter/pullrequests/3412":
			w.Write([]byte(`{
				"pullRequestId": 3412,
				"title": "Harden retry behavior",
				"createdBy": {"id": "c1", "displayName": "Priya Nair", "uniqueName": "priya@contoso.com"},
				"creationDate": "2025-02-10T08:30:00Z"
			}`))
		case "/contoso/platform/_apis/git/repositories/exporter/pullrequests/3412/reviewers":
			w.Write([]byte(`{
				"count": 1,
				"value": [{"id": "t1", "displayName": "Platform Team", "vote": 10, "isContainer": true}]
			}`))
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	pr, err := client.PullRequest(ctx, "exporter", 3412)
	require.NoError(t, err)
	assert.Equal(t, 3412, pr.PullRequestID)
	assert.Equal(t, "Priya Nair", pr.CreatedBy.DisplayName)

	reviewers, err := client.Reviewers(ctx, "exporter", 3412)
	require.NoError(t, err)
	require.Len(t, reviewers, 1)
	assert.True(t, reviewers[0].IsContainer)
	assert.Equal(t, 10, reviewers[0].Vote)
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "TF400813: not authorized"}`))
	})

	_, err := client.Threads(context.Background(), "exporter", 3412)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "TF400813")
}
