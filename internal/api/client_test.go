package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/require"

	"github.com/stratohq/strato/pkg/models"
)

func TestListDeployments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v4/deployments", r.URL.Path)
		require.Equal(t, "Bearer tok_123", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		q := r.URL.Query()
		require.Equal(t, "website", q.Get("app"))
		require.Equal(t, "acme", q.Get("teamId"))
		require.Equal(t, "20", q.Get("limit"))
		require.Equal(t, "1700000000000", q.Get("until"))
		require.Equal(t, "prod", q.Get("meta-env"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"deployments": [
				{"url": "website-abc.strato.app", "name": "website", "state": "READY", "createdAt": 200},
				{"url": "website-def.strato.app", "name": "website", "state": "WEIRD", "createdAt": 100}
			],
			"pagination": {"count": 2, "next": 100}
		}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok_123")
	deps, pagination, err := client.ListDeployments(DeploymentsQuery{
		App:   "website",
		Scope: "acme",
		Meta:  map[string]string{"env": "prod"},
		Until: 1700000000000,
		Limit: 20,
	})
	require.NoError(t, err)
	require.Len(t, deps, 2)
	require.Equal(t, models.DeploymentStateReady, deps[0].State)

	// unrecognized states normalize
	require.Equal(t, models.DeploymentStateUnknown, deps[1].State)

	require.Equal(t, 2, pagination.Count)
	require.Equal(t, int64(100), pagination.Next)
}

func TestFindDeployment_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": {"message": "deployment not found"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok_123")
	_, err := client.FindDeployment("missing", "")
	require.Error(t, err)
	require.True(t, errdefs.IsNotFound(err))
}

func TestDoJSON_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"user": {"username": "jane", "email": "jane@example.com"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok_123")
	user, err := client.GetUser()
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
	require.Equal(t, "jane", user.Username)
}

func TestDoJSON_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "token scope does not cover this team"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok_123")
	_, _, err := client.ListDeployments(DeploymentsQuery{})
	require.ErrorContains(t, err, "token scope does not cover this team")
	require.False(t, errdefs.IsNotFound(err))
}
