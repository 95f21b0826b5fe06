package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachforge-io/agent/internal/models"
	"github.com/teachforge-io/agent/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
}

func TestClient_AttachesBearerTokenAtDispatchTime(t *testing.T) {
	var seenAuth atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username":"t1"}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	client := NewClient(server.URL, store)

	t.Run("no token means no Authorization header", func(t *testing.T) {
		_, err := client.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "", seenAuth.Load())
	})

	t.Run("token set after construction is picked up", func(t *testing.T) {
		// The token is resolved at call time, not at client construction.
		require.NoError(t, store.SetAuth("abc", &models.User{Username: "t1"}))

		_, err := client.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", seenAuth.Load())
	})

	t.Run("cleared token disappears from the next call", func(t *testing.T) {
		require.NoError(t, store.ClearAuth())

		_, err := client.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "", seenAuth.Load())
	})
}

func TestClient_UnauthorizedEvictsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetAuth("stale", &models.User{Username: "t1"}))

	evicted := false
	client := NewClient(server.URL, store, WithEvictionHook(func() {
		evicted = true
	}))

	_, err := client.Profile(context.Background())
	require.Error(t, err)

	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, "", store.Token(), "401 must clear the session before the error propagates")
	assert.Nil(t, store.User())
	assert.True(t, evicted, "the eviction hook is the shell's navigate-to-login signal")

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestClient_UnauthorizedWithoutSessionStaysSilent(t *testing.T) {
	// A 401 on a call that carried no token has no session to evict, so the
	// navigate-to-login signal must not fire. A failed interactive login is
	// the common case.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer server.Close()

	store := newTestStore(t)

	evictions := 0
	client := NewClient(server.URL, store, WithEvictionHook(func() {
		evictions++
	}))

	_, err := client.Login(context.Background(), models.Credentials{Username: "t1", Password: "nope"})
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, 0, evictions, "no session existed, nothing was evicted")
	assert.Equal(t, "", store.Token())
}

func TestClient_SendsIdentityHeaders(t *testing.T) {
	var userAgent, clientID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		clientID = r.Header.Get("X-Client-ID")
		w.Write([]byte(`{"username":"t1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestStore(t))

	_, err := client.Profile(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(userAgent, "teachforge-agent/"), "User-Agent %q must carry the build identifier", userAgent)
	_, err = uuid.Parse(clientID)
	assert.NoError(t, err, "X-Client-ID %q must be a UUID", clientID)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Run("validation error carries the backend message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"title is required"}`))
		}))
		defer server.Close()

		store := newTestStore(t)
		require.NoError(t, store.SetAuth("abc", &models.User{Username: "t1"}))

		client := NewClient(server.URL, store)

		_, err := client.CreateLesson(context.Background(), models.Lesson{})
		require.Error(t, err)

		var apiErr *models.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, models.ErrKindHTTP, apiErr.Kind)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "title is required", apiErr.Message)
		assert.False(t, apiErr.Unauthorized)

		// Business errors never touch the session.
		assert.Equal(t, "abc", store.Token())
	})

	t.Run("network failure is a distinct kind", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse all connections

		store := newTestStore(t)
		require.NoError(t, store.SetAuth("abc", &models.User{Username: "t1"}))

		client := NewClient(server.URL, store)

		_, err := client.Profile(context.Background())
		require.Error(t, err)

		assert.True(t, models.IsNetworkError(err))
		assert.False(t, models.IsUnauthorized(err))
		assert.Equal(t, "abc", store.Token(), "network failures must not evict the session")
	})

	t.Run("timeout is a network failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		store := newTestStore(t)
		client := NewClient(server.URL, store, WithTimeout(20*time.Millisecond))

		_, err := client.Profile(context.Background())
		require.Error(t, err)
		assert.True(t, models.IsNetworkError(err))
	})
}

func TestClient_LoginFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("username") != "t1" || r.PostFormValue("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"invalid credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username":"t1","full_name":"Teacher One"}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStore(t)
	client := NewClient(server.URL, store)

	token, err := client.Login(context.Background(), models.Credentials{Username: "t1", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "abc", token.AccessToken)

	assert.Equal(t, "abc", store.Token())
	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "t1", user.Username)
	assert.Equal(t, "Teacher One", user.FullName, "profile fetch must enrich the session")
}

func TestClient_LoginRejectsBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	client := NewClient(server.URL, store)

	_, err := client.Login(context.Background(), models.Credentials{Username: "t1", Password: "nope"})
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, "", store.Token())
}

func TestClient_LoginSurvivesProfileFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"abc"}`))
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStore(t)
	client := NewClient(server.URL, store)

	_, err := client.Login(context.Background(), models.Credentials{Username: "t1", Password: "pw"})
	require.NoError(t, err)

	// The basic session stands even though the profile enrichment failed.
	assert.Equal(t, "abc", store.Token())
	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "t1", user.Username)
}

func TestClient_VerifySessionScenario(t *testing.T) {
	// Login succeeds, then the token is invalidated server-side: the next
	// verification returns 401, the session is evicted and the
	// navigate-to-login signal fires.
	valid := atomic.Bool{}
	valid.Store(true)

	mux := http.NewServeMux()
	mux.HandleFunc("/teacher/profile", func(w http.ResponseWriter, r *http.Request) {
		if !valid.Load() || r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username":"t1","school":"PS 118"}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetAuth("abc", &models.User{Username: "t1"}))

	evictions := 0
	client := NewClient(server.URL, store, WithEvictionHook(func() {
		evictions++
	}))

	user, err := client.VerifySession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PS 118", user.School)
	assert.Equal(t, "abc", store.Token(), "verification must not change the token")
	require.NotNil(t, store.User())
	assert.Equal(t, "PS 118", store.User().School)

	valid.Store(false)

	_, err = client.VerifySession(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, "", store.Token())
	assert.Nil(t, store.User())
	assert.Equal(t, 1, evictions)
}
