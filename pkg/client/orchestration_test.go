package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwilczek/hoverfly-client-go/pkg/client"
	"github.com/bwilczek/hoverfly-client-go/pkg/hoverflytest"
	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

func pair(path string, status int, body string) simulation.Pair {
	return simulation.Pair{
		Request:  simulation.RequestMatcher{Path: simulation.Exact(path)},
		Response: simulation.ResponseData{Status: status, Body: body},
	}
}

func bodies(sim *simulation.Simulation) []string {
	out := make([]string, 0, len(sim.Data.Pairs))
	for _, p := range sim.Data.Pairs {
		out = append(out, p.Response.Body)
	}
	return out
}

func TestAppendSimulation(t *testing.T) {
	ctx := context.Background()
	fake, c := hoverflytest.Start(t)

	_, err := c.UploadSimulation(ctx, simulation.Build([]simulation.Pair{pair("/a", 200, "a"), pair("/b", 200, "old b")}))
	require.NoError(t, err)

	_, err = c.AppendSimulation(ctx, simulation.Build([]simulation.Pair{pair("/b", 200, "new b"), pair("/c", 200, "c")}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "new b", "c"}, bodies(fake.Simulation()))
}

func TestWithSimulation_RestoresOnSuccess(t *testing.T) {
	ctx := context.Background()
	fake, c := hoverflytest.Start(t)
	_, err := c.UploadSimulation(ctx, simulation.Build([]simulation.Pair{pair("/a", 200, "a")}))
	require.NoError(t, err)

	var during []string
	err = c.WithSimulation(ctx, simulation.Build([]simulation.Pair{pair("/tmp", 201, "tmp")}), func() error {
		during = bodies(fake.Simulation())
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "tmp"}, during)
	assert.Equal(t, []string{"a"}, bodies(fake.Simulation()))
}

func TestWithSimulation_ErrorSkipsRestore(t *testing.T) {
	ctx := context.Background()
	fake, c := hoverflytest.Start(t)
	_, err := c.UploadSimulation(ctx, simulation.Build([]simulation.Pair{pair("/a", 200, "a")}))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = c.WithSimulation(ctx, simulation.Build([]simulation.Pair{pair("/tmp", 201, "tmp")}), func() error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "tmp"}, bodies(fake.Simulation()))
}

func TestWithSimulation_UploadFailureSkipsFn(t *testing.T) {
	fake := hoverflytest.NewFakeAdmin()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Invalid simulation"}`)
			return
		}
		fake.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	c := client.New(srv.URL)

	called := false
	err := c.WithSimulation(context.Background(), simulation.Build(nil), func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, client.ErrRejected)
	assert.False(t, called)
}

// failingReads serves fake but answers simulation GETs with a 502 error document.
func failingReads(t *testing.T, fake *hoverflytest.FakeAdmin) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == client.SimulationPath {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `{"error":"upstream unavailable"}`)
			return
		}
		fake.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestAppendSimulation_FailedReadKeepsServerPairs(t *testing.T) {
	ctx := context.Background()
	fake, seed := hoverflytest.Start(t)
	_, err := seed.UploadSimulation(ctx, simulation.Build([]simulation.Pair{pair("/a", 200, "a"), pair("/b", 200, "b")}))
	require.NoError(t, err)

	c := failingReads(t, fake)
	_, err = c.AppendSimulation(ctx, simulation.Build([]simulation.Pair{pair("/c", 200, "c")}))

	var decodeErr *client.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, http.StatusBadGateway, decodeErr.StatusCode)
	assert.Equal(t, []string{"a", "b"}, bodies(fake.Simulation()))
}

func TestWithSimulation_FailedReadSkipsFn(t *testing.T) {
	ctx := context.Background()
	fake, seed := hoverflytest.Start(t)
	_, err := seed.UploadSimulation(ctx, simulation.Build([]simulation.Pair{pair("/a", 200, "a")}))
	require.NoError(t, err)

	c := failingReads(t, fake)
	called := false
	err = c.WithSimulation(ctx, simulation.Build([]simulation.Pair{pair("/tmp", 201, "tmp")}), func() error {
		called = true
		return nil
	})

	var decodeErr *client.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.False(t, called)
	assert.Equal(t, []string{"a"}, bodies(fake.Simulation()))
}
