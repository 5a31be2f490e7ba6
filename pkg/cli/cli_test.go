package cli

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/bwilczek/hoverfly-client-go/pkg/hoverflytest"
	"github.com/bwilczek/hoverfly-client-go/pkg/journal"
)

// TestMain registers hfctl so scripts can exec it in a subprocess.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"hfctl": Main,
	}))
}

// TestScripts runs testdata/script/*.txtar, each against its own FakeAdmin
// preloaded with two journal entries.
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			fake := hoverflytest.NewFakeAdmin()
			fake.RecordRequest(
				journal.Request{Scheme: "http", Destination: "api.local", Path: "/orders", Method: "POST", Body: `{"id":1}`},
				journal.Response{Status: 502, Body: "upstream down"},
			)
			fake.RecordRequest(
				journal.Request{Scheme: "https", Destination: "www.npmjs.com", Path: "/", Method: "GET"},
				journal.Response{Status: 200, Body: "Forged NPMJS"},
			)
			srv := httptest.NewServer(fake)
			env.Defer(srv.Close)

			env.Setenv("HOVERFLY_ADMIN_URL", srv.URL)
			env.Setenv("HOME", filepath.Join(env.WorkDir, "home"))
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, "home", ".config"))
			return nil
		},
	})
}
