package main

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnthao/solienlac/api"
	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/storage/memdb"
	testutil "github.com/tnthao/solienlac/tests"
)

func newTestCLI(t *testing.T) *commandLine {
	t.Helper()
	logger = log.New(io.Discard, "", 0)

	conf := *core.Conf
	conf.Debug = true
	conf.Backend = core.BackendMemDB
	conf.DataFile = filepath.Join(t.TempDir(), "data.json")
	return &commandLine{conf: &conf, appLog: testutil.NopLogger{}}
}

func mockPassword(t *testing.T, pwd string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

func TestRunHelp(t *testing.T) {
	cli := newTestCLI(t)

	assert.ErrorIs(t, cli.run([]string{"admin"}), errHelp)
	assert.ErrorIs(t, cli.run([]string{"admin", "selfdestruct"}), errHelp)
}

func TestRunAddUser(t *testing.T) {
	ctx := context.Background()

	t.Run("family account", func(t *testing.T) {
		cli := newTestCLI(t)
		mockPassword(t, "secret1")

		err := cli.run([]string{"admin", "adduser", "-username", "ti_mother", "-fullname", "Ti's Mother", "-student", "HS002"})
		require.NoError(t, err)

		db, err := memdb.Open(cli.conf.DataFile)
		require.NoError(t, err)
		usr, err := db.GetUserByUsername(ctx, "ti_mother")
		require.NoError(t, err)
		require.NotNil(t, usr)
		assert.Equal(t, "app", usr.Role)
	})

	t.Run("admin account", func(t *testing.T) {
		cli := newTestCLI(t)
		mockPassword(t, "secret1")

		err := cli.run([]string{"admin", "adduser", "-username", "Second_Teacher", "-fullname", "Mr. Ba", "-admin"})
		require.NoError(t, err)

		db, err := memdb.Open(cli.conf.DataFile)
		require.NoError(t, err)
		usr, err := db.GetUserByUsername(ctx, "second_teacher")
		require.NoError(t, err)
		require.NotNil(t, usr)
		assert.Equal(t, "admin", usr.Role)

		loggedIn, err := db.Login(ctx, "second_teacher", "secret1")
		require.NoError(t, err)
		assert.NotNil(t, loggedIn)
	})

	t.Run("missing flags", func(t *testing.T) {
		cli := newTestCLI(t)
		assert.ErrorIs(t, cli.run([]string{"admin", "adduser", "-fullname", "No Name"}), errHelp)
	})

	t.Run("empty password", func(t *testing.T) {
		cli := newTestCLI(t)
		mockPassword(t, "")
		err := cli.run([]string{"admin", "adduser", "-username", "someone", "-fullname", "X", "-student", "HS001"})
		assert.ErrorIs(t, err, errHelp)
	})
}

func TestRunSeed(t *testing.T) {
	cli := newTestCLI(t)

	// a fresh memdb backend seeds itself, so a plain seed refuses
	err := cli.run([]string{"admin", "seed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-force")

	require.NoError(t, cli.run([]string{"admin", "seed", "-force"}))

	db, err := memdb.Open(cli.conf.DataFile)
	require.NoError(t, err)
	classes, err := db.QueryClasses(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 4) // self-seed plus forced seed
}

func TestRunAnnounce(t *testing.T) {
	ctx := context.Background()
	cli := newTestCLI(t)

	err := cli.run([]string{
		"admin", "announce",
		"-class", "c1",
		"-title", "School closed Monday",
		"-content", "Maintenance work on the building.",
		"-target", "parents",
		"-pin",
	})
	require.NoError(t, err)

	db, err := memdb.Open(cli.conf.DataFile)
	require.NoError(t, err)
	anns, err := db.QueryAnnouncements(ctx, "c1")
	require.NoError(t, err)

	var found bool
	for _, a := range anns {
		if a.Title == "School closed Monday" {
			found = true
			assert.True(t, a.Pinned)
			assert.Equal(t, "parents", a.Target)
			assert.Equal(t, "Admin", a.Author) // default author
		}
	}
	assert.True(t, found)
}

func TestOpenProviderRemote(t *testing.T) {
	ctx := context.Background()

	store, err := memdb.Open("")
	require.NoError(t, err)
	backend := httptest.NewServer(api.NewServer(api.Options{
		Store:          store,
		Logger:         testutil.NopLogger{},
		DisableReqLogs: true,
	}))
	t.Cleanup(backend.Close)

	cli := newTestCLI(t)
	cli.conf.Backend = core.BackendRemote
	cli.conf.RemoteURL = backend.URL

	provider, cleanup, err := openProvider(cli.conf)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	classes, err := provider.QueryClasses(ctx)
	require.NoError(t, err)
	assert.Len(t, classes, 2)

	t.Run("missing url", func(t *testing.T) {
		cli := newTestCLI(t)
		cli.conf.Backend = core.BackendRemote
		cli.conf.RemoteURL = ""

		_, _, err := openProvider(cli.conf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no remote URL")
	})
}
