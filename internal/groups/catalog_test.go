package groups_test

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeuniverse/daed-sub000/internal/config"
	"github.com/daeuniverse/daed-sub000/internal/groups"
	"github.com/daeuniverse/daed-sub000/internal/scheduler"
)

func createDatabase(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daed.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE groups (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)
	for _, name := range names {
		insertGroup(t, path, name)
	}
	return path
}

func insertGroup(t *testing.T, path, name string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`INSERT INTO groups (name) VALUES (?)`, name)
	require.NoError(t, err)
}

func testConfig(path string) config.Config {
	cfg := config.Default()
	cfg.GroupDatabase = path
	return cfg
}

func TestOpenWithoutDatabase(t *testing.T) {
	_, err := groups.Open(config.Default())
	assert.True(t, errors.Is(err, groups.ErrNoDatabase))

	var c *groups.Catalog
	assert.Nil(t, c.Names())
}

func TestOpenMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	db.Close()

	_, err = groups.Open(testConfig(path))
	assert.Error(t, err)
}

func TestNamesAndReload(t *testing.T) {
	path := createDatabase(t, "proxy", "my_group", "proxy")

	c, err := groups.Open(testConfig(path))
	require.NoError(t, err)
	assert.Equal(t, []string{"my_group", "proxy"}, c.Names())

	insertGroup(t, path, "hk")
	assert.Len(t, c.Names(), 2, "names change only on reload")

	require.NoError(t, c.Reload())
	assert.Equal(t, []string{"hk", "my_group", "proxy"}, c.Names())

	names := c.Names()
	names[0] = "mutated"
	assert.Equal(t, "hk", c.Names()[0])
}

func TestCustomQuery(t *testing.T) {
	path := createDatabase(t, "alpha", "beta")
	cfg := testConfig(path)
	cfg.GroupQuery = `SELECT name FROM groups WHERE name LIKE 'b%'`

	c, err := groups.Open(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, c.Names())
}

func TestScheduledReload(t *testing.T) {
	path := createDatabase(t, "proxy")
	c, err := groups.Open(testConfig(path))
	require.NoError(t, err)

	s := scheduler.NewScheduler(4)
	s.RunScheduler()
	insertGroup(t, path, "hk")
	s.ScheduleHighPriorityTask(c.Task())
	s.StopScheduler()

	assert.Equal(t, []string{"hk", "proxy"}, c.Names())
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := createDatabase(t, "proxy")
	c, err := groups.Open(testConfig(path))
	require.NoError(t, err)

	s := scheduler.NewScheduler(4)
	s.RunScheduler()
	defer s.StopScheduler()

	closer, err := c.Watch(s, 20*time.Millisecond)
	require.NoError(t, err)
	defer closer.Close()

	insertGroup(t, path, "hk")

	assert.Eventually(t, func() bool {
		return len(c.Names()) == 2
	}, 3*time.Second, 20*time.Millisecond)
}
