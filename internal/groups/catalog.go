// Package groups reads the names of routing groups kept in the sqlite store
// of the dae admin backend. Groups defined there are offered by completion
// next to the groups declared in the open document.
package groups

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/lo"
	"github.com/tliron/commonlog"

	"github.com/daeuniverse/daed-sub000/internal/config"
	"github.com/daeuniverse/daed-sub000/internal/scheduler"
)

var log = commonlog.GetLogger("dae-lsp.groups")

var ErrNoDatabase = errors.New("no group database configured")

// Catalog caches group names between reloads. The zero value is not usable,
// create one with Open.
type Catalog struct {
	path  string
	query string

	mu    sync.RWMutex
	names []string
}

// Open creates a catalog for cfg.GroupDatabase and performs the first load.
func Open(cfg config.Config) (*Catalog, error) {
	if strings.TrimSpace(cfg.GroupDatabase) == "" {
		return nil, ErrNoDatabase
	}
	query := cfg.GroupQuery
	if query == "" {
		query = config.Default().GroupQuery
	}

	c := &Catalog{path: cfg.GroupDatabase, query: query}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the group names. On failure the previous names are kept.
func (c *Catalog) Reload() error {
	db, err := sql.Open("sqlite3", "file:"+c.path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open group database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(c.query)
	if err != nil {
		return fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan group name: %w", err)
		}
		if name.Valid && name.String != "" {
			names = append(names, name.String)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read groups: %w", err)
	}

	names = lo.Uniq(names)
	c.mu.Lock()
	c.names = names
	c.mu.Unlock()
	log.Debugf("loaded %d groups from %s", len(names), c.path)
	return nil
}

// Names returns a copy of the cached group names. A nil catalog has none.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.names...)
}

// Path is the database file the catalog reads.
func (c *Catalog) Path() string {
	return c.path
}

// Task returns a scheduler task that reloads the catalog.
func (c *Catalog) Task() scheduler.Task {
	return scheduler.Task{
		Name:    "reload groups " + c.path,
		Execute: c.Reload,
	}
}
