package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("dae-lsp.scanner")

// Scan walks the subtree under root. Any file or directory whose name begins
// with "." is skipped entirely. For each remaining file the skip predicate is
// consulted, and if it returns false the file is read and passed to callback.
// A root that is a regular file is passed to callback directly. Scan returns
// once all callbacks have completed.
func Scan(
	root string,
	skip func(path string, info fs.FileInfo) bool,
	callback func(path string, document []byte),
) error {
	fileCh := make(chan string, 100)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for path := range fileCh {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Warningf("read %s: %v", path, err)
				continue
			}
			callback(path, data)
		}
	}()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			log.Debugf("descending into %q", path)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if path != root && skip(path, info) {
			return nil
		}
		fileCh <- path
		return nil
	})

	close(fileCh)
	wg.Wait()
	return err
}

// IsConfig reports whether path looks like a dae configuration file.
func IsConfig(path string) bool {
	return filepath.Ext(path) == ".dae"
}
