package manager

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

var ErrNotOpen = errors.New("document not open")

// Document is a snapshot of an open document.
type Document struct {
	URI     string
	Version int32
	Text    string
}

// DocumentManager holds the text and version of every open URI.
type DocumentManager struct {
	mu   sync.Mutex
	docs map[string]Document
}

// NewDocumentManager creates an initialized DocumentManager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		docs: make(map[string]Document),
	}
}

// Open stores a document, replacing any previous content for the URI.
func (dm *DocumentManager) Open(uri string, version int32, text string) Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := Document{URI: uri, Version: version, Text: text}
	dm.docs[uri] = doc
	return doc
}

// Get returns the current snapshot of a URI.
func (dm *DocumentManager) Get(uri string) (Document, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		return Document{}, fmt.Errorf("%s: %w", uri, ErrNotOpen)
	}
	return doc, nil
}

// ApplyChanges applies content changes in order and records the new version.
// Changes are either incremental (TextDocumentContentChangeEvent) or full
// (TextDocumentContentChangeEventWhole).
func (dm *DocumentManager) ApplyChanges(uri string, version int32, changes []any) (Document, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		return Document{}, fmt.Errorf("%s: %w", uri, ErrNotOpen)
	}
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			doc.Text = textedit.Apply(doc.Text, c)
		case protocol.TextDocumentContentChangeEventWhole:
			doc.Text = c.Text
		default:
			return Document{}, fmt.Errorf("%s: unsupported content change %T", uri, change)
		}
	}
	doc.Version = version
	dm.docs[uri] = doc
	return doc, nil
}

// Close forgets a URI. Closing a URI that is not open is not an error.
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.docs, uri)
}

// URIs returns the open URIs in sorted order.
func (dm *DocumentManager) URIs() []string {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	uris := make([]string, 0, len(dm.docs))
	for uri := range dm.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}
