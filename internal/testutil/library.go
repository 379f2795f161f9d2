// Package testutil provides a fake Zotero library server for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

// ItemFixture describes one library item for a test.
type ItemFixture struct {
	Key              string
	Title            string
	ItemType         string
	PublicationTitle string
	Date             string
	Tags             []string
	Bib              string
	Collections      []string
}

// PatchCall records one item-update request received by the fake server.
type PatchCall struct {
	Key  string
	Tags []string
}

// Library is a fake Zotero library backing an httptest server. Build it
// with the With* methods, then Serve.
type Library struct {
	t *testing.T

	mu        sync.Mutex
	items     []*ItemFixture
	extraTags []string
	patches   []PatchCall
	version   int
}

// NewLibrary creates an empty fake library.
func NewLibrary(t *testing.T) *Library {
	t.Helper()
	return &Library{t: t, version: 10}
}

// WithItem adds an item to the library.
func (l *Library) WithItem(f ItemFixture) *Library {
	item := f
	l.items = append(l.items, &item)
	return l
}

// WithTags adds standalone tags not attached to any item.
func (l *Library) WithTags(tags ...string) *Library {
	l.extraTags = append(l.extraTags, tags...)
	return l
}

// Serve starts the fake server. It is shut down with the test.
func (l *Library) Serve() *httptest.Server {
	l.t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(l.handle))
	l.t.Cleanup(srv.Close)
	return srv
}

// Client starts the fake server and returns a library client wired to it.
func (l *Library) Client() *zotero.Client {
	l.t.Helper()
	srv := l.Serve()
	client, err := zotero.NewClient(zotero.Options{
		LibraryID:   "12345",
		LibraryType: "group",
		BaseURL:     srv.URL,
		HTTPClient:  srv.Client(),
	})
	if err != nil {
		l.t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

// PatchCalls returns the item updates received so far.
func (l *Library) PatchCalls() []PatchCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]PatchCall{}, l.patches...)
}

// ItemTags returns the current tags of an item, reflecting any patches.
func (l *Library) ItemTags(key string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if item.Key == key {
			return append([]string{}, item.Tags...)
		}
	}
	return nil
}

func (l *Library) handle(w http.ResponseWriter, r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Strip the /users/<id> or /groups/<id> prefix.
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 {
		http.NotFound(w, r)
		return
	}
	rest := parts[2:]

	switch {
	case rest[0] == "tags":
		l.serveTags(w, r)
	case rest[0] == "items" && len(rest) == 1:
		l.serveItems(w, r, l.items)
	case rest[0] == "items" && len(rest) == 2 && r.Method == http.MethodPatch:
		l.servePatch(w, r, rest[1])
	case rest[0] == "collections" && len(rest) == 3 && rest[2] == "items":
		var scoped []*ItemFixture
		for _, item := range l.items {
			for _, c := range item.Collections {
				if c == rest[1] {
					scoped = append(scoped, item)
					break
				}
			}
		}
		l.serveItems(w, r, scoped)
	default:
		http.NotFound(w, r)
	}
}

func (l *Library) serveTags(w http.ResponseWriter, r *http.Request) {
	seen := make(map[string]struct{})
	var all []string
	add := func(tag string) {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			all = append(all, tag)
		}
	}
	for _, item := range l.items {
		for _, t := range item.Tags {
			add(t)
		}
	}
	for _, t := range l.extraTags {
		add(t)
	}

	if q := r.URL.Query().Get("q"); q != "" {
		var filtered []string
		for _, t := range all {
			if strings.HasPrefix(t, q) {
				filtered = append(filtered, t)
			}
		}
		all = filtered
	}

	type entry struct {
		Tag string `json:"tag"`
	}
	page := paginate(r, all)
	entries := make([]entry, len(page))
	for i, t := range page {
		entries[i] = entry{Tag: t}
	}
	writeJSON(w, entries)
}

func (l *Library) serveItems(w http.ResponseWriter, r *http.Request, pool []*ItemFixture) {
	q := r.URL.Query()

	var matched []*ItemFixture
	for _, item := range pool {
		if itemType := q.Get("itemType"); itemType != "" && item.ItemType != itemType {
			continue
		}
		if !matchesTagParams(item.Tags, q["tag"]) {
			continue
		}
		matched = append(matched, item)
	}

	if q.Get("format") == "versions" {
		versions := make(map[string]int, len(matched))
		for _, item := range matched {
			versions[item.Key] = l.version
		}
		writeJSON(w, versions)
		return
	}

	includeBib := strings.Contains(q.Get("include"), "bib")
	page := paginate(r, matched)
	out := make([]zotero.Item, len(page))
	for i, f := range page {
		out[i] = f.toItem(l.version, includeBib)
	}
	writeJSON(w, out)
}

func (l *Library) servePatch(w http.ResponseWriter, r *http.Request, key string) {
	var payload struct {
		Tags []zotero.TagRef `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tags := make([]string, len(payload.Tags))
	for i, t := range payload.Tags {
		tags[i] = t.Tag
	}

	for _, item := range l.items {
		if item.Key == key {
			item.Tags = tags
			l.patches = append(l.patches, PatchCall{Key: key, Tags: tags})
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.NotFound(w, r)
}

func (f *ItemFixture) toItem(version int, includeBib bool) zotero.Item {
	tags := make([]zotero.TagRef, len(f.Tags))
	for i, t := range f.Tags {
		tags[i] = zotero.TagRef{Tag: t}
	}
	item := zotero.Item{
		Key:     f.Key,
		Version: version,
		Data: zotero.ItemData{
			Key:              f.Key,
			Version:          version,
			ItemType:         f.ItemType,
			Title:            f.Title,
			PublicationTitle: f.PublicationTitle,
			Date:             f.Date,
			Tags:             tags,
		},
	}
	if includeBib {
		item.Bib = f.Bib
	}
	return item
}

// matchesTagParams applies the API's tag parameter semantics: each
// parameter is an AND condition, " || " joins an OR group, a leading "-"
// negates one term.
func matchesTagParams(itemTags, params []string) bool {
	has := func(want string) bool {
		for _, t := range itemTags {
			if t == want {
				return true
			}
		}
		return false
	}
	for _, param := range params {
		ok := false
		for _, term := range strings.Split(param, " || ") {
			if stripped, neg := strings.CutPrefix(term, "-"); neg {
				if !has(stripped) {
					ok = true
				}
			} else if has(term) {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func paginate[T any](r *http.Request, all []T) []T {
	start, _ := strconv.Atoi(r.URL.Query().Get("start"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = len(all)
	}
	if start >= len(all) {
		return nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
