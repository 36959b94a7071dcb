// Package uploads tracks the documents dropped into the uploads directory.
// These feed a future document-retrieval path; today only their metadata is
// registered, and the query path never reads their content.
package uploads

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/hellofriends/rights-engine/pkg/rights/store"
)

// Scanner syncs an uploads directory into a store.
type Scanner struct {
	dir string
	st  store.Store
}

// NewScanner creates a scanner for dir backed by st.
func NewScanner(dir string, st store.Store) *Scanner {
	return &Scanner{dir: dir, st: st}
}

// Dir returns the uploads directory the scanner watches.
func (s *Scanner) Dir() string {
	return s.dir
}

// Sync walks the uploads directory and registers every recognized document.
// It returns the number of files registered. A missing directory is not an
// error: it means nothing has been uploaded yet.
func (s *Scanner) Sync(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	registered := 0
	for _, entry := range entries {
		if entry.IsDir() || !recognized(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		u := s.describe(entry.Name(), info)
		if err := s.st.RecordUpload(ctx, u); err != nil {
			return registered, err
		}
		registered++
	}
	return registered, nil
}

// Register records a single just-uploaded file.
func (s *Scanner) Register(ctx context.Context, name string) (store.Upload, error) {
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return store.Upload{}, err
	}
	u := s.describe(name, info)
	return u, s.st.RecordUpload(ctx, u)
}

func (s *Scanner) describe(name string, info fs.FileInfo) store.Upload {
	u := store.Upload{
		Name:       name,
		Path:       filepath.Join(s.dir, name),
		SizeBytes:  info.Size(),
		UploadedAt: info.ModTime(),
	}
	if isHTML(name) {
		if f, err := os.Open(u.Path); err == nil {
			u.Title = htmlTitle(f)
			f.Close()
		}
	}
	return u
}

func recognized(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".html", ".htm", ".txt":
		return true
	}
	return false
}

func isHTML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// htmlTitle extracts the <title> text from an HTML document, or "" when the
// document has none or cannot be parsed.
func htmlTitle(r io.Reader) string {
	doc, err := html.Parse(r)
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
