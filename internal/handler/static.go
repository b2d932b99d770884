package handler

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
	"github.com/yndnr/wirehttp-go/pkg/cmap"
)

// contentTypes pins the types for common web assets so responses do not
// depend on the host's mime database.
var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".txt":  "text/plain",
	".ico":  "image/x-icon",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// contentTypeFor resolves a file's Content-Type from its extension.
func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

type cachedFile struct {
	content     []byte
	contentType string
}

// StaticServer serves files under a web root with an in-memory content
// cache. fsnotify watches on the root and its subdirectories drop cache
// entries when files change on disk.
type StaticServer struct {
	root    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
	cache   *cmap.Map[string, cachedFile]
}

// NewStaticServer validates the web root and starts the watcher.
func NewStaticServer(root string, logger *slog.Logger) (*StaticServer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("static: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("static: web root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static: web root %s is not a directory", abs)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("static: create watcher: %w", err)
	}
	// fsnotify watches are not recursive, so every subdirectory gets its
	// own watch; directories created later are added in watchLoop.
	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("static: watch %s: %w", abs, err)
	}

	s := &StaticServer{
		root:    abs,
		logger:  logger,
		watcher: watcher,
		done:    make(chan struct{}),
		cache:   cmap.New[string, cachedFile](),
	}
	go s.watchLoop()
	return s, nil
}

// Close stops the watcher.
func (s *StaticServer) Close() error {
	close(s.done)
	return s.watcher.Close()
}

// watchLoop drops cache entries for files that change on disk.
func (s *StaticServer) watchLoop() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.watcher.Add(event.Name); err != nil {
						s.logger.Warn("static watch add failed", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			s.cache.Delete(event.Name)
			s.logger.Debug("static cache invalidated", "file", event.Name, "op", event.Op.String())
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("static watcher error", "error", err)
		}
	}
}

// resolve joins rel onto the web root and rejects paths that escape it.
func (s *StaticServer) resolve(rel string) (string, error) {
	full := filepath.Join(s.root, rel)
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes web root", rel)
	}
	return full, nil
}

// Serve reads the file at rel under the web root.
func (s *StaticServer) Serve(rel string) (*httpcore.Response, error) {
	full, err := s.resolve(rel)
	if err != nil {
		s.logger.Warn("static path rejected", "path", rel)
		return httpcore.Text(404, "static file not found"), nil
	}

	if cached, ok := s.cache.Get(full); ok {
		return &httpcore.Response{Status: 200, ContentType: cached.contentType, Body: cached.content}, nil
	}

	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return httpcore.Text(404, "static file not found"), nil
		}
		s.logger.Error("static read failed", "path", full, "error", err)
		return httpcore.Text(500, "could not serve file"), nil
	}

	entry := cachedFile{content: content, contentType: contentTypeFor(full)}
	s.cache.Set(full, entry)

	return &httpcore.Response{Status: 200, ContentType: entry.contentType, Body: entry.content}, nil
}

// newStaticFileHandler binds the route's filepath argument. The argument
// may be named ("filepath") or the first positional entry.
func newStaticFileHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	if deps.Static == nil {
		return nil, fmt.Errorf("serve_static_file requires a web root")
	}

	rel, err := filepathArg(args)
	if err != nil {
		return nil, err
	}

	return func(req *httpcore.Request) (*httpcore.Response, error) {
		return deps.Static.Serve(rel)
	}, nil
}

func filepathArg(args map[string]any) (string, error) {
	if v, ok := args["filepath"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
		return "", fmt.Errorf("serve_static_file: filepath must be a non-empty string")
	}
	if v, ok := args[PositionalArgsKey]; ok {
		if list, ok := v.([]any); ok && len(list) > 0 {
			if s, ok := list[0].(string); ok && s != "" {
				return s, nil
			}
		}
		return "", fmt.Errorf("serve_static_file: positional filepath must be a non-empty string")
	}
	return "", fmt.Errorf("serve_static_file: missing filepath argument")
}

// PositionalArgsKey is where route loading stashes sequence-form args.
const PositionalArgsKey = "_args"
