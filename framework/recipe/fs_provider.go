package recipe

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultPattern names the recipe file for an identifier.
const DefaultPattern = "locate.%s.yaml"

// FSProvider loads recipes from YAML files, one file per identifier.
//
// The file for "mailer" is locate.mailer.yaml and keys the recipe by its
// identifier, so a file can never answer for a different one:
//
//	mailer:
//	  name: mail.Mailer
//	  params: [config, "!noreply@example.com"]
//	  singleton: true
//	  methods:
//	    - name: SetTransport
//	      params: [smtp]
type FSProvider struct {
	fsys    fs.FS
	pattern string
	logger  *zap.Logger
}

// FSOption configures an FSProvider.
type FSOption func(*FSProvider)

// WithPattern sets the fmt pattern used to derive a file name from an id. A
// pattern that fails ValidPattern is replaced by DefaultPattern.
func WithPattern(pattern string) FSOption {
	return func(p *FSProvider) {
		if pattern != "" {
			p.pattern = pattern
		}
	}
}

// WithLogger sets the logger used to report unreadable or malformed files.
func WithLogger(logger *zap.Logger) FSOption {
	return func(p *FSProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewFSProvider creates a provider reading from fsys.
//
//	p := recipe.NewFSProvider(os.DirFS(cfg.Locator.RecipeDir))
func NewFSProvider(fsys fs.FS, opts ...FSOption) *FSProvider {
	p := &FSProvider{
		fsys:    fsys,
		pattern: DefaultPattern,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if !ValidPattern(p.pattern) {
		p.logger.Warn("invalid recipe pattern, using default",
			zap.String("pattern", p.pattern),
			zap.String("default", DefaultPattern),
		)
		p.pattern = DefaultPattern
	}
	return p
}

// ValidPattern reports whether pattern has exactly one %s verb and no other
// verbs besides %% escapes.
func ValidPattern(pattern string) bool {
	rest := strings.ReplaceAll(pattern, "%%", "")
	return strings.Count(rest, "%s") == 1 && strings.Count(rest, "%") == 1
}

// Lookup reads and decodes the recipe file for id.
func (p *FSProvider) Lookup(id string) (*Recipe, bool) {
	path, ok := p.path(id)
	if !ok {
		return nil, false
	}

	content, err := fs.ReadFile(p.fsys, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("recipe file unreadable", zap.String("id", id), zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}

	var file map[string]any
	if err := yaml.Unmarshal(content, &file); err != nil {
		p.logger.Warn("recipe file malformed", zap.String("id", id), zap.String("path", path), zap.Error(err))
		return nil, false
	}

	raw, ok := mapping(file[id])
	if !ok {
		p.logger.Debug("recipe file has no entry for id", zap.String("id", id), zap.String("path", path))
		return nil, false
	}

	return Decode(raw)
}

func (p *FSProvider) path(id string) (string, bool) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", false
	}
	path := fmt.Sprintf(p.pattern, id)
	return path, fs.ValidPath(path)
}
