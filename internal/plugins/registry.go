package plugins

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry stores available source and target plugins.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]SourcePlugin
	targets map[string]TargetPlugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]SourcePlugin),
		targets: make(map[string]TargetPlugin),
	}
}

func (r *Registry) RegisterSource(p SourcePlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[p.Language()] = p
}

func (r *Registry) RegisterTarget(p TargetPlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[p.Language()] = p
}

func (r *Registry) Source(lang string) (SourcePlugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.sources[lang]
	if !ok {
		return nil, fmt.Errorf("no source plugin for language %q", lang)
	}
	return p, nil
}

func (r *Registry) Target(lang string) (TargetPlugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.targets[lang]
	if !ok {
		return nil, fmt.Errorf("no target plugin for language %q", lang)
	}
	return p, nil
}

// SourceForPath returns the source plugin that declares the extension of path.
// Plugins that do not implement FileExtensionsProvider are never matched.
func (r *Registry) SourceForPath(path string) (SourcePlugin, error) {
	ext := strings.ToLower(filepath.Ext(path))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, lang := range sortedKeys(r.sources) {
		p := r.sources[lang]
		fep, ok := p.(FileExtensionsProvider)
		if !ok {
			continue
		}
		for _, e := range fep.FileExtensions() {
			if normalizeExt(e) == ext {
				return p, nil
			}
		}
	}
	return nil, fmt.Errorf("no source plugin accepts %q files", ext)
}

// Extensions lists every extension declared by registered source plugins.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, lang := range sortedKeys(r.sources) {
		if fep, ok := r.sources[lang].(FileExtensionsProvider); ok {
			for _, e := range fep.FileExtensions() {
				if e = normalizeExt(e); e != "" {
					out = append(out, e)
				}
			}
		}
	}
	return out
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(strings.ToLower(ext))
	if ext == "" {
		return ""
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}

func sortedKeys(m map[string]SourcePlugin) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
