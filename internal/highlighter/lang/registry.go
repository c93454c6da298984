package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/qat-editor/internal/logger"
)

// Registry maps file extensions to languages.
type Registry struct {
	mu            sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extToLanguage: make(map[string]*Language)}
}

// Register adds a language. A later language takes over extensions already
// claimed by an earlier one.
func (r *Registry) Register(lang *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages = append(r.languages, lang)
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := r.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		r.extToLanguage[lowerExt] = lang
	}

	logger.Debugf("Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// GetForFile returns the language for a file path, or nil.
func (r *Registry) GetForFile(filePath string) *Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return nil
	}
	return r.extToLanguage[ext]
}

// GetAll returns all registered languages in registration order.
func (r *Registry) GetAll() []*Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Language, len(r.languages))
	copy(result, r.languages)
	return result
}
