package view

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CollationInfo describes one registered collation's comparison
// behavior.
type CollationInfo struct {
	Name            string
	Tag             language.Tag
	CaseInsensitive bool
	IsBinary        bool
	options         []collate.Option
}

// CollationEngine provides locale-aware string comparison for
// SortedView, covering a handful of generally useful locales plus a
// binary fallback.
type CollationEngine struct {
	registry map[string]*CollationInfo
	aliases  map[string]string
}

var (
	globalCollationEngine *CollationEngine
	collationEngineOnce   sync.Once
)

// GetGlobalCollationEngine returns the process-wide CollationEngine
// singleton.
func GetGlobalCollationEngine() *CollationEngine {
	collationEngineOnce.Do(func() {
		globalCollationEngine = NewCollationEngine()
	})
	return globalCollationEngine
}

// NewCollationEngine builds a CollationEngine with the default
// registry.
func NewCollationEngine() *CollationEngine {
	e := &CollationEngine{
		registry: make(map[string]*CollationInfo),
		aliases:  make(map[string]string),
	}
	e.initRegistry()
	return e
}

func (e *CollationEngine) initRegistry() {
	e.registerCollation(&CollationInfo{Name: "binary", IsBinary: true})

	e.registerCollation(&CollationInfo{
		Name: "unicode_ci", Tag: language.Und, CaseInsensitive: true,
		options: []collate.Option{collate.IgnoreCase},
	})
	e.registerCollation(&CollationInfo{
		Name: "unicode_ai_ci", Tag: language.Und, CaseInsensitive: true,
		options: []collate.Option{collate.IgnoreCase, collate.Loose},
	})

	e.registerCollation(&CollationInfo{
		Name: "en_ci", Tag: language.English, CaseInsensitive: true,
		options: []collate.Option{collate.IgnoreCase},
	})
	e.registerCollation(&CollationInfo{
		Name: "de_ci", Tag: language.German, CaseInsensitive: true,
		options: []collate.Option{collate.IgnoreCase},
	})
	e.registerCollation(&CollationInfo{
		Name: "es_ci", Tag: language.Spanish, CaseInsensitive: true,
		options: []collate.Option{collate.IgnoreCase},
	})

	e.aliases["default"] = "binary"
	e.aliases["unicode"] = "unicode_ci"
}

func (e *CollationEngine) registerCollation(info *CollationInfo) {
	e.registry[info.Name] = info
}

// ResolveCollation normalizes a collation name, resolving aliases and
// case differences. Unknown names fall back to "binary".
func (e *CollationEngine) ResolveCollation(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return "binary"
	}
	if canonical, ok := e.aliases[lower]; ok {
		return canonical
	}
	if _, ok := e.registry[lower]; ok {
		return lower
	}
	return "binary"
}

// GetCollationInfo returns metadata for a collation. Unknown names
// resolve to "binary" (see ResolveCollation), so an unknown name
// yields the binary collation's info; use IsKnownName to tell them
// apart.
func (e *CollationEngine) GetCollationInfo(name string) (*CollationInfo, bool) {
	resolved := e.ResolveCollation(name)
	info, ok := e.registry[resolved]
	return info, ok
}

// IsKnownName reports whether name (after lowercasing/trimming and
// alias resolution) names a registered collation, without
// ResolveCollation's fallback to "binary" for unrecognized input.
// Config validation uses this — unlike SortedView's runtime lookups,
// it must be able to distinguish "binary" from "unknown".
func (e *CollationEngine) IsKnownName(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := e.aliases[lower]; ok {
		lower = canonical
	}
	_, ok := e.registry[lower]
	return ok
}

func (e *CollationEngine) newCollator(info *CollationInfo) *collate.Collator {
	if info.IsBinary {
		return nil
	}
	return collate.New(info.Tag, info.options...)
}

// Compare compares a and b under the named collation, returning a
// negative, zero, or positive int per strings.Compare semantics.
func (e *CollationEngine) Compare(a, b, collationName string) int {
	resolved := e.ResolveCollation(collationName)
	info := e.registry[resolved]

	if info == nil || info.IsBinary {
		return strings.Compare(a, b)
	}

	c := e.newCollator(info)
	return c.CompareString(a, b)
}
