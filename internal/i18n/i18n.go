// Package i18n resolves localized strings from nested locale dictionaries.
//
// Dictionaries are fixed at construction and never mutated afterwards; a
// Bundle is safe for concurrent use. Lookups walk dot-separated paths and
// fall back to the default locale when the requested locale lacks a segment.
package i18n

import (
	"fmt"
	"strings"
)

// Dictionary is an arbitrarily nested tree of string leaves.
type Dictionary map[string]any

// Bundle holds the per-locale dictionaries and the designated fallback.
type Bundle struct {
	dicts         map[string]Dictionary
	defaultLocale string
}

// NewBundle builds a resolver over dicts. The default locale must have a
// dictionary: it is the fallback source for every lookup.
func NewBundle(defaultLocale string, dicts map[string]Dictionary) (*Bundle, error) {
	if _, ok := dicts[defaultLocale]; !ok {
		return nil, fmt.Errorf("no dictionary for default locale %q", defaultLocale)
	}
	return &Bundle{dicts: dicts, defaultLocale: defaultLocale}, nil
}

// Resolve walks the dot-separated path through the locale's dictionary. A
// missing segment, or a non-mapping value while segments remain, abandons
// that locale and retries the full path against the default locale. A locale
// code outside the configured set starts at the default dictionary
// immediately. The boolean is false when neither locale has the leaf.
func (b *Bundle) Resolve(locale, path string) (string, bool) {
	if v, ok := walkString(b.dictionary(locale), path); ok {
		return v, true
	}
	return walkString(b.dicts[b.defaultLocale], path)
}

// ResolveIn is the two-stage lookup: namespace fixes a starting sub-tree
// (for example "contact.error") and key resolves relative to it. The
// default-locale fallback applies independently at both stages, so a locale
// that has the namespace but lacks the key still yields the default
// locale's value.
func (b *Bundle) ResolveIn(locale, namespace, key string) (string, bool) {
	if namespace == "" {
		return b.Resolve(locale, key)
	}

	if sub, ok := subtree(b.dictionary(locale), namespace); ok {
		if v, ok := walkString(sub, key); ok {
			return v, true
		}
	}
	if sub, ok := subtree(b.dicts[b.defaultLocale], namespace); ok {
		return walkString(sub, key)
	}
	return "", false
}

// dictionary maps unknown locale codes to the default dictionary before any
// walking begins.
func (b *Bundle) dictionary(locale string) Dictionary {
	if d, ok := b.dicts[locale]; ok {
		return d
	}
	return b.dicts[b.defaultLocale]
}

func walkString(dict Dictionary, path string) (string, bool) {
	node, ok := walk(dict, path)
	if !ok {
		return "", false
	}
	s, ok := node.(string)
	if !ok {
		return "", false
	}
	return s, true
}

func subtree(dict Dictionary, path string) (Dictionary, bool) {
	node, ok := walk(dict, path)
	if !ok {
		return nil, false
	}
	return asMap(node)
}

func walk(dict Dictionary, path string) (any, bool) {
	node := any(dict)
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(node)
		if !ok {
			return nil, false
		}
		node, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// asMap accepts both Dictionary literals and the plain maps produced by
// JSON decoding.
func asMap(node any) (Dictionary, bool) {
	switch t := node.(type) {
	case Dictionary:
		return t, true
	case map[string]any:
		return t, true
	default:
		return nil, false
	}
}
