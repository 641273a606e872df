package dispatch

import (
	"sort"
	"strings"
	"sync"
)

// SynonymTable resolves service category names to a canonical token.
// Lookups are case-insensitive and ignore surrounding and repeated whitespace.
type SynonymTable struct {
	mu        sync.RWMutex
	canonical map[string]string   // any form -> canonical
	forms     map[string][]string // canonical -> every known form
}

// NewSynonymTable builds a table from canonical -> variants entries
func NewSynonymTable(entries map[string][]string) *SynonymTable {
	t := &SynonymTable{
		canonical: make(map[string]string),
		forms:     make(map[string][]string),
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.Add(k, entries[k]...)
	}
	return t
}

func clean(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Add registers variants of canonical
func (t *SynonymTable) Add(canonical string, variants ...string) {
	c := clean(canonical)
	if c == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.addForm(c, c)
	for _, v := range variants {
		if v = clean(v); v != "" {
			t.addForm(c, v)
		}
	}
}

// addForm maps form to canonical, moving it out of a previous canonical's forms
func (t *SynonymTable) addForm(canonical, form string) {
	prev, ok := t.canonical[form]
	if ok && prev == canonical {
		return
	}
	if ok {
		t.forms[prev] = removeForm(t.forms[prev], form)
		if len(t.forms[prev]) == 0 {
			delete(t.forms, prev)
		}
	}
	t.canonical[form] = canonical
	t.forms[canonical] = append(t.forms[canonical], form)
}

func removeForm(forms []string, form string) []string {
	out := forms[:0]
	for _, f := range forms {
		if f != form {
			out = append(out, f)
		}
	}
	return out
}

// Normalize returns the canonical token for name
func (t *SynonymTable) Normalize(name string) string {
	key := clean(name)
	t.mu.RLock()
	defer t.mu.RUnlock()
	if c, ok := t.canonical[key]; ok {
		return c
	}
	return key
}

// Variants returns every known form of name's canonical token, canonical first
func (t *SynonymTable) Variants(name string) []string {
	c := t.Normalize(name)
	if c == "" {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	forms, ok := t.forms[c]
	if !ok {
		return []string{c}
	}
	return append([]string(nil), forms...)
}

// Equal reports whether a and b name the same category
func (t *SynonymTable) Equal(a, b string) bool {
	na := t.Normalize(a)
	return na != "" && na == t.Normalize(b)
}
