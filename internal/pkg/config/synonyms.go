package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultCategorySynonyms is the built-in synonym table. Product decides any
// further entries through CATEGORY_SYNONYMS_FILE or CATEGORY_SYNONYMS.
func DefaultCategorySynonyms() map[string][]string {
	return map[string][]string{
		"carpenter": {"carpentry"},
	}
}

// LoadCategorySynonyms merges the default table, the optional synonyms file and
// the inline definition, in that order. The file holds a "synonyms" map of
// canonical name to variant list in any format viper reads (yaml, json, toml).
func LoadCategorySynonyms(path, inline string) (map[string][]string, error) {
	table := DefaultCategorySynonyms()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read synonyms file %s: %w", path, err)
		}
		for canonical, variants := range v.GetStringMapStringSlice("synonyms") {
			mergeSynonyms(table, canonical, variants)
		}
	}

	parsed, err := ParseInlineSynonyms(inline)
	if err != nil {
		return nil, err
	}
	for canonical, variants := range parsed {
		mergeSynonyms(table, canonical, variants)
	}

	return table, nil
}

// ParseInlineSynonyms parses "canonical=v1|v2;canonical2=v3"
func ParseInlineSynonyms(s string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		canonical, variants, ok := strings.Cut(entry, "=")
		canonical = strings.TrimSpace(canonical)
		if !ok || canonical == "" {
			return nil, fmt.Errorf("invalid synonym entry %q", entry)
		}
		for _, v := range strings.Split(variants, "|") {
			if v = strings.TrimSpace(v); v != "" {
				out[canonical] = append(out[canonical], v)
			}
		}
	}
	return out, nil
}

func mergeSynonyms(table map[string][]string, canonical string, variants []string) {
	key := strings.ToLower(strings.TrimSpace(canonical))
	if key == "" {
		return
	}
	seen := map[string]bool{}
	for _, v := range table[key] {
		seen[v] = true
	}
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		table[key] = append(table[key], v)
	}
}
