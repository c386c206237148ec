package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// Default builds the bundle shipped with the site: every embedded dictionary
// under locales/, keyed by file name, with defaultLocale as the fallback.
func Default(defaultLocale string) (*Bundle, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read embedded locales: %w", err)
	}

	dicts := make(map[string]Dictionary, len(entries))
	for _, entry := range entries {
		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", entry.Name(), err)
		}
		var dict Dictionary
		if err := json.Unmarshal(raw, &dict); err != nil {
			return nil, fmt.Errorf("decode locale %s: %w", entry.Name(), err)
		}
		dicts[strings.TrimSuffix(entry.Name(), ".json")] = dict
	}

	return NewBundle(defaultLocale, dicts)
}
