// Package locale translates the site strings. Translations are read from
// "<tag>.lang" files made of "key=value" lines; English is embedded.
package locale

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed lang/*.lang
var embedded embed.FS

// localeData represents a mapping of translation keys to their respective values for a specific language.
type localeData map[string]string

// Catalog holds the registered locales and picks one per request.
type Catalog struct {
	mu      sync.RWMutex
	tags    []language.Tag
	locales map[language.Tag]localeData
	matcher language.Matcher
}

// NewCatalog returns a catalog holding the embedded English locale.
func NewCatalog() *Catalog {
	c := &Catalog{locales: make(map[language.Tag]localeData)}
	f, err := embedded.Open("lang/en.lang")
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err = c.Register(language.English, f); err != nil {
		panic(err)
	}
	return c
}

// Register reads a language file from r and registers it under lang,
// replacing any locale already registered for it. Keys missing from a
// non-English locale fall back to English.
func (c *Catalog) Register(lang language.Tag, r io.Reader) error {
	data := make(localeData)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) < 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		data[key] = value
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading lang file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.locales[lang]; !ok {
		c.tags = append(c.tags, lang)
	}
	c.locales[lang] = data
	c.matcher = language.NewMatcher(c.tags)
	return nil
}

// Load registers every "<tag>.lang" file in dir. A missing dir is not an
// error, the embedded English locale is enough to serve the site.
func (c *Catalog) Load(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read locale dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".lang" {
			continue
		}
		lang, err := language.Parse(strings.TrimSuffix(e.Name(), ".lang"))
		if err != nil {
			return fmt.Errorf("invalid locale file name %q: %w", e.Name(), err)
		}
		if err = c.registerFile(lang, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// registerFile ...
func (c *Catalog) registerFile(lang language.Tag, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open lang file: %w", err)
	}
	defer file.Close()
	return c.Register(lang, file)
}

// Match returns the registered language that best fits an Accept-Language
// header. English is returned when nothing matches.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return c.tags[index]
}

// Languages returns the registered languages in registration order.
func (c *Catalog) Languages() []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]language.Tag(nil), c.tags...)
}

// Translate translates a key to a specified language and formats it with the provided arguments.
// If the key is unavailable in that language, it falls back to the English translation.
// It supports placeholders in the translation string, which are replaced by the arguments.
func (c *Catalog) Translate(lang language.Tag, key string, args ...any) string {
	c.mu.RLock()
	translation, ok := c.locales[lang][key]
	if !ok {
		translation, ok = c.locales[language.English][key]
	}
	c.mu.RUnlock()
	if !ok {
		return fmt.Sprintf("missing translation for '%s'", key)
	}

	for i, arg := range args {
		placeholder := fmt.Sprintf("%%%d", i+1)
		translation = strings.ReplaceAll(translation, placeholder, fmt.Sprintf("%v", arg))
	}
	return translation
}
