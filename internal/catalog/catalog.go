package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/wortflash/wortflash/internal/logger"
	"github.com/wortflash/wortflash/internal/models"
)

//go:embed data/catalog.json
var dataFS embed.FS

// Load reads the vocabulary catalog from path, or the embedded default
// catalog when path is empty. The catalog is read once and treated as
// immutable afterwards. Any load or validation problem is returned to
// the caller: the drill has no defined behavior without a catalog, so
// failures here are fatal to session start.
func Load(path string) ([]models.VocabItem, error) {
	log := logger.Default().WithPrefix("catalog")

	var (
		data []byte
		err  error
	)
	if path != "" {
		log.Debug("reading catalog from %s", path)
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	} else {
		log.Debug("using embedded catalog")
		data, err = dataFS.ReadFile("data/catalog.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded catalog: %w", err)
		}
	}

	var items []models.VocabItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate(items); err != nil {
		return nil, err
	}

	// Fill in a default display form where the catalog omits one.
	for i, it := range items {
		if it.Display == "" {
			items[i].Display = string(it.Article) + " " + it.Lemma
		}
	}

	log.Info("catalog loaded: %d items", len(items))
	return items, nil
}

// ByID finds an item in the loaded catalog.
func ByID(items []models.VocabItem, id string) (models.VocabItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return models.VocabItem{}, false
}

// ByTag returns every item carrying the given tag.
func ByTag(items []models.VocabItem, tag string) []models.VocabItem {
	var out []models.VocabItem
	for _, it := range items {
		if it.HasTag(tag) {
			out = append(out, it)
		}
	}
	return out
}

func validate(items []models.VocabItem) error {
	if len(items) == 0 {
		return errors.New("catalog is empty")
	}
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("catalog item %d: missing id", i)
		}
		if seen[it.ID] {
			return fmt.Errorf("catalog item %d: duplicate id %q", i, it.ID)
		}
		seen[it.ID] = true
		if it.Lemma == "" {
			return fmt.Errorf("catalog item %q: missing lemma", it.ID)
		}
		if !it.Article.Valid() {
			return fmt.Errorf("catalog item %q: invalid article %q", it.ID, it.Article)
		}
		if len(it.Clues) == 0 {
			return fmt.Errorf("catalog item %q: needs at least one clue", it.ID)
		}
	}
	return nil
}
