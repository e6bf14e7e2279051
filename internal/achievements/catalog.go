package achievements

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/models"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// fallback ladder used when a catalog defines no levels
var fallbackLevels = []models.Level{{Level: 1, Name: "levels.learner", MinXP: 0}}

// Catalog is the static achievement and level table. It is immutable after load.
type Catalog struct {
	Achievements []models.AchievementDefinition `json:"achievements" yaml:"achievements"`
	Levels       []models.Level                 `json:"levels" yaml:"levels"`

	byID map[string]models.AchievementDefinition
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(embeddedCatalog, "catalog.yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or the embedded one when path is empty.
// A broken override file is logged and the embedded catalog is used instead.
func Load(path string) *Catalog {
	log := logger.Default().WithPrefix("catalog")
	if strings.TrimSpace(path) == "" {
		log.Debug("using embedded achievement catalog")
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("cannot read catalog %s, using embedded: %v", path, err)
		return Default()
	}
	c, err := Parse(raw, path)
	if err != nil {
		log.Warn("cannot parse catalog %s, using embedded: %v", path, err)
		return Default()
	}
	log.Info("loaded catalog %s: %d achievements, %d levels", path, len(c.Achievements), len(c.Levels))
	return c
}

// Parse decodes a catalog; the name's extension picks JSON or YAML.
func Parse(raw []byte, name string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	}
	return newCatalog(c.Achievements, c.Levels)
}

// New builds a catalog from in-memory definitions.
func New(defs []models.AchievementDefinition, levels []models.Level) (*Catalog, error) {
	return newCatalog(defs, levels)
}

func newCatalog(defs []models.AchievementDefinition, levels []models.Level) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]models.AchievementDefinition, len(defs))}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("achievement without id")
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement id %q", d.ID)
		}
		c.byID[d.ID] = d
		c.Achievements = append(c.Achievements, d)
	}

	if len(levels) == 0 {
		levels = fallbackLevels
	}
	c.Levels = append([]models.Level(nil), levels...)
	sort.SliceStable(c.Levels, func(i, j int) bool { return c.Levels[i].MinXP < c.Levels[j].MinXP })
	if c.Levels[0].MinXP != 0 {
		return nil, fmt.Errorf("lowest level %q must start at 0 XP, got %d", c.Levels[0].Name, c.Levels[0].MinXP)
	}
	return c, nil
}

// PointsFor sums the XP of ids; unknown ids are worth nothing.
func (c *Catalog) PointsFor(ids []string) int {
	total := 0
	for _, id := range ids {
		if d, ok := c.byID[id]; ok {
			total += d.Points
		}
	}
	return total
}
