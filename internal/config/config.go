package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

type skillEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Power       int    `json:"power"`
	Element     string `json:"element"`
}

type speciesEntry struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Element     string     `json:"element"`
	MaxHP       int        `json:"max_hp"`
	Attack      int        `json:"attack"`
	Defense     int        `json:"defense"`
	Speed       int        `json:"speed"`
	Magic       int        `json:"magic"`
	CaptureRate int        `json:"capture_rate"`
	Skill       skillEntry `json:"skill"`
}

type rawConfig struct {
	SpeciesList  []speciesEntry     `json:"species_list"`
	CaptureItems []game.CaptureItem `json:"capture_items"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	ActionTimeoutSeconds int      `json:"action_timeout_seconds"`
	CORSOrigins          []string `json:"cors_origins"`
}

// LoadedConfig contains the species catalogue, capture items and server
// settings. The config file is the single source of truth for all creature
// stats; the database only stores species names.
type LoadedConfig struct {
	Species       []game.Species
	CaptureItems  []game.CaptureItem
	ServerAddress string
	ActionTimeout time.Duration
	CORSOrigins   []string
}

// LoadConfig reads the configuration file at path. It requires a non-empty
// `species_list` (snake_case keys) and validates every entry.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.SpeciesList) == 0 {
		return nil, fmt.Errorf("config file %s: species_list is empty (provide 'species_list' array)", path)
	}

	out := make([]game.Species, 0, len(rc.SpeciesList))
	nameSet := make(map[string]struct{}, len(rc.SpeciesList))
	for _, e := range rc.SpeciesList {
		sp, err := buildSpecies(e)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		ln := strings.ToLower(strings.TrimSpace(sp.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate species name '%s'", path, sp.Name)
		}
		nameSet[ln] = struct{}{}
		out = append(out, sp)
	}

	itemSet := make(map[string]struct{}, len(rc.CaptureItems))
	for _, it := range rc.CaptureItems {
		if it.Name == "" {
			return nil, fmt.Errorf("config file %s: capture item missing 'name'", path)
		}
		if it.Multiplier <= 0 {
			return nil, fmt.Errorf("config file %s: capture item '%s' needs a positive multiplier", path, it.Name)
		}
		if _, exists := itemSet[it.Name]; exists {
			return nil, fmt.Errorf("config file %s: duplicate capture item '%s'", path, it.Name)
		}
		itemSet[it.Name] = struct{}{}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	timeout := 90 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		timeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}

	return &LoadedConfig{
		Species:       out,
		CaptureItems:  rc.CaptureItems,
		ServerAddress: addr,
		ActionTimeout: timeout,
		CORSOrigins:   rc.CORSOrigins,
	}, nil
}

func buildSpecies(e speciesEntry) (game.Species, error) {
	if e.Name == "" {
		return game.Species{}, fmt.Errorf("species entry missing 'name'")
	}
	element, ok := game.ParseElement(e.Element)
	if !ok {
		return game.Species{}, fmt.Errorf("species '%s': unknown element '%s'", e.Name, e.Element)
	}
	if e.MaxHP <= 0 || e.Attack < 0 || e.Defense < 0 || e.Speed < 0 || e.Magic < 0 {
		return game.Species{}, fmt.Errorf("species '%s': stats must be non-negative with positive max_hp", e.Name)
	}
	if e.CaptureRate < 1 || e.CaptureRate > 100 {
		return game.Species{}, fmt.Errorf("species '%s': capture_rate must be in 1..100", e.Name)
	}
	skill := game.Skill{
		Name:        e.Skill.Name,
		Description: e.Skill.Description,
		Power:       e.Skill.Power,
	}
	if e.Skill.Name != "" {
		if e.Skill.Power < 0 {
			return game.Species{}, fmt.Errorf("species '%s': skill power must be non-negative", e.Name)
		}
		if e.Skill.Element != "" {
			se, ok := game.ParseElement(e.Skill.Element)
			if !ok {
				return game.Species{}, fmt.Errorf("species '%s': unknown skill element '%s'", e.Name, e.Skill.Element)
			}
			skill.Element = se
		}
	}
	display := e.DisplayName
	if display == "" {
		display = e.Name
	}
	return game.Species{
		Name:        e.Name,
		DisplayName: display,
		Element:     element,
		MaxHP:       e.MaxHP,
		Attack:      e.Attack,
		Defense:     e.Defense,
		Speed:       e.Speed,
		Magic:       e.Magic,
		CaptureRate: e.CaptureRate,
		Skill:       skill,
	}, nil
}
