package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linhthu_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `{
  "server": {"address": ":9090"},
  "action_timeout_seconds": 45,
  "species_list": [
    {
      "name": "ca-chep", "display_name": "Cá Chép", "element": "thuy",
      "max_hp": 80, "attack": 12, "defense": 8, "speed": 16, "magic": 12,
      "capture_rate": 60,
      "skill": {"name": "Vượt Vũ Môn", "power": 6, "element": "thuy"}
    }
  ],
  "capture_items": [
    {"name": "bua_giay", "display_name": "Bùa Giấy", "multiplier": 1.0}
  ]
}`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("unexpected server address: %s", cfg.ServerAddress)
	}
	if cfg.ActionTimeout != 45*time.Second {
		t.Fatalf("unexpected action timeout: %v", cfg.ActionTimeout)
	}
	if len(cfg.Species) != 1 || cfg.Species[0].Element != game.ElementWater {
		t.Fatalf("species not loaded as expected: %+v", cfg.Species)
	}
	if cfg.Species[0].Skill.Element != game.ElementWater {
		t.Fatalf("skill element not loaded: %+v", cfg.Species[0].Skill)
	}
	if len(cfg.CaptureItems) != 1 || cfg.CaptureItems[0].Multiplier != 1.0 {
		t.Fatalf("capture items not loaded: %+v", cfg.CaptureItems)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	body := `{"species_list": [{"name": "x", "element": "kim", "max_hp": 10, "capture_rate": 50}]}`
	cfg, err := LoadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("default address expected, got %s", cfg.ServerAddress)
	}
	if cfg.ActionTimeout != 90*time.Second {
		t.Fatalf("default timeout expected, got %v", cfg.ActionTimeout)
	}
	if cfg.Species[0].DisplayName != "x" {
		t.Fatalf("display name should fall back to the species name")
	}
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := map[string]string{
		"empty species list": `{"species_list": []}`,
		"unknown element":    `{"species_list": [{"name": "x", "element": "void", "max_hp": 10, "capture_rate": 50}]}`,
		"zero max_hp":        `{"species_list": [{"name": "x", "element": "kim", "max_hp": 0, "capture_rate": 50}]}`,
		"capture rate 0":     `{"species_list": [{"name": "x", "element": "kim", "max_hp": 10, "capture_rate": 0}]}`,
		"capture rate 101":   `{"species_list": [{"name": "x", "element": "kim", "max_hp": 10, "capture_rate": 101}]}`,
		"duplicate species":  `{"species_list": [{"name": "x", "element": "kim", "max_hp": 10, "capture_rate": 50}, {"name": "X", "element": "hoa", "max_hp": 10, "capture_rate": 50}]}`,
		"bad skill element":  `{"species_list": [{"name": "x", "element": "kim", "max_hp": 10, "capture_rate": 50, "skill": {"name": "s", "element": "void"}}]}`,
		"item multiplier 0":  `{"species_list": [{"name": "x", "element": "kim", "max_hp": 10, "capture_rate": 50}], "capture_items": [{"name": "b", "multiplier": 0}]}`,
		"duplicate item":     `{"species_list": [{"name": "x", "element": "kim", "max_hp": 10, "capture_rate": 50}], "capture_items": [{"name": "b", "multiplier": 1}, {"name": "b", "multiplier": 2}]}`,
	}
	for name, body := range cases {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
