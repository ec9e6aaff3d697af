package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLoadConfig_MissingIsEmpty(t *testing.T) {
	t.Setenv("FOLIO_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg == nil || cfg.ContentPath != "" || cfg.TUI != nil {
		t.Fatalf("expected empty config; got %#v", cfg)
	}
}

func TestSaveConfig_KeepsBackup(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("FOLIO_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{ContentPath: "/tmp/a.yaml"}); err != nil {
		t.Fatalf("SaveConfig(a): %v", err)
	}
	pad := 3
	if err := SaveConfig(&GlobalConfig{ContentPath: "/tmp/b.yaml", TUI: &TUIConfig{Glyphs: "ascii", ScrollPadding: &pad}}); err != nil {
		t.Fatalf("SaveConfig(b): %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.ContentPath != "/tmp/b.yaml" || got.TUI == nil || got.TUI.Glyphs != "ascii" {
		t.Fatalf("unexpected config: %#v", got)
	}
	if got.TUI.ScrollPadding == nil || *got.TUI.ScrollPadding != 3 {
		t.Fatalf("expected scrollPadding=3; got %#v", got.TUI.ScrollPadding)
	}

	bak, err := os.ReadFile(filepath.Join(cfgDir, "config.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(bak), "/tmp/a.yaml") {
		t.Fatalf("backup should hold the previous config; got:\n%s", bak)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("FOLIO_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{ContentPath: "seed.yaml"}); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 32
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := LoadConfig()
			if err != nil {
				errCh <- err
				return
			}
			cfg.ContentPath = fmt.Sprintf("content-%d.yaml", i)
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}
	if t.Failed() {
		return
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config.json: %v", err)
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("config.json corrupted/unparseable: %v\nraw:\n%s", err, string(raw))
	}

	ents, err := os.ReadDir(cfgDir)
	if err != nil {
		t.Fatalf("read config dir: %v", err)
	}
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("left behind temp file: %s", e.Name())
		}
	}
}
