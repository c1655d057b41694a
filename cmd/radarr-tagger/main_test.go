package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

type fakeRadarr struct {
	mu      sync.Mutex
	movies  []map[string]any
	tags    []map[string]any
	files   map[int]map[string]any
	puts    []map[string]any
	nextTag int
}

func newFakeRadarr() *fakeRadarr {
	return &fakeRadarr{
		movies: []map[string]any{
			{"id": 1, "title": "Alien", "movieFileId": 11, "tags": []int{}, "monitored": true},
			{"id": 2, "title": "Heat", "movieFileId": 0, "tags": []int{}, "monitored": false},
		},
		files: map[int]map[string]any{
			11: {"id": 11, "customFormatScore": 150, "releaseGroup": "MoTong", "quality": map[string]any{"quality": map[string]any{"resolution": 2160}}},
		},
		nextTag: 1,
	}
}

func (f *fakeRadarr) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.Header.Get("X-Api-Key") != "test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v3")
	switch {
	case r.Method == http.MethodGet && path == "/movie":
		_ = json.NewEncoder(w).Encode(f.movies)
	case r.Method == http.MethodGet && path == "/tag":
		_ = json.NewEncoder(w).Encode(f.tags)
	case r.Method == http.MethodPost && path == "/tag":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = f.nextTag
		f.nextTag++
		f.tags = append(f.tags, body)
		_ = json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/moviefile/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/moviefile/"))
		file, ok := f.files[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(file)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/movie/"):
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.puts = append(f.puts, body)
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(body)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type cliEnv struct {
	radarr     *fakeRadarr
	configPath string
	baseDir    string
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Chdir(base)
	for _, key := range []string{
		"RADARR_URL", "RADARR_API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
		"SCORE_THRESHOLD", "INTERVAL_MINUTES", "OUTPUT_DIRECTORY", "NTFY_TOPIC", "API_BIND",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return base
}

func setupCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	base := isolateEnv(t)

	fake := newFakeRadarr()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	type payload struct {
		Radarr struct {
			URL    string `toml:"url"`
			APIKey string `toml:"api_key"`
		} `toml:"radarr"`
		Paths struct {
			LogDir    string `toml:"log_dir"`
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	var cfg payload
	cfg.Radarr.URL = server.URL
	cfg.Radarr.APIKey = "test-key"
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputDir = filepath.Join(base, "results")
	cfg.Logging.Level = "error"
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(base, "radarr-tagger.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliEnv{radarr: fake, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	isolateEnv(t)
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if out != "Radarr Tag Updater v1.0.0\n" {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestMissingConfigurationFails(t *testing.T) {
	isolateEnv(t)
	_, err := runCLI(t, "once")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !strings.Contains(err.Error(), "RADARR_URL") {
		t.Fatalf("expected hint about RADARR_URL, got %v", err)
	}
}

func TestOnceUpdatesMovies(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "once", "--config", env.configPath)
	if err != nil {
		t.Fatalf("once returned error: %v", err)
	}
	if !strings.Contains(out, "Processed 2 movies: 2 updated") {
		t.Fatalf("unexpected output %q", out)
	}
	if len(env.radarr.tags) != 5 {
		t.Fatalf("expected well-known tags to be created, got %v", env.radarr.tags)
	}
	if len(env.radarr.puts) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(env.radarr.puts))
	}
	if env.radarr.puts[0]["monitored"] != true {
		t.Fatalf("expected full payload in update, got %v", env.radarr.puts[0])
	}
	if _, err := os.Stat(filepath.Join(env.baseDir, "logs", "radarr-tagger.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestOnceTestModeLimitsMovies(t *testing.T) {
	env := setupCLIEnv(t)
	for i := 3; i <= 9; i++ {
		env.radarr.movies = append(env.radarr.movies, map[string]any{"id": i, "title": "Extra", "movieFileId": 0, "tags": []int{}})
	}

	out, err := runCLI(t, "once", "--test", "--config", env.configPath)
	if err != nil {
		t.Fatalf("once --test returned error: %v", err)
	}
	if !strings.Contains(out, "Processed 5 movies") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPlanDoesNotUpdate(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "plan", "--config", env.configPath)
	if err != nil {
		t.Fatalf("plan returned error: %v", err)
	}
	if len(env.radarr.puts) != 0 {
		t.Fatalf("plan must not update movies, got %d puts", len(env.radarr.puts))
	}
	for _, want := range []string{"Alien", "+positive_score", "+motong", "+4k", "2 of 2 movies would change"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in plan output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no colour codes for non-tty output")
	}
}

func TestTagsCommandReportsMissing(t *testing.T) {
	env := setupCLIEnv(t)
	env.radarr.tags = []map[string]any{{"id": 7, "label": "no_score"}, {"id": 8, "label": "custom"}}

	out, err := runCLI(t, "tags", "--config", env.configPath)
	if err != nil {
		t.Fatalf("tags returned error: %v", err)
	}
	if !strings.Contains(out, "no_score") || !strings.Contains(out, "custom") {
		t.Fatalf("expected tags in output:\n%s", out)
	}
	if !strings.Contains(out, "Missing well-known tags") || !strings.Contains(out, "motong") {
		t.Fatalf("expected missing tags summary:\n%s", out)
	}
}

func TestDumpWritesCSV(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "dump", "--format", "csv", "--config", env.configPath)
	if err != nil {
		t.Fatalf("dump returned error: %v", err)
	}
	path := filepath.Join(env.baseDir, "results", "raw_movies.csv")
	if !strings.Contains(out, path) {
		t.Fatalf("expected output to mention %s, got %q", path, out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.Contains(string(data), "Alien") {
		t.Fatalf("unexpected dump contents: %s", data)
	}
}

func TestInvalidFormatOverrideFails(t *testing.T) {
	env := setupCLIEnv(t)
	if _, err := runCLI(t, "dump", "--format", "yaml", "--config", env.configPath); err == nil {
		t.Fatal("expected error for unsupported dump format")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	base := isolateEnv(t)
	target := filepath.Join(base, "conf", "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected path in output, got %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
}

func TestConfigValidate(t *testing.T) {
	env := setupCLIEnv(t)
	out, err := runCLI(t, "config", "validate", "--config", env.configPath)
	if err != nil {
		t.Fatalf("config validate returned error: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTestNotifyWithoutTopic(t *testing.T) {
	env := setupCLIEnv(t)
	out, err := runCLI(t, "test-notify", "--config", env.configPath)
	if err != nil {
		t.Fatalf("test-notify returned error: %v", err)
	}
	if !strings.Contains(out, "Notifications disabled") {
		t.Fatalf("unexpected output %q", out)
	}
}
