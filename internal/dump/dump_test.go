package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"radarrtagger/internal/radarr"
	"radarrtagger/internal/services"
)

func decodeMovies(t *testing.T, payload string) []radarr.Movie {
	t.Helper()
	var movies []radarr.Movie
	if err := json.Unmarshal([]byte(payload), &movies); err != nil {
		t.Fatalf("decode movies: %v", err)
	}
	return movies
}

const samplePayload = `[
	{"id": 1, "title": "Alien", "year": 1979, "monitored": true, "hasFile": true, "movieFileId": 11, "qualityProfileId": 4, "path": "/movies/Alien (1979)", "tags": [1, 5]},
	{"id": 2, "title": "Heat, Part 1", "year": 1995, "monitored": false, "hasFile": false, "movieFileId": 0, "path": null, "tags": []}
]`

func TestWriteJSONPreservesServerFields(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	path, err := Write(dir, "JSON", decodeMovies(t, samplePayload))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "raw_movies.json" {
		t.Fatalf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(decoded))
	}
	if decoded[0]["qualityProfileId"] != float64(4) || decoded[0]["year"] != float64(1979) {
		t.Fatalf("expected server fields to survive, got %v", decoded[0])
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Fatalf("expected indented output, got %s", data)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, "csv", decodeMovies(t, samplePayload))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "raw_movies.csv" {
		t.Fatalf("unexpected path %q", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open dump: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "id,title,year,monitored,hasFile,movieFileId,qualityProfileId,path,tags" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	want := []string{"1", "Alien", "1979", "true", "true", "11", "4", "/movies/Alien (1979)", "1;5"}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Fatalf("column %s: expected %q, got %q", rows[0][i], want[i], rows[1][i])
		}
	}
	if rows[2][1] != "Heat, Part 1" || rows[2][6] != "" || rows[2][7] != "" || rows[2][8] != "" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestWriteEmptyJSON(t *testing.T) {
	path, err := Write(t.TempDir(), "", nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	_, err := Write(t.TempDir(), "yaml", nil)
	if err == nil {
		t.Fatal("expected error for yaml format")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}
