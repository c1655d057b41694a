package dump

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"radarrtagger/internal/radarr"
	"radarrtagger/internal/services"
)

const baseName = "raw_movies"

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvColumns = []string{"id", "title", "year", "monitored", "hasFile", "movieFileId", "qualityProfileId", "path", "tags"}

// Write stores movies in dir using format and returns the file path.
func Write(dir, format string, movies []radarr.Movie) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV {
		return "", services.Wrap(services.ErrValidation, "dump", "write", fmt.Sprintf("unsupported format %q", format), nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, baseName+"."+format)
	tmp, err := os.CreateTemp(dir, baseName+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create dump file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	switch format {
	case FormatCSV:
		err = EncodeCSV(tmp, movies)
	default:
		err = EncodeJSON(tmp, movies)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("finalize %s: %w", path, err)
	}
	return path, nil
}

// EncodeJSON writes movies as an indented JSON array.
func EncodeJSON(w io.Writer, movies []radarr.Movie) error {
	if movies == nil {
		movies = []radarr.Movie{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(movies)
}

// EncodeCSV writes one row per movie with a header.
func EncodeCSV(w io.Writer, movies []radarr.Movie) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return err
	}
	for _, movie := range movies {
		if err := writer.Write(csvRow(movie)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(movie radarr.Movie) []string {
	row := make([]string, 0, len(csvColumns))
	for _, column := range csvColumns {
		switch column {
		case "id":
			row = append(row, strconv.FormatInt(movie.ID, 10))
		case "title":
			row = append(row, movie.Title)
		case "movieFileId":
			row = append(row, strconv.FormatInt(movie.MovieFileID, 10))
		case "tags":
			ids := make([]string, 0, len(movie.Tags))
			for _, id := range movie.Tags {
				ids = append(ids, strconv.FormatInt(id, 10))
			}
			row = append(row, strings.Join(ids, ";"))
		default:
			row = append(row, rawText(movie, column))
		}
	}
	return row
}

func rawText(movie radarr.Movie, key string) string {
	value, ok := movie.Field(key)
	if !ok {
		return ""
	}
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return text
	}
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}
