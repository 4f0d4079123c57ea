package calendar

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// fileItem is one subscription in the YAML schedule file.
type fileItem struct {
	Name        string `yaml:"name"`
	Season      int    `yaml:"season"`
	Poster      string `yaml:"poster"`
	ReleaseDate string `yaml:"release_date"` // movies only
	Title       string `yaml:"title"`
	Episodes    []struct {
		AirDate string `yaml:"air_date"`
		Episode int    `yaml:"episode"`
		Title   string `yaml:"title"`
	} `yaml:"episodes"`
}

// FileSource reads the airing schedule from a local YAML file. It serves
// setups without a MoviePilot instance and keeps the calendar testable
// offline.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed calendar source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Entries implements Source.
func (s *FileSource) Entries(_ context.Context, _ domain.Window) ([]DatedEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}

	var items []fileItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse schedule file: %w", err)
	}

	var entries []DatedEntry
	for _, item := range items {
		if item.Season > 0 {
			for _, ep := range item.Episodes {
				if !isISODate(ep.AirDate) {
					continue
				}
				entries = append(entries, DatedEntry{
					Date: ep.AirDate,
					Entry: domain.CalendarEntry{
						Name:       item.Name,
						Title:      ep.Title,
						Season:     item.Season,
						Episode:    ep.Episode,
						PosterPath: item.Poster,
					},
				})
			}
			continue
		}

		if !isISODate(item.ReleaseDate) {
			continue
		}
		title := item.Title
		if title == "" {
			title = item.Name
		}
		entries = append(entries, DatedEntry{
			Date: item.ReleaseDate,
			Entry: domain.CalendarEntry{
				Name:       item.Name,
				Title:      title,
				PosterPath: item.Poster,
				Movie:      true,
			},
		})
	}
	return entries, nil
}
