package source

import (
	"context"
	"fmt"

	"linkmap/core-go/internal/db"
	"linkmap/core-go/internal/record"
)

// PostgresLoader reads the two collections from the sites and links tables.
// It is a source of records, not a store of engine output: rows are mapped
// to the same raw record shape the file loader produces so the accessor path
// downstream stays single.
type PostgresLoader struct {
	pool *db.Pool
}

func NewPostgresLoader(pool *db.Pool) *PostgresLoader {
	return &PostgresLoader{pool: pool}
}

const (
	sitesQuery = `SELECT name, longitude, latitude, COALESCE(note, ''), COALESCE(icon, '') FROM sites ORDER BY id`
	linksQuery = `SELECT source, target, COALESCE(link_type, ''), COALESCE(tags, '{}') FROM links ORDER BY id`
)

func (l *PostgresLoader) Load(ctx context.Context) ([]record.Raw, []record.Raw, error) {
	sites, err := l.loadSites(ctx)
	if err != nil {
		return nil, nil, err
	}
	links, err := l.loadLinks(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sites, links, nil
}

func (l *PostgresLoader) loadSites(ctx context.Context) ([]record.Raw, error) {
	rows, err := l.pool.Pgx().Query(ctx, sitesQuery)
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}
	defer rows.Close()

	var out []record.Raw
	for rows.Next() {
		var (
			name, note, icon string
			lon, lat         float64
		)
		if err := rows.Scan(&name, &lon, &lat, &note, &icon); err != nil {
			return nil, fmt.Errorf("scan site row: %w", err)
		}
		out = append(out, SiteRecord(name, lon, lat, note, icon))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate site rows: %w", err)
	}
	return out, nil
}

func (l *PostgresLoader) loadLinks(ctx context.Context) ([]record.Raw, error) {
	rows, err := l.pool.Pgx().Query(ctx, linksQuery)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var out []record.Raw
	for rows.Next() {
		var (
			source, target, linkType string
			tags                     []string
		)
		if err := rows.Scan(&source, &target, &linkType, &tags); err != nil {
			return nil, fmt.Errorf("scan link row: %w", err)
		}
		out = append(out, LinkRecord(source, target, linkType, tags))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link rows: %w", err)
	}
	return out, nil
}

// SiteRecord builds a raw site record in the file-source shape.
func SiteRecord(name string, lon, lat float64, note, icon string) record.Raw {
	rec := record.Raw{
		"name":     name,
		"position": []any{lon, lat},
	}
	if note != "" {
		rec["note"] = note
	}
	if icon != "" {
		rec["icon"] = icon
	}
	return rec
}

// LinkRecord builds a raw link record in the file-source shape.
func LinkRecord(source, target, linkType string, tags []string) record.Raw {
	rec := record.Raw{
		"source": source,
		"target": target,
	}
	if linkType != "" {
		rec["linkType"] = linkType
	}
	if len(tags) > 0 {
		rec["tags"] = tags
	}
	return rec
}
