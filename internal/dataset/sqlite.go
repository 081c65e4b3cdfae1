// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-analytics/pkg/types"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS entities (
		type TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		affiliation TEXT,
		country TEXT,
		publisher TEXT,
		metrics TEXT NOT NULL,
		PRIMARY KEY (type, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entities_position ON entities(type, position)`,
	`CREATE TABLE IF NOT EXISTS trend_series (
		position INTEGER NOT NULL,
		entity_id TEXT NOT NULL,
		metric TEXT NOT NULL,
		PRIMARY KEY (entity_id, metric)
	)`,
	`CREATE TABLE IF NOT EXISTS trend_points (
		entity_id TEXT NOT NULL,
		metric TEXT NOT NULL,
		year INTEGER NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (entity_id, metric, year),
		FOREIGN KEY (entity_id, metric) REFERENCES trend_series(entity_id, metric)
	)`,
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// WriteSQLite saves d as a SQLite snapshot at path, replacing any existing
// file. Metrics are stored as JSON text so nested groups survive.
func (d *Dataset) WriteSQLite(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing existing snapshot: %w", err)
	}

	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range types.EntityTypes {
		var pos int
		var insertErr error
		d.Scan(t, func(e types.Entity) bool {
			metrics, err := json.Marshal(e.Metrics)
			if err != nil {
				insertErr = fmt.Errorf("encoding metrics for %s %s: %w", t, e.ID, err)
				return false
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO entities (type, position, id, name, affiliation, country, publisher, metrics)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				string(t), pos, e.ID, e.Name, e.Affiliation, e.Country, e.Publisher, string(metrics))
			if err != nil {
				insertErr = fmt.Errorf("inserting %s %s: %w", t, e.ID, err)
				return false
			}
			pos++
			return true
		})
		if insertErr != nil {
			return insertErr
		}
	}

	for pos, key := range d.seriesOrder {
		s := d.series[key]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO trend_series (position, entity_id, metric) VALUES (?, ?, ?)`,
			pos, s.EntityID, s.Metric); err != nil {
			return fmt.Errorf("inserting series %s/%s: %w", s.EntityID, s.Metric, err)
		}
		for _, p := range s.Points {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO trend_points (entity_id, metric, year, value) VALUES (?, ?, ?, ?)`,
				s.EntityID, s.Metric, p.Year, p.Value); err != nil {
				return fmt.Errorf("inserting point %s/%s/%d: %w", s.EntityID, s.Metric, p.Year, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LoadSQLite reads a snapshot written by WriteSQLite into memory. The
// database is closed before returning; queries never touch it.
func LoadSQLite(ctx context.Context, path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dataset snapshot: %w", err)
	}

	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var c Contents
	rows, err := db.QueryContext(ctx,
		`SELECT type, id, name, affiliation, country, publisher, metrics
		FROM entities ORDER BY type, position`)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind, metrics                   string
			e                               types.Entity
			affiliation, country, publisher sql.NullString
		)
		if err := rows.Scan(&kind, &e.ID, &e.Name, &affiliation, &country, &publisher, &metrics); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		e.Affiliation = affiliation.String
		e.Country = country.String
		e.Publisher = publisher.String
		if err := json.Unmarshal([]byte(metrics), &e.Metrics); err != nil {
			return nil, fmt.Errorf("decoding metrics for %s %s: %w", kind, e.ID, err)
		}
		switch types.EntityType(kind) {
		case types.EntityAuthor:
			c.Authors = append(c.Authors, e)
		case types.EntityInstitution:
			c.Institutions = append(c.Institutions, e)
		case types.EntityJournal:
			c.Journals = append(c.Journals, e)
		default:
			return nil, fmt.Errorf("entity %s has unknown type %q", e.ID, kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}

	trends, err := loadSeries(ctx, db)
	if err != nil {
		return nil, err
	}
	c.Trends = trends

	return New(c)
}

func loadSeries(ctx context.Context, db *sql.DB) ([]types.TrendSeries, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT s.entity_id, s.metric, p.year, p.value
		FROM trend_series s
		LEFT JOIN trend_points p ON p.entity_id = s.entity_id AND p.metric = s.metric
		ORDER BY s.position, p.year`)
	if err != nil {
		return nil, fmt.Errorf("querying trend series: %w", err)
	}
	defer rows.Close()

	var series []types.TrendSeries
	for rows.Next() {
		var (
			entityID, metric string
			year             sql.NullInt64
			value            sql.NullFloat64
		)
		if err := rows.Scan(&entityID, &metric, &year, &value); err != nil {
			return nil, fmt.Errorf("scanning trend point: %w", err)
		}
		n := len(series)
		if n == 0 || series[n-1].EntityID != entityID || series[n-1].Metric != metric {
			series = append(series, types.TrendSeries{EntityID: entityID, Metric: metric})
			n++
		}
		if year.Valid {
			series[n-1].Points = append(series[n-1].Points, types.TrendPoint{
				Year:  int(year.Int64),
				Value: value.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trend points: %w", err)
	}
	return series, nil
}
