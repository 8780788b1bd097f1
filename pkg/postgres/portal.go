package postgres

import (
	"context"
	"fmt"

	"github.com/ncaufield/devportal/pkg/core/model"
)

// ListQuickLinks retrieves all quick links ordered by title
func (d *DB) ListQuickLinks(ctx context.Context) ([]model.QuickLink, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, title, url, owner
		FROM quick_links
		ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quick links: %w", err)
	}
	defer rows.Close()

	var links []model.QuickLink
	for rows.Next() {
		var l model.QuickLink
		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Owner); err != nil {
			return nil, fmt.Errorf("failed to scan quick link: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quick links: %w", err)
	}

	return links, nil
}

// InsertQuickLink inserts a new quick link
func (d *DB) InsertQuickLink(ctx context.Context, link *model.QuickLink) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO quick_links (id, title, url, owner)
		VALUES ($1, $2, $3, $4)
	`, link.ID, link.Title, link.URL, link.Owner)
	if err != nil {
		return fmt.Errorf("failed to insert quick link: %w", err)
	}
	return nil
}

// DeleteQuickLink removes a quick link
func (d *DB) DeleteQuickLink(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM quick_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quick link: %w", err)
	}
	return nil
}

// ListPlugins retrieves all registered plugins ordered by name
func (d *DB) ListPlugins(ctx context.Context) ([]model.Plugin, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, version, enabled
		FROM plugins
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugins: %w", err)
	}
	defer rows.Close()

	var plugins []model.Plugin
	for rows.Next() {
		var p model.Plugin
		if err := rows.Scan(&p.ID, &p.Name, &p.Version, &p.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan plugin: %w", err)
		}
		plugins = append(plugins, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plugins: %w", err)
	}

	return plugins, nil
}

// UpsertPlugin registers a plugin or updates its recorded version
func (d *DB) UpsertPlugin(ctx context.Context, plugin *model.Plugin) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO plugins (id, name, version, enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = $2, version = $3
	`, plugin.ID, plugin.Name, plugin.Version, plugin.Enabled)
	if err != nil {
		return fmt.Errorf("failed to upsert plugin: %w", err)
	}
	return nil
}

// SetPluginEnabled toggles a plugin
func (d *DB) SetPluginEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := d.pool.Exec(ctx, `UPDATE plugins SET enabled = $2 WHERE id = $1`, id, enabled)
	if err != nil {
		return fmt.Errorf("failed to toggle plugin: %w", err)
	}
	return nil
}

// ListSettings retrieves all portal settings ordered by key
func (d *DB) ListSettings(ctx context.Context) ([]model.Setting, error) {
	rows, err := d.pool.Query(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []model.Setting
	for rows.Next() {
		var s model.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}

// PutSetting creates or replaces one setting
func (d *DB) PutSetting(ctx context.Context, key, value string) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to put setting: %w", err)
	}
	return nil
}
