package postgres

import (
	"context"
	"fmt"

	"github.com/ncaufield/devportal/pkg/core/model"
)

// ListMembers retrieves the full roster ordered by name
func (d *DB) ListMembers(ctx context.Context) ([]model.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, full_name, role, avatar, team
		FROM members
		ORDER BY full_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.FullName, &m.Role, &m.Avatar, &m.Team); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// InsertMember inserts a new roster member
func (d *DB) InsertMember(ctx context.Context, member *model.Member) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO members (id, full_name, role, avatar, team)
		VALUES ($1, $2, $3, $4, $5)
	`, member.ID, member.FullName, member.Role, member.Avatar, member.Team)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// DeleteMember removes a roster member. Shifts keep their assignee id;
// the reference is weak and dangling ids simply render unresolved.
func (d *DB) DeleteMember(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
