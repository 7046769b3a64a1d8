// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"portalpress/internal/models"
)

const portalColumns = "id, name, referral_link, active, created_at, updated_at"

// PortalStore handles portal database operations.
type PortalStore struct {
	db *sql.DB
}

// NewPortalStore creates a new PortalStore with the given database connection.
func NewPortalStore(db *sql.DB) *PortalStore {
	return &PortalStore{db: db}
}

func scanPortal(row interface{ Scan(...any) error }, p *models.Portal) error {
	return row.Scan(&p.ID, &p.Name, &p.ReferralLink, &p.Active, &p.CreatedAt, &p.UpdatedAt)
}

// List returns all portals, name order. With activeOnly, inactive portals
// are excluded — the publish step only offers active targets.
func (s *PortalStore) List(ctx context.Context, activeOnly bool) ([]models.Portal, error) {
	query := "SELECT " + portalColumns + " FROM portals"
	if activeOnly {
		query += " WHERE active"
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list portals: %w", err)
	}
	defer rows.Close()

	var portals []models.Portal
	for rows.Next() {
		var p models.Portal
		if err := scanPortal(rows, &p); err != nil {
			return nil, fmt.Errorf("scan portal: %w", err)
		}
		portals = append(portals, p)
	}
	return portals, rows.Err()
}

// FindByID retrieves a portal by its UUID. Returns nil if not found.
func (s *PortalStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Portal, error) {
	p := &models.Portal{}
	err := scanPortal(s.db.QueryRowContext(ctx,
		"SELECT "+portalColumns+" FROM portals WHERE id = $1", id), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portal by id: %w", err)
	}
	return p, nil
}

// Create inserts a new portal.
func (s *PortalStore) Create(ctx context.Context, p *models.Portal) (*models.Portal, error) {
	result := &models.Portal{}
	err := scanPortal(s.db.QueryRowContext(ctx, `
		INSERT INTO portals (name, referral_link, active)
		VALUES ($1, $2, $3)
		RETURNING `+portalColumns,
		p.Name, p.ReferralLink, p.Active), result)
	if err != nil {
		return nil, fmt.Errorf("create portal: %w", err)
	}
	return result, nil
}

// Update modifies an existing portal.
func (s *PortalStore) Update(ctx context.Context, p *models.Portal) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE portals SET name = $1, referral_link = $2, active = $3, updated_at = NOW()
		WHERE id = $4
	`, p.Name, p.ReferralLink, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("update portal: %w", err)
	}
	return nil
}

// Delete removes a portal. Articles published to it keep their rows until
// unpublished, so Postgres rejects the delete while associations exist.
func (s *PortalStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM portals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete portal: %w", err)
	}
	return nil
}
