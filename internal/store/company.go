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

const companyColumns = "id, name, description, address, phone, whatsapp, category_id, active, created_at, updated_at"

func scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Address, &c.Phone,
		&c.WhatsApp, &c.CategoryID, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CompanyStore handles local-business listing database operations.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore creates a new CompanyStore with the given database connection.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

// List returns companies in name order, optionally filtered by category.
func (s *CompanyStore) List(ctx context.Context, categoryID *uuid.UUID) ([]models.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies"
	var args []any
	if categoryID != nil {
		query += " WHERE category_id = $1"
		args = append(args, *categoryID)
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// FindByID retrieves a company by its UUID. Returns nil if not found.
func (s *CompanyStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	c, err := scanCompany(s.db.QueryRowContext(ctx,
		"SELECT "+companyColumns+" FROM companies WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find company by id: %w", err)
	}
	return c, nil
}

// Create inserts a new company.
func (s *CompanyStore) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	created, err := scanCompany(s.db.QueryRowContext(ctx, `
		INSERT INTO companies (name, description, address, phone, whatsapp, category_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+companyColumns+`
	`, c.Name, c.Description, c.Address, c.Phone, c.WhatsApp, c.CategoryID, c.Active))
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return created, nil
}

// Update modifies an existing company.
func (s *CompanyStore) Update(ctx context.Context, c *models.Company) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE companies
		SET name = $1, description = $2, address = $3, phone = $4, whatsapp = $5,
		    category_id = $6, active = $7, updated_at = NOW()
		WHERE id = $8
	`, c.Name, c.Description, c.Address, c.Phone, c.WhatsApp, c.CategoryID, c.Active, c.ID)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete removes a company.
func (s *CompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM companies WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// WhatsAppGroupStore handles community group invite database operations.
type WhatsAppGroupStore struct {
	db *sql.DB
}

// NewWhatsAppGroupStore creates a new WhatsAppGroupStore with the given
// database connection.
func NewWhatsAppGroupStore(db *sql.DB) *WhatsAppGroupStore {
	return &WhatsAppGroupStore{db: db}
}

// List returns all groups in name order.
func (s *WhatsAppGroupStore) List(ctx context.Context) ([]models.WhatsAppGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, invite_link, active, created_at, updated_at FROM whatsapp_groups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list whatsapp groups: %w", err)
	}
	defer rows.Close()

	var groups []models.WhatsAppGroup
	for rows.Next() {
		var g models.WhatsAppGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.InviteLink, &g.Active, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan whatsapp group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// FindByID retrieves a group by its UUID. Returns nil if not found.
func (s *WhatsAppGroupStore) FindByID(ctx context.Context, id uuid.UUID) (*models.WhatsAppGroup, error) {
	g := &models.WhatsAppGroup{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, invite_link, active, created_at, updated_at FROM whatsapp_groups WHERE id = $1", id,
	).Scan(&g.ID, &g.Name, &g.InviteLink, &g.Active, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find whatsapp group by id: %w", err)
	}
	return g, nil
}

// Create inserts a new group.
func (s *WhatsAppGroupStore) Create(ctx context.Context, name, inviteLink string, active bool) (*models.WhatsAppGroup, error) {
	g := &models.WhatsAppGroup{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO whatsapp_groups (name, invite_link, active) VALUES ($1, $2, $3)
		RETURNING id, name, invite_link, active, created_at, updated_at
	`, name, inviteLink, active).Scan(&g.ID, &g.Name, &g.InviteLink, &g.Active, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create whatsapp group: %w", err)
	}
	return g, nil
}

// Update modifies an existing group.
func (s *WhatsAppGroupStore) Update(ctx context.Context, g *models.WhatsAppGroup) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE whatsapp_groups
		SET name = $1, invite_link = $2, active = $3, updated_at = NOW()
		WHERE id = $4
	`, g.Name, g.InviteLink, g.Active, g.ID)
	if err != nil {
		return fmt.Errorf("update whatsapp group: %w", err)
	}
	return nil
}

// Delete removes a group.
func (s *WhatsAppGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM whatsapp_groups WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete whatsapp group: %w", err)
	}
	return nil
}
