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

const bannerColumns = "id, title, image_key, target_url, active, starts_at, ends_at, created_at, updated_at"

func scanBanner(row interface{ Scan(...any) error }) (*models.Banner, error) {
	b := &models.Banner{}
	err := row.Scan(&b.ID, &b.Title, &b.ImageKey, &b.TargetURL, &b.Active,
		&b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// BannerStore handles banner database operations.
type BannerStore struct {
	db *sql.DB
}

// NewBannerStore creates a new BannerStore with the given database connection.
func NewBannerStore(db *sql.DB) *BannerStore {
	return &BannerStore{db: db}
}

// List returns all banners, newest first.
func (s *BannerStore) List(ctx context.Context) ([]models.Banner, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+bannerColumns+" FROM banners ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var banners []models.Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, *b)
	}
	return banners, rows.Err()
}

// FindByID retrieves a banner by its UUID. Returns nil if not found.
func (s *BannerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	b, err := scanBanner(s.db.QueryRowContext(ctx,
		"SELECT "+bannerColumns+" FROM banners WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find banner by id: %w", err)
	}
	return b, nil
}

// Create inserts a new banner. The image is attached afterwards through
// SetImageKey once the upload finishes.
func (s *BannerStore) Create(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	created, err := scanBanner(s.db.QueryRowContext(ctx, `
		INSERT INTO banners (title, target_url, active, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+bannerColumns+`
	`, b.Title, b.TargetURL, b.Active, b.StartsAt, b.EndsAt))
	if err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return created, nil
}

// Update modifies an existing banner's metadata.
func (s *BannerStore) Update(ctx context.Context, b *models.Banner) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE banners
		SET title = $1, target_url = $2, active = $3, starts_at = $4, ends_at = $5,
		    updated_at = NOW()
		WHERE id = $6
	`, b.Title, b.TargetURL, b.Active, b.StartsAt, b.EndsAt, b.ID)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	return nil
}

// SetImageKey records the object key of the banner's uploaded image.
func (s *BannerStore) SetImageKey(ctx context.Context, id uuid.UUID, key string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE banners SET image_key = $1, updated_at = NOW() WHERE id = $2", key, id)
	if err != nil {
		return fmt.Errorf("set banner image key: %w", err)
	}
	return nil
}

// Delete removes a banner.
func (s *BannerStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM banners WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}
