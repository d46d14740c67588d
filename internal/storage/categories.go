package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tracker/internal/common"
	"github.com/Veraticus/tracker/internal/model"
)

// CreateCategory inserts a category and returns it with its store-assigned ID.
// Names are not required to be unique.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.q.ExecContext(ctx,
		`INSERT INTO category (name, description) VALUES (?, ?)`,
		name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Debug("created category", "id", id, "name", name)
	return &model.Category{
		ID:          id,
		Name:        name,
		Description: description,
	}, nil
}

// GetCategories returns every category in insertion order.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, description
		FROM category
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns the category with id, or an error wrapping common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var cat model.Category
	err := s.q.QueryRowContext(ctx,
		`SELECT id, name, description FROM category WHERE id = ?`, id,
	).Scan(&cat.ID, &cat.Name, &cat.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// UpdateCategory overwrites the name and description of the category with id.
// When no row matches, nothing changes and the error wraps common.ErrNotFound.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id int64, name, description string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.q.ExecContext(ctx,
		`UPDATE category SET name = ?, description = ? WHERE id = ?`,
		name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	if err := requireAffected(result, "category", id); err != nil {
		return err
	}

	slog.Debug("updated category", "id", id, "name", name)
	return nil
}

// requireAffected maps a zero-row write to common.ErrNotFound.
func requireAffected(result sql.Result, table string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", table, id, common.ErrNotFound)
	}
	return nil
}
