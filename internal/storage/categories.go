package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gastos/internal/core"
)

const categoryColumns = "id, name, label, icon, type, created_at, updated_at"

func scanCategory(row interface{ Scan(...any) error }) (core.Category, error) {
	var cat core.Category
	err := row.Scan(&cat.ID, &cat.Name, &cat.Label, &cat.Icon, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt)
	return cat, err
}

// ListCategories returns all categories sorted by type, then label.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY type ASC, label ASC`
	return r.queryCategories(ctx, query)
}

// ListCategoriesByType returns categories of one type sorted by label.
func (r *SQLiteRepository) ListCategoriesByType(ctx context.Context, typ core.TransactionType) ([]core.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE type = ? ORDER BY label ASC`
	return r.queryCategories(ctx, query, string(typ))
}

func (r *SQLiteRepository) queryCategories(ctx context.Context, query string, args ...any) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// GetCategory returns the category with the given id, or nil when absent.
func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (*core.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	cat, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &cat, nil
}

// GetCategoryByName returns the category with the exact name, or nil.
func (r *SQLiteRepository) GetCategoryByName(ctx context.Context, name string) (*core.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = ?`
	cat, err := scanCategory(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query category by name: %w", err)
	}
	return &cat, nil
}

// CategoryNameExists reports whether a category other than excludeID already
// uses the name. Pass an empty excludeID on the create path.
func (r *SQLiteRepository) CategoryNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var count int
	query := `SELECT COUNT(id) FROM categories WHERE name = ? AND id != ?`
	if err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, cat core.Category) error {
	query := `
		INSERT INTO categories (id, name, label, icon, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Label, cat.Icon, string(cat.Type), now, now)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "id", cat.ID, "name", cat.Name, "type", cat.Type)
	return nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, cat core.Category) error {
	query := `
		UPDATE categories
		SET name = ?, label = ?, icon = ?, type = ?, updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, cat.Name, cat.Label, cat.Icon, string(cat.Type), time.Now().UTC(), cat.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("category %s not found", cat.ID)
	}

	slog.InfoContext(ctx, "Category updated", "id", cat.ID, "name", cat.Name)
	return nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("category %s not found", id)
	}

	slog.InfoContext(ctx, "Category deleted", "id", id)
	return nil
}
