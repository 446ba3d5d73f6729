package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"budgetbook/internal/core"
)

const createCategory = `
INSERT INTO categories (name, type, description)
VALUES (?, ?, NULLIF(?, ''))
RETURNING id`

func (q *Queries) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	row := q.db.QueryRowContext(ctx, createCategory, c.Name, string(c.Type), c.Description)
	if err := row.Scan(&c.ID); err != nil {
		if isUniqueViolation(err) {
			return core.Category{}, core.Conflictf("a category named %q already exists", c.Name)
		}
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

const getCategory = `
SELECT id, name, type, COALESCE(description, '')
FROM categories
WHERE id = ?`

func (q *Queries) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	var typ string
	err := q.db.QueryRowContext(ctx, getCategory, id).Scan(&c.ID, &c.Name, &typ, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, &core.NotFoundError{Entity: "category", ID: id}
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	c.Type = core.CategoryType(typ)
	return c, nil
}

const listCategories = `
SELECT id, name, type, COALESCE(description, '')
FROM categories
ORDER BY name`

func (q *Queries) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		var typ string
		if err := rows.Scan(&c.ID, &c.Name, &typ, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.CategoryType(typ)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const updateCategory = `
UPDATE categories
SET name = ?, type = ?, description = NULLIF(?, '')
WHERE id = ?`

func (q *Queries) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := q.db.ExecContext(ctx, updateCategory, c.Name, string(c.Type), c.Description, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Conflictf("a category named %q already exists", c.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "category", ID: c.ID}
	}
	return nil
}

const deleteCategory = `
DELETE FROM categories
WHERE id = ?`

func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "category", ID: id}
	}
	return nil
}

const countBudgetsByCategory = `
SELECT COUNT(*)
FROM budgets
WHERE category_id = ?`

func (q *Queries) CountBudgetsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, countBudgetsByCategory, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count budgets by category: %w", err)
	}
	return n, nil
}
