package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Item is a habit item or, when ParentID is zero, a category.
type Item struct {
	ID          int64
	ParentID    int64
	Name        string
	ShortName   string
	Description string
	// Style is the stored template document ("item_style").
	Style string
	Order int
}

// IsCategory reports whether the item is a top-level category.
func (i Item) IsCategory() bool {
	return i.ParentID == 0
}

// CreateItem inserts item and returns it with its id and order assigned.
// New items go to the end of their parent's list.
func (s *Store) CreateItem(ctx context.Context, item Item) (Item, error) {
	var parent any
	if item.ParentID != 0 {
		parent = item.ParentID
	}

	var next int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(item_order), -1) + 1 FROM items WHERE parent_id IS ?`, parent,
	).Scan(&next)
	if err != nil {
		return Item{}, fmt.Errorf("failed to compute item order: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
	INSERT INTO items (parent_id, name, short_name, description, item_style, item_order)
	VALUES (?, ?, ?, ?, ?, ?)
	`, parent, item.Name, item.ShortName, item.Description, item.Style, next)
	if err != nil {
		return Item{}, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Item{}, fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id
	item.Order = next
	return item, nil
}

// Item returns the item with id.
func (s *Store) Item(ctx context.Context, id int64) (Item, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, COALESCE(parent_id, 0), name, short_name, description, item_style, item_order
	FROM items WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("failed to load item %d: %w", id, err)
	}
	return item, nil
}

// Items returns every item, categories first, each level in display order.
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, COALESCE(parent_id, 0), name, short_name, description, item_style, item_order
	FROM items
	ORDER BY COALESCE(parent_id, 0), item_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during item iteration: %w", err)
	}
	return items, nil
}

// LoadStyle returns the stored template document of an item.
func (s *Store) LoadStyle(ctx context.Context, itemID int64) (string, error) {
	item, err := s.Item(ctx, itemID)
	if err != nil {
		return "", err
	}
	return item.Style, nil
}

// SaveStyle replaces the stored template document of an item.
func (s *Store) SaveStyle(ctx context.Context, itemID int64, doc string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE items SET item_style = ? WHERE id = ?`, doc, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item style: %w", err)
	}
	return expectRow(res, ErrItemNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.ParentID, &item.Name, &item.ShortName,
		&item.Description, &item.Style, &item.Order)
	return item, err
}
