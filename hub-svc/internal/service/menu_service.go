package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"marwad-digital-menu/hub-svc/internal/domain"
)

type MenuService struct {
	repository MenuRepository
}

func NewMenuService(repository MenuRepository) *MenuService {
	return &MenuService{repository: repository}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.repository.ListMenu(ctx)
	if err != nil {
		return nil, storeErr("list menu", err)
	}
	return items, nil
}

// Upsert creates the item when ID is zero and replaces it otherwise.
func (s *MenuService) Upsert(ctx context.Context, item *domain.MenuItem) error {
	if err := normalizeMenuItem(item); err != nil {
		return err
	}
	err := s.repository.UpsertMenuItem(ctx, item)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMenuItemNotFound
	}
	if err != nil {
		return storeErr("upsert menu item", err)
	}
	return nil
}

func normalizeMenuItem(item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = domain.Category(strings.TrimSpace(string(item.Category)))
	item.SubCategory = strings.TrimSpace(item.SubCategory)

	if item.Name == "" {
		return invalidf(ErrInvalidMenuItem, "name is required")
	}
	if item.Category == "" {
		return invalidf(ErrInvalidMenuItem, "category is required")
	}
	hasPrice, hasPortions := item.Price != nil, len(item.Portions) > 0
	if hasPrice == hasPortions {
		return invalidf(ErrInvalidMenuItem, "%q needs either a price or portions", item.Name)
	}
	if hasPrice && *item.Price < 0 {
		return invalidf(ErrInvalidMenuItem, "%q has a negative price", item.Name)
	}
	for i := range item.Portions {
		p := &item.Portions[i]
		p.Label = strings.TrimSpace(p.Label)
		if p.Label == "" || p.Price < 0 {
			return invalidf(ErrInvalidMenuItem, "%q has an invalid portion %d", item.Name, i+1)
		}
	}
	return nil
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	affected, err := s.repository.DeleteMenuItem(ctx, id)
	if err != nil {
		return storeErr("delete menu item", err)
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (s *MenuService) SetAvailability(ctx context.Context, id int, available bool) error {
	affected, err := s.repository.SetMenuAvailability(ctx, id, available)
	if err != nil {
		return storeErr("set menu availability", err)
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
