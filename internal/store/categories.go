package store

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"godo/internal/model"
)

// AddCategory inserts a category.
func (s *Store) AddCategory(c model.Category) (model.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return model.Category{}, validationf("category name must not be empty")
	}

	s.mu.Lock()
	now := s.now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.Name = strings.TrimSpace(c.Name)
	s.categories = append(s.categories, c)
	s.mu.Unlock()

	s.emit(EventCategoryChanged, c.ID)
	return c, nil
}

// UpdateCategory replaces a category by id.
func (s *Store) UpdateCategory(c model.Category) (model.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return model.Category{}, validationf("category name must not be empty")
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.categories, func(x model.Category) bool { return x.ID == c.ID })
	if i < 0 {
		s.mu.Unlock()
		return model.Category{}, notFoundf("category %s", c.ID)
	}
	c.CreatedAt = s.categories[i].CreatedAt
	c.UpdatedAt = s.now()
	c.Name = strings.TrimSpace(c.Name)
	s.categories[i] = c
	s.mu.Unlock()

	s.emit(EventCategoryChanged, c.ID)
	return c, nil
}

// DeleteCategory removes a category and clears the reference on every task
// that pointed at it. Tasks themselves are never deleted.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	i := slices.IndexFunc(s.categories, func(x model.Category) bool { return x.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return notFoundf("category %s", id)
	}
	s.categories = slices.Delete(s.categories, i, i+1)

	now := s.now()
	for tid, t := range s.tasks {
		if t.CategoryID == id {
			t.CategoryID = ""
			t.UpdatedAt = now
			s.tasks[tid] = t
		}
	}
	s.mu.Unlock()

	s.emit(EventCategoryChanged, id)
	return nil
}

// Categories returns a copy of the category list in insertion order.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// CategoryByName finds a category by exact name.
func (s *Store) CategoryByName(name string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Category{}, notFoundf("category %q", name)
}
