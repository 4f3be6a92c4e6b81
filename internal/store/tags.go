package store

import (
	"slices"

	"godo/internal/model"
)

// AddTag registers a tag in the store-owned registry. The name is
// canonicalized with a "#" prefix. Adding an existing tag is a no-op.
func (s *Store) AddTag(name string) (string, error) {
	tag := model.CanonicalTag(name)
	if tag == "" {
		return "", validationf("tag name must not be empty")
	}

	s.mu.Lock()
	if !slices.Contains(s.tags, tag) {
		s.tags = append(s.tags, tag)
	}
	s.mu.Unlock()

	s.emit(EventTagsChanged, tag)
	return tag, nil
}

// RenameTag rewrites a tag in the registry and on every task referencing it.
func (s *Store) RenameTag(old, new string) (string, error) {
	oldTag := model.CanonicalTag(old)
	newTag := model.CanonicalTag(new)
	if newTag == "" {
		return "", validationf("tag name must not be empty")
	}

	s.mu.Lock()
	i := slices.Index(s.tags, oldTag)
	if i < 0 {
		s.mu.Unlock()
		return "", notFoundf("tag %q", oldTag)
	}
	// Renaming onto an existing tag merges the two registry entries.
	if j := slices.Index(s.tags, newTag); j >= 0 && j != i {
		s.tags = slices.Delete(s.tags, i, i+1)
	} else {
		s.tags[i] = newTag
	}

	now := s.now()
	for id, t := range s.tasks {
		if !t.HasTag(oldTag) {
			continue
		}
		kept := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			if tag == oldTag {
				tag = newTag
			}
			if !slices.Contains(kept, tag) {
				kept = append(kept, tag)
			}
		}
		t.Tags = kept
		t.UpdatedAt = now
		s.tasks[id] = t
	}
	s.mu.Unlock()

	s.emit(EventTagsChanged, newTag)
	return newTag, nil
}

// RemoveTag deletes a tag from the registry and filters it out of every
// task's tag list.
func (s *Store) RemoveTag(name string) error {
	tag := model.CanonicalTag(name)

	s.mu.Lock()
	i := slices.Index(s.tags, tag)
	if i < 0 {
		s.mu.Unlock()
		return notFoundf("tag %q", tag)
	}
	s.tags = slices.Delete(s.tags, i, i+1)

	now := s.now()
	for id, t := range s.tasks {
		if !t.HasTag(tag) {
			continue
		}
		kept := make([]string, 0, len(t.Tags)-1)
		for _, x := range t.Tags {
			if x != tag {
				kept = append(kept, x)
			}
		}
		t.Tags = kept
		t.UpdatedAt = now
		s.tasks[id] = t
	}
	s.mu.Unlock()

	s.emit(EventTagsChanged, tag)
	return nil
}

// Tags returns a copy of the tag registry in insertion order.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tags)
}

// registerTags folds task tags into the registry. Caller holds s.mu.
func (s *Store) registerTags(tags []string) {
	for _, tag := range tags {
		if tag != "" && !slices.Contains(s.tags, tag) {
			s.tags = append(s.tags, tag)
		}
	}
}
