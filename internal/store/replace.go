package store

import (
	"sort"

	"godo/internal/model"
)

// Replace swaps in a whole new set of collections, as after an import or an
// external document refresh. Buckets are rebuilt from each task's status,
// ordered by sort order, then renumbered contiguously. Notifications are
// re-derived for every task.
func (s *Store) Replace(tasks []model.Task, categories []model.Category, tags []string) {
	s.mu.Lock()

	old := s.tasks
	s.tasks = make(map[string]model.Task, len(tasks))
	s.order = map[model.Status][]string{
		model.StatusInbox: {},
		model.StatusToday: {},
		model.StatusDone:  {},
	}

	byBucket := map[model.Status][]model.Task{}
	for _, t := range tasks {
		st := t.Status
		if _, ok := s.order[st]; !ok {
			st = model.StatusInbox
			t.Status = st
		}
		byBucket[st] = append(byBucket[st], t)
	}
	for _, bucket := range model.Statuses {
		list := byBucket[bucket]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].SortOrder < list[j].SortOrder
		})
		for i, t := range list {
			t.SortOrder = i
			s.tasks[t.ID] = t
			s.order[bucket] = append(s.order[bucket], t.ID)
		}
	}

	s.categories = append([]model.Category(nil), categories...)
	s.tags = append([]string(nil), tags...)
	for _, t := range tasks {
		s.registerTags(t.Tags)
	}
	s.mu.Unlock()

	// Drop triggers for tasks that vanished, refresh the rest.
	for id := range old {
		if _, ok := s.tasks[id]; !ok {
			s.cancelFor(id)
		}
	}
	for _, t := range s.Snapshot() {
		s.cancelFor(t.ID)
		if t.NotificationEnabled {
			s.scheduleFor(t)
		}
	}

	s.emit(EventReplaced, "")
}
