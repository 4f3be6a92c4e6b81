// Package store owns the authoritative task, category and tag collections
// and enforces the task lifecycle invariants.
package store

import (
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"godo/internal/model"
)

// Scheduler is the notification side-effect boundary the store calls into.
// Failures never roll back the mutation that triggered them.
type Scheduler interface {
	ScheduleFor(t model.Task) error
	CancelFor(taskID string) error
}

// Store holds all tasks in a single collection keyed by id, with per-status
// ordered id lists as the bucket views. A task id appears in exactly one
// bucket list at any time; Task.Status mirrors that membership.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
	order map[model.Status][]string

	categories []model.Category
	tags       []string

	sched  Scheduler
	log    *slog.Logger
	now    func() time.Time
	events EventFunc
}

// Option configures a Store.
type Option func(*Store)

// WithScheduler attaches the notification scheduler side effect.
func WithScheduler(s Scheduler) Option {
	return func(st *Store) { st.sched = s }
}

// WithLogger sets the logger for non-fatal side-effect failures.
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) { st.log = l }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

// WithEvents registers the mutation event callback.
func WithEvents(fn EventFunc) Option {
	return func(st *Store) { st.events = fn }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	st := &Store{
		tasks: make(map[string]model.Task),
		order: map[model.Status][]string{
			model.StatusInbox: {},
			model.StatusToday: {},
			model.StatusDone:  {},
		},
		log: slog.Default(),
		now: time.Now,
	}
	for _, o := range opts {
		o(st)
	}
	return st
}

func (s *Store) emit(kind EventKind, id string) {
	if s.events != nil {
		s.events(Event{Kind: kind, ID: id})
	}
}

// scheduleFor runs the notification side effect without failing the caller.
func (s *Store) scheduleFor(t model.Task) {
	if s.sched == nil {
		return
	}
	if err := s.sched.ScheduleFor(t); err != nil {
		s.log.Warn("notification scheduling failed", "task", t.ID, "error", err)
	}
}

func (s *Store) cancelFor(taskID string) {
	if s.sched == nil {
		return
	}
	if err := s.sched.CancelFor(taskID); err != nil {
		s.log.Warn("notification cancel failed", "task", taskID, "error", err)
	}
}

func validateTask(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return validationf("title must not be empty")
	}
	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return validationf("%v", err)
		}
	}
	return nil
}

// Add inserts a task into the inbox. The task's sort order becomes the
// current inbox length. Notifications are (re)scheduled when enabled.
func (s *Store) Add(t model.Task) (model.Task, error) {
	if err := validateTask(t); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	now := s.now()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	t.Status = model.StatusInbox
	t.OriginalStatus = ""
	t.SortOrder = len(s.order[model.StatusInbox])
	t.Title = strings.TrimSpace(t.Title)

	s.tasks[t.ID] = t
	s.order[model.StatusInbox] = append(s.order[model.StatusInbox], t.ID)
	s.registerTags(t.Tags)
	s.mu.Unlock()

	if t.NotificationEnabled {
		s.scheduleFor(t)
	}
	s.emit(EventTaskAdded, t.ID)
	return t.Clone(), nil
}

// Update replaces a task's fields in place, preserving bucket membership.
// Status and OriginalStatus changes are ignored here; status moves go
// through the dedicated transition operations. Notifications are re-derived
// when due, notification time or the enabled flag changed.
func (s *Store) Update(t model.Task) (model.Task, error) {
	if err := validateTask(t); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	prev, ok := s.tasks[t.ID]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, notFoundf("task %s", t.ID)
	}

	t.Status = prev.Status
	t.OriginalStatus = prev.OriginalStatus
	t.CreatedAt = prev.CreatedAt
	t.SortOrder = prev.SortOrder
	t.UpdatedAt = s.now()
	t.Title = strings.TrimSpace(t.Title)

	s.tasks[t.ID] = t
	s.registerTags(t.Tags)
	s.mu.Unlock()

	if notificationFieldsChanged(prev, t) {
		// Cancel before scheduling so triggers never stack.
		s.cancelFor(t.ID)
		if t.NotificationEnabled {
			s.scheduleFor(t)
		}
	}
	s.emit(EventTaskUpdated, t.ID)
	return t.Clone(), nil
}

func notificationFieldsChanged(a, b model.Task) bool {
	if a.NotificationEnabled != b.NotificationEnabled {
		return true
	}
	if !equalTimePtr(a.Due, b.Due) {
		return true
	}
	return !equalTimePtr(a.NotificationTime, b.NotificationTime)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// MoveToToday moves an inbox task into the today bucket.
func (s *Store) MoveToToday(id string) (model.Task, error) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, notFoundf("task %s", id)
	}
	if t.Status != model.StatusInbox {
		s.mu.Unlock()
		return model.Task{}, transitionf(t.Status, "move to today")
	}

	s.removeFromBucket(id, model.StatusInbox)
	t.Status = model.StatusToday
	t.SortOrder = len(s.order[model.StatusToday])
	t.UpdatedAt = s.now()
	s.tasks[id] = t
	s.order[model.StatusToday] = append(s.order[model.StatusToday], id)
	s.mu.Unlock()

	s.emit(EventTaskMoved, id)
	return t.Clone(), nil
}

// Complete moves an inbox or today task into the done bucket, remembering
// the source bucket for restore.
func (s *Store) Complete(id string) (model.Task, error) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, notFoundf("task %s", id)
	}
	if t.Status != model.StatusInbox && t.Status != model.StatusToday {
		s.mu.Unlock()
		return model.Task{}, transitionf(t.Status, "complete")
	}

	s.removeFromBucket(id, t.Status)
	t.OriginalStatus = t.Status
	t.Status = model.StatusDone
	t.SortOrder = len(s.order[model.StatusDone])
	t.UpdatedAt = s.now()
	s.tasks[id] = t
	s.order[model.StatusDone] = append(s.order[model.StatusDone], id)
	s.mu.Unlock()

	s.emit(EventTaskCompleted, id)
	return t.Clone(), nil
}

// Restore sends a done task back to the bucket it was completed from,
// defaulting to the inbox when the source is unknown.
func (s *Store) Restore(id string) (model.Task, error) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, notFoundf("task %s", id)
	}
	if t.Status != model.StatusDone {
		s.mu.Unlock()
		return model.Task{}, transitionf(t.Status, "restore")
	}

	dest := t.OriginalStatus
	if dest != model.StatusInbox && dest != model.StatusToday {
		dest = model.StatusInbox
	}
	s.removeFromBucket(id, model.StatusDone)
	t.Status = dest
	t.OriginalStatus = ""
	t.SortOrder = len(s.order[dest])
	t.UpdatedAt = s.now()
	s.tasks[id] = t
	s.order[dest] = append(s.order[dest], id)
	s.mu.Unlock()

	s.emit(EventTaskRestored, id)
	return t.Clone(), nil
}

// Delete removes a task permanently and cancels its pending notifications.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return notFoundf("task %s", id)
	}
	s.removeFromBucket(id, t.Status)
	delete(s.tasks, id)
	s.mu.Unlock()

	s.cancelFor(id)
	s.emit(EventTaskDeleted, id)
	return nil
}

// Snooze pushes a today task's due date to 24 hours from now.
func (s *Store) Snooze(id string) (model.Task, error) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, notFoundf("task %s", id)
	}
	if t.Status != model.StatusToday {
		s.mu.Unlock()
		return model.Task{}, transitionf(t.Status, "snooze")
	}

	prev := t
	now := s.now()
	due := now.AddDate(0, 0, 1)
	t.Due = &due
	t.UpdatedAt = now
	s.tasks[id] = t
	s.mu.Unlock()

	if notificationFieldsChanged(prev, t) {
		s.cancelFor(id)
		if t.NotificationEnabled {
			s.scheduleFor(t)
		}
	}
	s.emit(EventTaskUpdated, id)
	return t.Clone(), nil
}

// Reorder moves the tasks at fromIndices within one bucket so the first
// lands at toIndex, then reassigns contiguous 0-based sort orders across
// the bucket. Other buckets are untouched.
func (s *Store) Reorder(bucket model.Status, fromIndices []int, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok := s.order[bucket]
	if !ok {
		return validationf("unknown bucket %q", bucket)
	}
	if toIndex < 0 || toIndex > len(ids) {
		return validationf("destination index %d out of range", toIndex)
	}
	for _, i := range fromIndices {
		if i < 0 || i >= len(ids) {
			return validationf("source index %d out of range", i)
		}
	}

	moving := make([]string, 0, len(fromIndices))
	pick := make(map[int]bool, len(fromIndices))
	sorted := slices.Clone(fromIndices)
	sort.Ints(sorted)
	for _, i := range sorted {
		// A repeated source index must not move the same id twice.
		if pick[i] {
			continue
		}
		pick[i] = true
		moving = append(moving, ids[i])
	}

	rest := make([]string, 0, len(ids)-len(moving))
	// The destination index counts positions in the list without the moved
	// elements, matching collection-view move semantics.
	dest := toIndex
	for i, id := range ids {
		if pick[i] {
			if i < toIndex {
				dest--
			}
			continue
		}
		rest = append(rest, id)
	}
	if dest < 0 {
		dest = 0
	}
	if dest > len(rest) {
		dest = len(rest)
	}

	next := make([]string, 0, len(ids))
	next = append(next, rest[:dest]...)
	next = append(next, moving...)
	next = append(next, rest[dest:]...)
	s.order[bucket] = next

	now := s.now()
	for i, id := range next {
		t := s.tasks[id]
		if t.SortOrder != i {
			t.SortOrder = i
			t.UpdatedAt = now
			s.tasks[id] = t
		}
	}

	s.emit(EventTasksReordered, string(bucket))
	return nil
}

func (s *Store) removeFromBucket(id string, bucket model.Status) {
	ids := s.order[bucket]
	if i := slices.Index(ids, id); i >= 0 {
		s.order[bucket] = slices.Delete(ids, i, i+1)
	}
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, notFoundf("task %s", id)
	}
	return t.Clone(), nil
}

// Bucket returns the tasks of one bucket in manual order.
func (s *Store) Bucket(bucket model.Status) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.order[bucket]
	out := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

// Snapshot returns a copy of every task, inbox then today then done, each
// bucket in manual order. Query engine views read this snapshot.
func (s *Store) Snapshot() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, bucket := range model.Statuses {
		for _, id := range s.order[bucket] {
			out = append(out, s.tasks[id].Clone())
		}
	}
	return out
}

// Len returns the total number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
