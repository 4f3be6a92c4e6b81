package store

// EventKind names a store mutation observable by a presentation layer.
// The store emits events instead of performing UI side effects itself.
type EventKind string

const (
	EventTaskAdded       EventKind = "task-added"
	EventTaskUpdated     EventKind = "task-updated"
	EventTaskMoved       EventKind = "task-moved"
	EventTaskCompleted   EventKind = "task-completed"
	EventTaskRestored    EventKind = "task-restored"
	EventTaskDeleted     EventKind = "task-deleted"
	EventTasksReordered  EventKind = "tasks-reordered"
	EventCategoryChanged EventKind = "category-changed"
	EventTagsChanged     EventKind = "tags-changed"
	EventReplaced        EventKind = "replaced"
)

// Event describes one completed mutation.
type Event struct {
	Kind EventKind
	// ID is the affected task or category id, when one applies.
	ID string
}

// EventFunc receives events after each successful mutation. It runs
// synchronously inside the mutation; keep it fast.
type EventFunc func(Event)
