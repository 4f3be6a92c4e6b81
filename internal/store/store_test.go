package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godo/internal/model"
)

// recordingScheduler captures the notification side effects the store asks for.
type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []string
	cancelled []string
}

func (r *recordingScheduler) ScheduleFor(t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, t.ID)
	return nil
}

func (r *recordingScheduler) CancelFor(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, taskID)
	return nil
}

func testClock() func() time.Time {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	return func() time.Time { return now }
}

func mustAdd(t *testing.T, s *Store, title string) model.Task {
	t.Helper()
	task, err := s.Add(model.NewTask(title))
	require.NoError(t, err)
	return task
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestAdd_LandsInInboxWithContiguousOrder(t *testing.T) {
	s := New(WithClock(testClock()))

	a := mustAdd(t, s, "first")
	b := mustAdd(t, s, "second")

	assert.Equal(t, model.StatusInbox, a.Status)
	assert.Equal(t, 0, a.SortOrder)
	assert.Equal(t, 1, b.SortOrder)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAdd_RejectsBlankTitle(t *testing.T) {
	s := New(WithClock(testClock()))

	_, err := s.Add(model.NewTask("   "))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdd_RejectsInvalidRecurrence(t *testing.T) {
	s := New(WithClock(testClock()))

	task := model.NewTask("broken repeat")
	task.Recurrence = &model.RecurrenceRule{Enabled: true, Unit: model.RecurDaily, Interval: 0}
	_, err := s.Add(task)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLifecycle_InboxTodayDone(t *testing.T) {
	s := New(WithClock(testClock()))
	task := mustAdd(t, s, "walk the dog")

	moved, err := s.MoveToToday(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusToday, moved.Status)
	assert.Empty(t, s.Bucket(model.StatusInbox))

	done, err := s.Complete(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, done.Status)
	assert.Equal(t, model.StatusToday, done.OriginalStatus)
	assert.Empty(t, s.Bucket(model.StatusToday))

	restored, err := s.Restore(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusToday, restored.Status)
	assert.Equal(t, model.Status(""), restored.OriginalStatus)
}

func TestRestore_DefaultsToInbox(t *testing.T) {
	s := New(WithClock(testClock()))
	task := mustAdd(t, s, "quick win")

	_, err := s.Complete(task.ID)
	require.NoError(t, err)

	restored, err := s.Restore(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInbox, restored.Status)
}

func TestBucketExclusivity(t *testing.T) {
	s := New(WithClock(testClock()))
	task := mustAdd(t, s, "exactly one home")

	_, err := s.MoveToToday(task.ID)
	require.NoError(t, err)
	_, err = s.Complete(task.ID)
	require.NoError(t, err)

	total := len(s.Bucket(model.StatusInbox)) + len(s.Bucket(model.StatusToday)) + len(s.Bucket(model.StatusDone))
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, s.Len())
}

func TestTransitions_Rejected(t *testing.T) {
	s := New(WithClock(testClock()))
	task := mustAdd(t, s, "rule follower")

	// Restore requires done.
	_, err := s.Restore(task.ID)
	assert.ErrorIs(t, err, ErrTransition)

	// Snooze requires today.
	_, err = s.Snooze(task.ID)
	assert.ErrorIs(t, err, ErrTransition)

	_, err = s.Complete(task.ID)
	require.NoError(t, err)

	// Done tasks cannot move to today or complete again.
	_, err = s.MoveToToday(task.ID)
	assert.ErrorIs(t, err, ErrTransition)
	_, err = s.Complete(task.ID)
	assert.ErrorIs(t, err, ErrTransition)
}

func TestNotFound(t *testing.T) {
	s := New(WithClock(testClock()))

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Complete("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("missing"), ErrNotFound)
}

func TestUpdate_PreservesLifecycleFields(t *testing.T) {
	s := New(WithClock(testClock()))
	task := mustAdd(t, s, "original title")
	_, err := s.MoveToToday(task.ID)
	require.NoError(t, err)

	edit, err := s.Get(task.ID)
	require.NoError(t, err)
	edit.Title = "edited title"
	edit.Status = model.StatusDone // ignored: status moves use transitions
	edit.Notes = "some notes"

	updated, err := s.Update(edit)
	require.NoError(t, err)
	assert.Equal(t, "edited title", updated.Title)
	assert.Equal(t, model.StatusToday, updated.Status)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
}

func TestUpdate_ReschedulesOnNotificationChange(t *testing.T) {
	rec := &recordingScheduler{}
	s := New(WithClock(testClock()), WithScheduler(rec))

	task := model.NewTask("remind me")
	task.NotificationEnabled = true
	added, err := s.Add(task)
	require.NoError(t, err)
	require.Equal(t, []string{added.ID}, rec.scheduled)

	// A title-only edit leaves triggers alone.
	edit := added
	edit.Title = "remind me again"
	_, err = s.Update(edit)
	require.NoError(t, err)
	assert.Empty(t, rec.cancelled)

	// A due-date change re-derives them, cancel before schedule.
	due := time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)
	edit.Due = &due
	_, err = s.Update(edit)
	require.NoError(t, err)
	assert.Equal(t, []string{added.ID}, rec.cancelled)
	assert.Equal(t, []string{added.ID, added.ID}, rec.scheduled)
}

func TestDelete_CancelsNotifications(t *testing.T) {
	rec := &recordingScheduler{}
	s := New(WithClock(testClock()), WithScheduler(rec))
	task := mustAdd(t, s, "short lived")

	require.NoError(t, s.Delete(task.ID))
	assert.Equal(t, []string{task.ID}, rec.cancelled)
	assert.Equal(t, 0, s.Len())
}

func TestSnooze_PushesDueOneDay(t *testing.T) {
	s := New(WithClock(testClock()))
	task := mustAdd(t, s, "not right now")
	_, err := s.MoveToToday(task.ID)
	require.NoError(t, err)

	snoozed, err := s.Snooze(task.ID)
	require.NoError(t, err)
	require.NotNil(t, snoozed.Due)
	assert.Equal(t, time.Date(2025, 3, 11, 12, 0, 0, 0, time.Local), *snoozed.Due)
}

func TestReorder_MoveToFront(t *testing.T) {
	s := New(WithClock(testClock()))
	mustAdd(t, s, "A")
	mustAdd(t, s, "B")
	mustAdd(t, s, "C")

	// Move C to the front.
	require.NoError(t, s.Reorder(model.StatusInbox, []int{2}, 0))

	got := s.Bucket(model.StatusInbox)
	assert.Equal(t, []string{"C", "A", "B"}, titles(got))
	for i, task := range got {
		assert.Equal(t, i, task.SortOrder)
	}
}

func TestReorder_MoveDownward(t *testing.T) {
	s := New(WithClock(testClock()))
	mustAdd(t, s, "A")
	mustAdd(t, s, "B")
	mustAdd(t, s, "C")

	// Moving A past the end lands it last.
	require.NoError(t, s.Reorder(model.StatusInbox, []int{0}, 3))
	assert.Equal(t, []string{"B", "C", "A"}, titles(s.Bucket(model.StatusInbox)))
}

func TestReorder_OtherBucketsUntouched(t *testing.T) {
	s := New(WithClock(testClock()))
	mustAdd(t, s, "A")
	mustAdd(t, s, "B")
	today := mustAdd(t, s, "T")
	_, err := s.MoveToToday(today.ID)
	require.NoError(t, err)

	require.NoError(t, s.Reorder(model.StatusInbox, []int{1}, 0))
	assert.Equal(t, []string{"T"}, titles(s.Bucket(model.StatusToday)))
}

func TestReorder_DuplicateIndicesMoveOnce(t *testing.T) {
	s := New(WithClock(testClock()))
	mustAdd(t, s, "A")
	mustAdd(t, s, "B")
	mustAdd(t, s, "C")

	require.NoError(t, s.Reorder(model.StatusInbox, []int{1, 1}, 0))

	got := s.Bucket(model.StatusInbox)
	assert.Equal(t, []string{"B", "A", "C"}, titles(got))
	for i, task := range got {
		assert.Equal(t, i, task.SortOrder)
	}
}

func TestReorder_IndexOutOfRange(t *testing.T) {
	s := New(WithClock(testClock()))
	mustAdd(t, s, "only one")

	assert.ErrorIs(t, s.Reorder(model.StatusInbox, []int{5}, 0), ErrValidation)
	assert.ErrorIs(t, s.Reorder(model.StatusInbox, []int{0}, 9), ErrValidation)
}

func TestSnapshot_BucketOrder(t *testing.T) {
	s := New(WithClock(testClock()))
	a := mustAdd(t, s, "inbox task")
	b := mustAdd(t, s, "today task")
	c := mustAdd(t, s, "done task")
	_, err := s.MoveToToday(b.ID)
	require.NoError(t, err)
	_, err = s.Complete(c.ID)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, a.ID, snap[0].ID)
	assert.Equal(t, b.ID, snap[1].ID)
	assert.Equal(t, c.ID, snap[2].ID)
}

func TestSnapshot_ReturnsCopies(t *testing.T) {
	s := New(WithClock(testClock()))
	task := model.NewTask("isolated")
	task.Tags = []string{"#a"}
	added, err := s.Add(task)
	require.NoError(t, err)

	snap := s.Snapshot()
	snap[0].Tags[0] = "#mutated"

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"#a"}, got.Tags)
}

func TestCategories_DeleteClearsAssignments(t *testing.T) {
	s := New(WithClock(testClock()))
	cat, err := s.AddCategory(model.NewCategory("Work"))
	require.NoError(t, err)

	task := model.NewTask("filed under work")
	task.CategoryID = cat.ID
	added, err := s.Add(task)
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(cat.ID))

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryID)
	assert.Equal(t, 1, s.Len())
}

func TestCategories_ByName(t *testing.T) {
	s := New(WithClock(testClock()))
	_, err := s.AddCategory(model.NewCategory("Home"))
	require.NoError(t, err)

	cat, err := s.CategoryByName("Home")
	require.NoError(t, err)
	assert.Equal(t, "Home", cat.Name)

	_, err = s.CategoryByName("Nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTags_RegisteredOnAdd(t *testing.T) {
	s := New(WithClock(testClock()))
	task := model.NewTask("tagged")
	task.Tags = []string{"#home", "#errands"}
	_, err := s.Add(task)
	require.NoError(t, err)

	assert.Equal(t, []string{"#home", "#errands"}, s.Tags())
}

func TestTags_RemoveFiltersTasks(t *testing.T) {
	s := New(WithClock(testClock()))
	task := model.NewTask("tagged")
	task.Tags = []string{"#home", "#errands"}
	added, err := s.Add(task)
	require.NoError(t, err)

	require.NoError(t, s.RemoveTag("home"))

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"#errands"}, got.Tags)
	assert.Equal(t, []string{"#errands"}, s.Tags())
}

func TestTags_RenameOntoExistingTagMerges(t *testing.T) {
	s := New(WithClock(testClock()))
	task := model.NewTask("tagged")
	task.Tags = []string{"#a", "#b"}
	added, err := s.Add(task)
	require.NoError(t, err)

	got, err := s.RenameTag("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "#b", got)

	// One registry entry, one tag on the task.
	assert.Equal(t, []string{"#b"}, s.Tags())
	renamed, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"#b"}, renamed.Tags)
}

func TestReplace_RebuildsBuckets(t *testing.T) {
	s := New(WithClock(testClock()))
	mustAdd(t, s, "stale")

	incoming := []model.Task{
		{ID: "x", Title: "second", Status: model.StatusInbox, SortOrder: 5},
		{ID: "y", Title: "first", Status: model.StatusInbox, SortOrder: 1},
		{ID: "z", Title: "done", Status: model.StatusDone, SortOrder: 0},
	}
	s.Replace(incoming, nil, []string{"#kept"})

	inbox := s.Bucket(model.StatusInbox)
	require.Len(t, inbox, 2)
	// Ordered by incoming sort order, then renumbered contiguously.
	assert.Equal(t, []string{"first", "second"}, titles(inbox))
	assert.Equal(t, 0, inbox[0].SortOrder)
	assert.Equal(t, 1, inbox[1].SortOrder)
	assert.Equal(t, []string{"#kept"}, s.Tags())
	assert.Equal(t, 3, s.Len())
}

func TestConcurrentMutations(t *testing.T) {
	s := New(WithClock(testClock()))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := s.Add(model.NewTask("race"))
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := s.MoveToToday(task.ID); err != nil {
				t.Error(err)
			}
			if _, err := s.Complete(task.ID); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 32, s.Len())
	assert.Len(t, s.Bucket(model.StatusDone), 32)
}
