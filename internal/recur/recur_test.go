package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godo/internal/model"
	"godo/internal/store"
)

func rule(unit model.RecurrenceUnit, interval int) *model.RecurrenceRule {
	return &model.RecurrenceRule{Enabled: true, Unit: unit, Interval: interval}
}

func TestNext(t *testing.T) {
	from := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	next, ok := Next(rule(model.RecurDaily, 1), from)
	require.True(t, ok)
	assert.Equal(t, from.AddDate(0, 0, 1), next)

	next, ok = Next(rule(model.RecurWeekly, 2), from)
	require.True(t, ok)
	assert.Equal(t, from.AddDate(0, 0, 14), next)

	next, ok = Next(rule(model.RecurMonthly, 1), from)
	require.True(t, ok)
	assert.Equal(t, from.AddDate(0, 1, 0), next)
}

func TestNext_DisabledRule(t *testing.T) {
	from := time.Now()

	_, ok := Next(nil, from)
	assert.False(t, ok)

	r := rule(model.RecurDaily, 1)
	r.Enabled = false
	_, ok = Next(r, from)
	assert.False(t, ok)
}

func TestNext_EndDateCutoff(t *testing.T) {
	from := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	end := from.AddDate(0, 0, 5)

	r := rule(model.RecurWeekly, 1)
	r.EndDate = &end

	_, ok := Next(r, from)
	assert.False(t, ok)

	// An occurrence landing exactly on the end date still counts.
	endOnNext := from.AddDate(0, 0, 7)
	r.EndDate = &endOnNext
	next, ok := Next(r, from)
	require.True(t, ok)
	assert.Equal(t, endOnNext, next)
}

func TestExpand_CreatesFollowUpInInbox(t *testing.T) {
	s := store.New()
	due := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	task := model.NewTask("take out recycling")
	task.Due = &due
	task.Tags = []string{"#home"}
	task.Recurrence = rule(model.RecurWeekly, 1)
	added, err := s.Add(task)
	require.NoError(t, err)
	_, err = s.Complete(added.ID)
	require.NoError(t, err)

	completed, err := s.Get(added.ID)
	require.NoError(t, err)

	next, ok, err := Expand(s, completed)
	require.NoError(t, err)
	require.True(t, ok)

	assert.NotEqual(t, added.ID, next.ID)
	assert.Equal(t, model.StatusInbox, next.Status)
	assert.Equal(t, "take out recycling", next.Title)
	assert.Equal(t, []string{"#home"}, next.Tags)
	require.NotNil(t, next.Due)
	assert.Equal(t, due.AddDate(0, 0, 7), *next.Due)
	assert.Equal(t, model.Status(""), next.OriginalStatus)
	assert.Nil(t, next.NotificationTime)

	// The completed original stays in done.
	assert.Len(t, s.Bucket(model.StatusDone), 1)
	assert.Len(t, s.Bucket(model.StatusInbox), 1)
}

func TestExpand_NonRecurringTaskIgnored(t *testing.T) {
	s := store.New()
	task := model.NewTask("one and done")
	added, err := s.Add(task)
	require.NoError(t, err)
	_, err = s.Complete(added.ID)
	require.NoError(t, err)

	completed, err := s.Get(added.ID)
	require.NoError(t, err)

	_, ok, err := Expand(s, completed)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestExpand_OpenTaskIgnored(t *testing.T) {
	s := store.New()
	due := time.Now()

	task := model.NewTask("still open")
	task.Due = &due
	task.Recurrence = rule(model.RecurDaily, 1)
	added, err := s.Add(task)
	require.NoError(t, err)

	got, err := s.Get(added.ID)
	require.NoError(t, err)

	_, ok, err := Expand(s, got)
	require.NoError(t, err)
	assert.False(t, ok)
}
