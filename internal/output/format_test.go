package output_test

import (
	"bytes"
	"testing"
	"time"

	"godo/internal/model"
	"godo/internal/notify"
	"godo/internal/output"
	"godo/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	due := time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local)

	var buf bytes.Buffer

	plain := model.Task{Title: "Plain task", Priority: model.PriorityNormal}
	output.FormatTask(&buf, 1, plain)

	urgent := model.Task{Title: "Urgent task", Priority: model.PriorityHigh, Due: &due}
	output.FormatTask(&buf, 2, urgent)

	low := model.Task{Title: "Low key", Priority: model.PriorityLow, Tags: []string{"#home", "#errands"}}
	output.FormatTask(&buf, 3, low)

	untitled := model.Task{Title: "   ", Priority: model.PriorityNormal}
	output.FormatTask(&buf, 4, untitled)

	multiline := model.Task{Title: "line one\nline two", Priority: model.PriorityNormal}
	output.FormatTask(&buf, 5, multiline)

	testutil.GoldenString(t, "task_lines", buf.String())
}

func TestFormatSectionHeader(t *testing.T) {
	var buf bytes.Buffer
	output.FormatSectionHeader(&buf, "Inbox", 2)
	testutil.GoldenString(t, "section_header", buf.String())
}

func TestFormatCategory(t *testing.T) {
	var buf bytes.Buffer
	output.FormatCategory(&buf, model.Category{Name: "Work", Icon: model.IconBriefcase, Color: model.ColorOrange})
	testutil.GoldenString(t, "category_line", buf.String())
}

func TestFormatTrigger(t *testing.T) {
	var buf bytes.Buffer

	output.FormatTrigger(&buf, notify.Descriptor{
		ID:     "task_t1",
		Kind:   notify.KindReminder,
		FireAt: time.Date(2025, 3, 10, 8, 30, 0, 0, time.Local),
		Body:   "Water plants",
	})
	output.FormatTrigger(&buf, notify.Descriptor{
		ID:      notify.DailySummaryID,
		Kind:    notify.KindDailySummary,
		FireAt:  time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local),
		Repeats: true,
		Body:    "Look back on today's tasks and plan tomorrow",
	})

	testutil.GoldenString(t, "trigger_lines", buf.String())
}
