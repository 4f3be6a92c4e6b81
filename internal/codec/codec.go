// Package codec serializes store state to and from the portable document
// format. It depends on the entity model only.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"godo/internal/model"
)

// Version is the document format version written on export.
const Version = "1.0.0"

// Document is the portable snapshot of the whole store. Metadata and each
// record's customFields are open extension maps carried through untouched,
// so documents written by richer producers survive a round trip.
type Document struct {
	Version      string                     `json:"version"`
	LastModified time.Time                  `json:"lastModified"`
	Tasks        []TaskRecord               `json:"tasks"`
	Categories   []CategoryRecord           `json:"categories"`
	Settings     map[string]string          `json:"settings"`
	Metadata     map[string]json.RawMessage `json:"metadata"`
}

// TaskRecord is the wire form of a task.
type TaskRecord struct {
	ID                  string                     `json:"id"`
	Title               string                     `json:"title"`
	Notes               string                     `json:"notes,omitempty"`
	Due                 *time.Time                 `json:"due,omitempty"`
	CreatedAt           time.Time                  `json:"createdAt"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
	Status              string                     `json:"status"`
	Priority            string                     `json:"priority"`
	CategoryID          string                     `json:"categoryId,omitempty"`
	Tags                []string                   `json:"tags"`
	SortOrder           int                        `json:"sortOrder"`
	NotificationEnabled bool                       `json:"notificationEnabled"`
	NotificationTime    *time.Time                 `json:"notificationTime,omitempty"`
	Recurrence          *RecurrenceRecord          `json:"recurrence,omitempty"`
	OriginalStatus      string                     `json:"originalStatus,omitempty"`
	CustomFields        map[string]json.RawMessage `json:"customFields,omitempty"`
}

// RecurrenceRecord is the wire form of a recurrence rule.
type RecurrenceRecord struct {
	Enabled  bool       `json:"enabled"`
	Unit     string     `json:"unit"`
	Interval int        `json:"interval"`
	EndDate  *time.Time `json:"endDate,omitempty"`
}

// CategoryRecord is the wire form of a category.
type CategoryRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// metadataTagsKey is where the tag registry lives inside the open metadata
// map; the format's fixed fields predate store-owned tags.
const metadataTagsKey = "tags"

// Export snapshots tasks, categories, tags and settings into a document.
// metadata carries foreign document metadata from a prior import; its keys
// are written back verbatim, with the tag registry layered on top.
func Export(tasks []model.Task, categories []model.Category, tags []string, settings map[string]string, metadata map[string]json.RawMessage, now time.Time) Document {
	doc := Document{
		Version:      Version,
		LastModified: now,
		Tasks:        make([]TaskRecord, 0, len(tasks)),
		Categories:   make([]CategoryRecord, 0, len(categories)),
		Settings:     settings,
		Metadata:     make(map[string]json.RawMessage, len(metadata)+1),
	}
	for k, v := range metadata {
		if k != metadataTagsKey {
			doc.Metadata[k] = v
		}
	}
	if doc.Settings == nil {
		doc.Settings = map[string]string{}
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, encodeTask(t))
	}
	for _, c := range categories {
		doc.Categories = append(doc.Categories, CategoryRecord{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      string(c.Icon),
			Color:     string(c.Color),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	if len(tags) > 0 {
		if raw, err := json.Marshal(tags); err == nil {
			doc.Metadata[metadataTagsKey] = raw
		}
	}
	return doc
}

func encodeTask(t model.Task) TaskRecord {
	r := TaskRecord{
		ID:                  t.ID,
		Title:               t.Title,
		Notes:               t.Notes,
		Due:                 t.Due,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
		Status:              string(t.Status),
		Priority:            string(t.Priority),
		CategoryID:          t.CategoryID,
		Tags:                t.Tags,
		SortOrder:           t.SortOrder,
		NotificationEnabled: t.NotificationEnabled,
		NotificationTime:    t.NotificationTime,
		OriginalStatus:      string(t.OriginalStatus),
		CustomFields:        t.CustomFields,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if t.Recurrence != nil {
		r.Recurrence = &RecurrenceRecord{
			Enabled:  t.Recurrence.Enabled,
			Unit:     string(t.Recurrence.Unit),
			Interval: t.Recurrence.Interval,
			EndDate:  t.Recurrence.EndDate,
		}
	}
	return r
}

// Marshal renders a document as indented JSON.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ImportError marks a document that could not be parsed at all. Per-record
// problems inside a well-formed document are skipped, not fatal.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string { return fmt.Sprintf("import: %v", e.Err) }
func (e *ImportError) Unwrap() error { return e.Err }

// Unmarshal parses a document. Malformed JSON fails the whole import.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, &ImportError{Err: err}
	}
	return doc, nil
}

// Decoded is the result of decoding a document back into model values.
type Decoded struct {
	Tasks      []model.Task
	Categories []model.Category
	Tags       []string
	// Metadata holds the document's foreign metadata keys (everything but
	// the tag registry), preserved for the next export.
	Metadata map[string]json.RawMessage
	// Skipped counts records dropped for unrecognized enum values.
	Skipped int
}

// Decode converts document records to model values. Records carrying an
// unknown status, priority, icon or color are dropped and counted rather
// than failing the import.
func Decode(doc Document) Decoded {
	var out Decoded
	for _, r := range doc.Tasks {
		t, err := decodeTask(r)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Tasks = append(out.Tasks, t)
	}
	for _, r := range doc.Categories {
		icon, err := model.ParseCategoryIcon(r.Icon)
		if err != nil {
			out.Skipped++
			continue
		}
		color, err := model.ParseCategoryColor(r.Color)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Categories = append(out.Categories, model.Category{
			ID:        r.ID,
			Name:      r.Name,
			Icon:      icon,
			Color:     color,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	if raw, ok := doc.Metadata[metadataTagsKey]; ok {
		var tags []string
		if err := json.Unmarshal(raw, &tags); err == nil {
			out.Tags = tags
		}
	}
	for k, v := range doc.Metadata {
		if k == metadataTagsKey {
			continue
		}
		if out.Metadata == nil {
			out.Metadata = map[string]json.RawMessage{}
		}
		out.Metadata[k] = v
	}
	return out
}

func decodeTask(r TaskRecord) (model.Task, error) {
	status, err := model.ParseStatus(r.Status)
	if err != nil {
		return model.Task{}, err
	}
	priority, err := model.ParsePriority(r.Priority)
	if err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:                  r.ID,
		Title:               r.Title,
		Notes:               r.Notes,
		Due:                 r.Due,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
		Status:              status,
		Priority:            priority,
		CategoryID:          r.CategoryID,
		Tags:                r.Tags,
		SortOrder:           r.SortOrder,
		NotificationEnabled: r.NotificationEnabled,
		NotificationTime:    r.NotificationTime,
		CustomFields:        r.CustomFields,
	}
	if r.OriginalStatus != "" {
		if os, err := model.ParseStatus(r.OriginalStatus); err == nil {
			t.OriginalStatus = os
		}
	}
	if r.Recurrence != nil {
		unit, err := model.ParseRecurrenceUnit(r.Recurrence.Unit)
		if err != nil && r.Recurrence.Enabled {
			return model.Task{}, err
		}
		t.Recurrence = &model.RecurrenceRule{
			Enabled:  r.Recurrence.Enabled,
			Unit:     unit,
			Interval: r.Recurrence.Interval,
			EndDate:  r.Recurrence.EndDate,
		}
	}
	return t, nil
}
