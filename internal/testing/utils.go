// Package testing provides fixtures and helpers shared by the engine,
// storage, and API tests.
package testing

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallerykit/gallery-engine/model"
)

// TestDirRegistry tracks test directories for cleanup
type TestDirRegistry struct {
	mu   sync.Mutex
	dirs []string
}

var globalTestDirRegistry = &TestDirRegistry{}

// RegisterTestDir registers a test directory for cleanup
func (r *TestDirRegistry) RegisterTestDir(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs = append(r.dirs, dir)
}

// CleanupAll removes all registered test directories
func (r *TestDirRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dir := range r.dirs {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("Warning: Failed to remove test directory %s: %v\n", dir, err)
		}
	}
	r.dirs = nil
}

// CreateTestDataDir creates a unique data directory for file store tests
// and registers it for cleanup.
func CreateTestDataDir(t *testing.T) string {
	testDir := fmt.Sprintf("./test_data_%d", time.Now().UnixNano())
	globalTestDirRegistry.RegisterTestDir(testDir)

	require.NoError(t, os.MkdirAll(testDir, 0755), "Failed to create test data directory")

	t.Cleanup(func() {
		_ = os.RemoveAll(testDir)
	})

	return testDir
}

// CleanupTestDirs should be called in TestMain to clean up all test directories
func CleanupTestDirs() {
	globalTestDirRegistry.CleanupAll()
}

// Media builds a media item with the given position, type, and tags.
// The ID is derived from the position so orderings stay readable in failures.
func Media(position int, mediaType string, tags ...string) model.MediaItem {
	return model.MediaItem{
		ID:       fmt.Sprintf("media_%d", position),
		Src:      fmt.Sprintf("https://cdn.example.com/media_%d.jpg", position),
		Alt:      fmt.Sprintf("Product media %d", position),
		Type:     mediaType,
		Position: position,
		Tags:     tags,
	}
}

// Gallery builds a plain image gallery of the given size with no tags.
func Gallery(size int) []model.MediaItem {
	media := make([]model.MediaItem, size)
	for i := range media {
		media[i] = Media(i+1, model.MediaTypeImage)
	}
	return media
}

// Leaf builds a single-condition group.
func Leaf(field, operator string, value interface{}) model.ConditionGroup {
	return model.ConditionGroup{
		Condition: &model.Condition{Field: field, Operator: operator, Value: value},
	}
}

// AllOf builds an AND group over the given children.
func AllOf(children ...model.ConditionGroup) model.ConditionGroup {
	return model.ConditionGroup{Operator: model.GroupOperatorAnd, Conditions: children}
}

// AnyOf builds an OR group over the given children.
func AnyOf(children ...model.ConditionGroup) model.ConditionGroup {
	return model.ConditionGroup{Operator: model.GroupOperatorOr, Conditions: children}
}

// Not builds a NOT group over a single child.
func Not(child model.ConditionGroup) model.ConditionGroup {
	return model.ConditionGroup{Operator: model.GroupOperatorNot, Conditions: []model.ConditionGroup{child}}
}

// ActiveRule builds an active rule that always matches.
func ActiveRule(id string, priority int, actions ...model.Action) model.Rule {
	return model.Rule{
		ID:         id,
		Name:       "Test rule " + id,
		Status:     model.RuleStatusActive,
		Priority:   priority,
		Conditions: model.ConditionGroup{Operator: model.GroupOperatorAnd},
		Actions:    actions,
	}
}

// MobileContext builds an evaluation context for a mobile visitor over the
// given gallery.
func MobileContext(media []model.MediaItem) *model.EvaluationContext {
	return &model.EvaluationContext{
		Device: model.DeviceMobile,
		Media:  media,
		Time:   model.TimeContext{Now: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)},
	}
}

// DesktopContext builds an evaluation context for a desktop visitor over the
// given gallery.
func DesktopContext(media []model.MediaItem) *model.EvaluationContext {
	ctx := MobileContext(media)
	ctx.Device = model.DeviceDesktop
	return ctx
}

// VisibleIDs returns the IDs of visible items in order.
func VisibleIDs(media []model.ProcessedMediaItem) []string {
	var ids []string
	for _, item := range media {
		if item.Visible {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// AllIDs returns the IDs of all items in order, visible or not.
func AllIDs(media []model.ProcessedMediaItem) []string {
	ids := make([]string, len(media))
	for i, item := range media {
		ids[i] = item.ID
	}
	return ids
}

// AssertVisibleOrder verifies the visible items appear exactly in the
// expected order.
func AssertVisibleOrder(t *testing.T, media []model.ProcessedMediaItem, expected []string) {
	t.Helper()
	assert.Equal(t, expected, VisibleIDs(media), "Visible media order should match")
}

// AssertGalleryIntact verifies no items were added or removed relative to
// the input gallery.
func AssertGalleryIntact(t *testing.T, input []model.MediaItem, output []model.ProcessedMediaItem) {
	t.Helper()
	require.Len(t, output, len(input), "Gallery length should be unchanged")

	seen := make(map[string]bool, len(output))
	for _, item := range output {
		seen[item.ID] = true
	}
	for _, item := range input {
		assert.True(t, seen[item.ID], "Item %s should survive evaluation", item.ID)
	}
}
