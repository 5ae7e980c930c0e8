package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbs-dashboard/models"
)

func task(category string, assignee string, progress int, status models.TaskStatus) models.Task {
	t := models.Task{
		Category: category,
		Progress: progress,
		Status:   status,
	}
	if assignee != "" {
		t.Assignee = &assignee
	}
	return t
}

func TestComputeCategoryStatsEmpty(t *testing.T) {
	assert.Empty(t, ComputeCategoryStats(nil))
	assert.Empty(t, ComputeCategoryStats([]models.Task{}))
}

func TestComputeCategoryStats(t *testing.T) {
	tasks := []models.Task{
		task("A", "", 0, models.StatusWaiting),
		task("A", "", 100, models.StatusDone),
		task("B", "", 50, models.StatusInProgress),
	}

	got := ComputeCategoryStats(tasks)
	require.Len(t, got, 2)

	assert.Equal(t, CategoryStats{
		Category: "A", Total: 2, Completed: 1, InProgress: 0, Pending: 1, Progress: 50,
	}, got[0])
	assert.Equal(t, CategoryStats{
		Category: "B", Total: 1, Completed: 0, InProgress: 1, Pending: 0, Progress: 50,
	}, got[1])
}

func TestComputeCategoryStatsSingleTaskGroup(t *testing.T) {
	got := ComputeCategoryStats([]models.Task{task("only", "", 30, models.StatusInProgress)})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Total)
	assert.Equal(t, 30, got[0].Progress)
}

func TestCategoryStatsCountsPartitionTotal(t *testing.T) {
	tasks := []models.Task{
		task("A", "", 0, models.StatusWaiting),
		task("A", "", 13, models.StatusInProgress),
		task("A", "", 100, models.StatusDone),
		task("B", "", 99, models.StatusInProgress),
		task("B", "", 100, models.StatusDone),
		task("C", "", 0, models.StatusWaiting),
	}

	for _, s := range ComputeCategoryStats(tasks) {
		assert.Equal(t, s.Total, s.Completed+s.InProgress+s.Pending,
			"category %q counts must partition the total", s.Category)
	}
}

func TestClassificationIgnoresStatus(t *testing.T) {
	// A task marked done but left at progress 0 is still pending: the
	// grouping trusts the numeric progress field exclusively.
	tasks := []models.Task{
		task("A", "", 0, models.StatusDone),
		task("A", "", 100, models.StatusWaiting),
	}

	got := ComputeCategoryStats(tasks)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Pending)
	assert.Equal(t, 1, got[0].Completed)
	assert.Equal(t, 0, got[0].InProgress)
}

func TestProgressIsRoundedHalfUp(t *testing.T) {
	// mean of 49 and 50 is 49.5, which rounds up
	got := ComputeCategoryStats([]models.Task{
		task("A", "", 49, models.StatusInProgress),
		task("A", "", 50, models.StatusInProgress),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Progress)

	// mean of 0, 50, 100 is exactly 50
	got = ComputeCategoryStats([]models.Task{
		task("B", "", 0, models.StatusWaiting),
		task("B", "", 50, models.StatusInProgress),
		task("B", "", 100, models.StatusDone),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Progress)

	// mean of 33, 33, 34 truncates down
	got = ComputeCategoryStats([]models.Task{
		task("C", "", 33, models.StatusInProgress),
		task("C", "", 33, models.StatusInProgress),
		task("C", "", 34, models.StatusInProgress),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 33, got[0].Progress)
}

func TestComputeAssigneeStatsExcludesUnassigned(t *testing.T) {
	tasks := []models.Task{
		task("A", "kim", 100, models.StatusDone),
		task("B", "", 50, models.StatusInProgress), // no assignee
		task("C", "kim", 0, models.StatusWaiting),
	}

	got := ComputeAssigneeStats(tasks)
	require.Len(t, got, 1)
	assert.Equal(t, "kim", got[0].Assignee)
	assert.Equal(t, 2, got[0].Total)
	// the unassigned task's category must not leak into any categories set
	assert.Equal(t, []string{"A", "C"}, got[0].Categories)
}

func TestComputeAssigneeStatsCategoriesDeduped(t *testing.T) {
	tasks := []models.Task{
		task("A", "lee", 10, models.StatusInProgress),
		task("B", "lee", 20, models.StatusInProgress),
		task("A", "lee", 30, models.StatusInProgress),
	}

	got := ComputeAssigneeStats(tasks)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"A", "B"}, got[0].Categories)
	assert.Equal(t, 20, got[0].Progress)
}

func TestComputeAssigneeStatsGroupOrderAndCounts(t *testing.T) {
	tasks := []models.Task{
		task("A", "kim", 0, models.StatusWaiting),
		task("A", "lee", 100, models.StatusDone),
		task("B", "kim", 40, models.StatusInProgress),
	}

	got := ComputeAssigneeStats(tasks)
	require.Len(t, got, 2)
	assert.Equal(t, "kim", got[0].Assignee)
	assert.Equal(t, "lee", got[1].Assignee)

	for _, s := range got {
		assert.Equal(t, s.Total, s.Completed+s.InProgress+s.Pending,
			"assignee %q counts must partition the total", s.Assignee)
	}
}

func TestComputeOverview(t *testing.T) {
	tasks := []models.Task{
		task("A", "kim", 0, models.StatusWaiting),
		task("A", "kim", 100, models.StatusDone),
		task("B", "lee", 50, models.StatusIssue),
		task("B", "lee", 50, models.StatusBug),
		task("C", "", 0, models.StatusCancelled),
	}

	got := ComputeOverview(tasks)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 2, got.InProgress)
	assert.Equal(t, 2, got.Pending)
	assert.Equal(t, 1, got.Issues)
	assert.Equal(t, 1, got.Bugs)
	assert.Equal(t, 1, got.Cancelled)
	assert.Equal(t, 40, got.OverallProgress)
}

func TestComputeOverviewEmpty(t *testing.T) {
	got := ComputeOverview(nil)
	assert.Equal(t, Overview{}, got)
}
