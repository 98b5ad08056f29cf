package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tasks := []Task{
		{State: StateCreated, Important: true, Urgent: true},
		{State: StateInProgress, Important: true, Urgent: true},
		{State: StateWIP},
		{State: StateDone, Important: true, Urgent: true},
		{State: StateDone},
	}

	assert.Equal(t, Overview{Total: 5, Completed: 2, InProgress: 1, WIP: 1, Critical: 2}, Summarize(tasks))
	assert.Equal(t, Overview{}, Summarize(nil))
}

func TestTagCountsAndAllTags(t *testing.T) {
	tasks := []Task{
		{Tags: []string{"work", "Errands"}},
		{Tags: []string{"errands", "ERRANDS"}},
		{Tags: []string{"personal"}},
	}

	assert.Equal(t, map[string]int{"work": 1, "errands": 2, "personal": 1}, TagCounts(tasks))
	assert.Equal(t, []string{"errands", "personal", "work"}, AllTags(tasks))
}
