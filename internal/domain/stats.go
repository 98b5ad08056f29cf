package domain

import "sort"

// Overview summarizes the task list for the status bar
type Overview struct {
	Total      int
	Completed  int
	InProgress int
	WIP        int
	Critical   int // important, urgent and not done
}

// Summarize counts tasks per headline bucket
func Summarize(tasks []Task) Overview {
	var o Overview
	o.Total = len(tasks)
	for _, t := range tasks {
		switch t.State {
		case StateDone:
			o.Completed++
		case StateInProgress:
			o.InProgress++
		case StateWIP:
			o.WIP++
		}
		if t.Important && t.Urgent && !t.IsDone() {
			o.Critical++
		}
	}
	return o
}

// AllTags returns the distinct lower-cased tags in use, sorted
func AllTags(tasks []Task) []string {
	counts := TagCounts(tasks)
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagCounts returns how many tasks carry each lower-cased tag
func TagCounts(tasks []Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		seen := make(map[string]bool, len(t.Tags))
		for _, tag := range t.Tags {
			name := NormalizeTag(tag)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}
	return counts
}
