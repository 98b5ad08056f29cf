package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxSuggestions caps the autocomplete vocabulary
const MaxSuggestions = 10

// Relevance scores how well a task matches query. The score only orders
// results, it never decides membership.
func Relevance(t Task, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	score := 0
	title := strings.ToLower(t.Title)
	if strings.Contains(title, q) {
		score += 10
		if title == q {
			score += 5
		}
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		score += 5
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += 3
		}
	}
	return score
}

// RankByRelevance returns a copy of tasks ordered by descending relevance.
// Equal scores keep their input order.
func RankByRelevance(tasks []Task, query string) []Task {
	result := make([]Task, len(tasks))
	copy(result, tasks)
	if strings.TrimSpace(query) == "" {
		return result
	}

	scores := make(map[string]int, len(result))
	for _, t := range result {
		scores[t.ID] = Relevance(t, query)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return scores[result[i].ID] > scores[result[j].ID]
	})
	return result
}

// Suggestions collects, task by task, title words longer than two characters
// and the task's tags, lower-cased and deduplicated in first-seen order,
// capped at MaxSuggestions.
func Suggestions(tasks []Task) []string {
	seen := make(map[string]bool)
	var words []string
	add := func(w string) {
		if w == "" || seen[w] {
			return
		}
		seen[w] = true
		words = append(words, w)
	}

	for _, t := range tasks {
		for _, w := range strings.Fields(strings.ToLower(t.Title)) {
			if utf8.RuneCountInString(w) > 2 {
				add(w)
			}
		}
		for _, tag := range t.Tags {
			add(strings.ToLower(tag))
		}
	}

	if len(words) > MaxSuggestions {
		words = words[:MaxSuggestions]
	}
	return words
}

// MatchingSuggestions returns up to limit suggestions containing query.
// Queries shorter than two characters yield nothing.
func MatchingSuggestions(tasks []Task, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < 2 || limit <= 0 {
		return nil
	}

	var result []string
	for _, s := range Suggestions(tasks) {
		if strings.Contains(s, q) {
			result = append(result, s)
			if len(result) == limit {
				break
			}
		}
	}
	return result
}
