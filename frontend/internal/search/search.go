// Package search filters already-fetched collections. Matching is a
// case-insensitive substring test; an empty query keeps everything in order.
package search

import (
	"strings"

	"github.com/studentcollab/collabhub/shared/domain"
)

func Threads(threads []domain.Thread, query string) []domain.Thread {
	return filter(threads, query, func(t domain.Thread) []string {
		return []string{t.Title, t.Content, t.Author}
	})
}

// Notes matches title, uploader or any tag.
func Notes(notes []domain.Note, query string) []domain.Note {
	return filter(notes, query, func(n domain.Note) []string {
		return append([]string{n.Title, n.Uploader}, n.Tags...)
	})
}

func Jobs(jobs []domain.Job, query string) []domain.Job {
	return filter(jobs, query, func(j domain.Job) []string {
		return []string{j.Title, j.Company, j.Referrer}
	})
}

func Papers(papers []domain.QuestionPaper, query string) []domain.QuestionPaper {
	return filter(papers, query, func(p domain.QuestionPaper) []string {
		return []string{p.Subject, p.Year}
	})
}

// PaperGroup is every paper of one subject.
type PaperGroup struct {
	Subject string
	Papers  []domain.QuestionPaper
}

// GroupPapers groups papers by subject, subjects in order of first
// appearance.
func GroupPapers(papers []domain.QuestionPaper) []PaperGroup {
	var groups []PaperGroup
	index := map[string]int{}
	for _, p := range papers {
		i, ok := index[p.Subject]
		if !ok {
			i = len(groups)
			index[p.Subject] = i
			groups = append(groups, PaperGroup{Subject: p.Subject})
		}
		groups[i].Papers = append(groups[i].Papers, p)
	}
	return groups
}

// Matches reports whether any field contains query, ignoring case.
func Matches(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func filter[T any](items []T, query string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	if query == "" {
		return append(out, items...)
	}
	for _, it := range items {
		if Matches(query, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
