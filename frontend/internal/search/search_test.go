package search

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/studentcollab/collabhub/shared/domain"
	"github.com/stretchr/testify/assert"
)

var threads = []domain.Thread{
	{Id: "1", Title: "Exam Schedule", Content: "When is DBMS?", Author: "alice"},
	{Id: "2", Title: "Lab partners", Content: "need one for EEE", Author: "Bob"},
	{Id: "3", Title: "Hackathon", Content: "Team up!", Author: "carol"},
}

func TestThreads(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query keeps all", query: "", want: []string{"1", "2", "3"}},
		{name: "whitespace is matched literally", query: "   ", want: []string{}},
		{name: "single space", query: " ", want: []string{"1", "2", "3"}},
		{name: "title case-insensitive", query: "exam", want: []string{"1"}},
		{name: "content", query: "eee", want: []string{"2"}},
		{name: "author", query: "BOB", want: []string{"2"}},
		{name: "several fields", query: "a", want: []string{"1", "2", "3"}},
		{name: "no match", query: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Threads(threads, tt.query)
			ids := make([]string, 0, len(got))
			for _, th := range got {
				ids = append(ids, th.Id)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestNotesJobsPapers(t *testing.T) {
	notes := []domain.Note{
		{Id: "n1", Title: "Joins", Tags: []string{"DBMS"}, Uploader: "alice"},
		{Id: "n2", Title: "Sorting", Tags: []string{"DSA", "AI & ML"}, Uploader: "bob"},
	}
	assert.Equal(t, notes[1:], Notes(notes, "ai & ml"))
	assert.Equal(t, notes[:1], Notes(notes, "ALICE"))
	assert.Equal(t, notes[:1], Notes(notes, "join"))

	jobs := []domain.Job{
		{Id: "j1", Title: "SWE Intern", Company: "Acme", Referrer: "alice"},
		{Id: "j2", Title: "Designer", Company: "Globex", Referrer: "bob"},
	}
	assert.Equal(t, jobs[1:], Jobs(jobs, "glob"))
	assert.Equal(t, jobs[:1], Jobs(jobs, "intern"))
	assert.Equal(t, jobs[1:], Jobs(jobs, "BOB"))
	assert.Empty(t, Jobs(jobs, "link"))

	papers := []domain.QuestionPaper{
		{Id: "p1", Subject: "DBMS", Year: "2022"},
		{Id: "p2", Subject: "DSA", Year: "2023"},
	}
	assert.Equal(t, papers[1:], Papers(papers, "2023"))
	assert.Equal(t, papers[:1], Papers(papers, "dbms"))
}

func TestGroupPapers(t *testing.T) {
	papers := []domain.QuestionPaper{
		{Id: "1", Subject: "DSA", Year: "2021"},
		{Id: "2", Subject: "DBMS", Year: "2022"},
		{Id: "3", Subject: "DSA", Year: "2023"},
	}
	groups := GroupPapers(papers)
	assert.Equal(t, []PaperGroup{
		{Subject: "DSA", Papers: []domain.QuestionPaper{papers[0], papers[2]}},
		{Subject: "DBMS", Papers: []domain.QuestionPaper{papers[1]}},
	}, groups)
	assert.Empty(t, GroupPapers(nil))
}

// Every result is an input item, in input order, and matches the query.
func TestThreads_SubsetProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"Exam", "lab", "DBMS", "team", "alice", "BOB", "notes", "x"}
	pick := func() string { return words[rng.Intn(len(words))] }

	for round := 0; round < 200; round++ {
		items := make([]domain.Thread, rng.Intn(10))
		for i := range items {
			items[i] = domain.Thread{
				Id:      string(rune('a' + i)),
				Title:   pick() + " " + pick(),
				Content: pick(),
				Author:  pick(),
			}
		}
		q := pick()
		switch rng.Intn(4) {
		case 0:
			q = strings.ToUpper(q[:1])
		case 1:
			q = []string{" ", "  ", " x"}[rng.Intn(3)]
		}

		got := Threads(items, q)

		j := 0
		for _, th := range got {
			for j < len(items) && items[j].Id != th.Id {
				j++
			}
			if !assert.Less(t, j, len(items), "result must be an ordered subset") {
				return
			}
			assert.True(t, Matches(q, th.Title, th.Content, th.Author))
		}
		for _, it := range items {
			if Matches(q, it.Title, it.Content, it.Author) {
				assert.Contains(t, got, it)
			}
		}
	}
}
