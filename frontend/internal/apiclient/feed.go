package apiclient

import (
	"context"
	"net/http"

	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
)

// === Notes ===

func (c *APIClient) GetNotes(ctx context.Context) ([]domain.Note, error) {
	var records []api.NoteRecord
	if err := c.call(ctx, http.MethodGet, "/notes", nil, &records, "get notes"); err != nil {
		return nil, err
	}
	notes := make([]domain.Note, len(records))
	for i, r := range records {
		notes[i] = r.ToDomain()
	}
	return notes, nil
}

func (c *APIClient) CreateNote(ctx context.Context, req api.CreateNoteRequest) (domain.Note, error) {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	var record api.NoteRecord
	if err := c.call(ctx, http.MethodPost, "/notes", req, &record, "create note"); err != nil {
		return domain.Note{}, err
	}
	return record.ToDomain(), nil
}

func (c *APIClient) DeleteNote(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/notes/"+pathEscape(id), nil, nil, "delete note")
}

// === Jobs ===

func (c *APIClient) GetJobs(ctx context.Context) ([]domain.Job, error) {
	var records []api.JobRecord
	if err := c.call(ctx, http.MethodGet, "/jobs", nil, &records, "get jobs"); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, len(records))
	for i, r := range records {
		jobs[i] = r.ToDomain()
	}
	return jobs, nil
}

func (c *APIClient) CreateJob(ctx context.Context, req api.CreateJobRequest) (domain.Job, error) {
	var record api.JobRecord
	if err := c.call(ctx, http.MethodPost, "/jobs", req, &record, "create job"); err != nil {
		return domain.Job{}, err
	}
	return record.ToDomain(), nil
}

func (c *APIClient) DeleteJob(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/jobs/"+pathEscape(id), nil, nil, "delete job")
}

// === Question papers ===

func (c *APIClient) GetPapers(ctx context.Context) ([]domain.QuestionPaper, error) {
	var records []api.PaperRecord
	if err := c.call(ctx, http.MethodGet, "/question-papers", nil, &records, "get question papers"); err != nil {
		return nil, err
	}
	papers := make([]domain.QuestionPaper, len(records))
	for i, r := range records {
		papers[i] = r.ToDomain()
	}
	return papers, nil
}

func (c *APIClient) CreatePaper(ctx context.Context, req api.CreatePaperRequest) (domain.QuestionPaper, error) {
	var record api.PaperRecord
	if err := c.call(ctx, http.MethodPost, "/question-papers", req, &record, "create question paper"); err != nil {
		return domain.QuestionPaper{}, err
	}
	return record.ToDomain(), nil
}

func (c *APIClient) DeletePaper(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/question-papers/"+pathEscape(id), nil, nil, "delete question paper")
}
