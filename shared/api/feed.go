package api

import "github.com/studentcollab/collabhub/shared/domain"

// Request DTOs

type CreateNoteRequest struct {
	Title    string   `json:"title" validate:"required"`
	FileURL  string   `json:"file_url"`
	FileName string   `json:"file_name" validate:"required"`
	Tags     []string `json:"tags"`
	Uploader string   `json:"uploader"`
}

type CreateJobRequest struct {
	Title    string `json:"title" validate:"required"`
	Company  string `json:"company" validate:"required"`
	Link     string `json:"link" validate:"required"`
	Referrer string `json:"referrer"`
}

type CreatePaperRequest struct {
	Subject string `json:"subject" validate:"required"`
	Year    string `json:"year" validate:"required"`
	Link    string `json:"link" validate:"required"`
}

// Wire records

type NoteRecord struct {
	Identity
	Title    string   `json:"title"`
	FileURL  string   `json:"file_url"`
	FileName string   `json:"file_name"`
	Tags     []string `json:"tags"`
	Uploader string   `json:"uploader"`
}

type JobRecord struct {
	Identity
	Title    string `json:"title"`
	Company  string `json:"company"`
	Link     string `json:"link"`
	Referrer string `json:"referrer"`
}

type PaperRecord struct {
	Identity
	Subject string `json:"subject"`
	Year    string `json:"year"`
	Link    string `json:"link"`
}

func (r NoteRecord) ToDomain() domain.Note {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Note{Id: r.Id(), Title: r.Title, FileURL: r.FileURL, FileName: r.FileName, Tags: tags, Uploader: r.Uploader}
}

func (r JobRecord) ToDomain() domain.Job {
	return domain.Job{Id: r.Id(), Title: r.Title, Company: r.Company, Link: r.Link, Referrer: r.Referrer}
}

func (r PaperRecord) ToDomain() domain.QuestionPaper {
	return domain.QuestionPaper{Id: r.Id(), Subject: r.Subject, Year: r.Year, Link: r.Link}
}
