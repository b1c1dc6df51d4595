package domain

type Note struct {
	Id       string
	Title    string
	FileURL  string
	FileName string
	Tags     []string
	Uploader string
}

type Job struct {
	Id       string
	Title    string
	Company  string
	Link     string
	Referrer string
}

type QuestionPaper struct {
	Id      string
	Subject string
	Year    string
	Link    string
}

// Identified is implemented by every record kept in a feed collection.
type Identified interface {
	Identity() string
}

func (n Note) Identity() string          { return n.Id }
func (j Job) Identity() string           { return j.Id }
func (p QuestionPaper) Identity() string { return p.Id }
func (t Thread) Identity() string        { return t.Id }
