package frontend_domain

// ThreadCardData is the typed data for the "thread" template partial.
type ThreadCardData struct {
	Thread *Thread
	Common *CommonTemplateData
}
