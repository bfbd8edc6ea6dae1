package summary

type SummaryContainer struct {
	Service Service
	Handler *Handler
}

func NewSummaryContainer(documents DocumentLister, recordings RecordingLister, notebooks NotebookNamer) *SummaryContainer {
	service := NewService(documents, recordings, notebooks)
	return &SummaryContainer{
		Service: service,
		Handler: NewHandler(service),
	}
}
