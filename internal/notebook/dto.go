package notebook

type CreateNotebookRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
}
