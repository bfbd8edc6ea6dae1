package document

type RenameDraftRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}
