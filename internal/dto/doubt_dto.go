package dto

type CreateDoubtRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
}

type UpdateDoubtRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Subject     *string `json:"subject"`
}

type CreateAnswerRequest struct {
	Content string `json:"content"`
}

type UpdateAnswerRequest struct {
	Content string `json:"content"`
}
