package dto

type CreateStoryRequest struct {
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	Genre           string `json:"genre" binding:"required,storygenre"`
	Type            string `json:"type" binding:"required,oneof=story poem script blog"`
	Length          string `json:"length" binding:"required,oneof=micro short medium long"`
	Prompt          string `json:"prompt"`
	IsPublic        bool   `json:"is_public"`
	GenerateContent bool   `json:"generate_content"`
	ForVideo        bool   `json:"for_video"`
}
