package models

type Project struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ProjectLink string `json:"project_link,omitempty"`
	Tags        string `json:"tags,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type ProjectInput struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Description string `json:"description" form:"description"`
	ProjectLink string `json:"project_link" form:"project_link" binding:"omitempty,url,max=500"`
	Tags        string `json:"tags" form:"tags" binding:"max=255"`
}

type Skill struct {
	ID        int    `json:"id"`
	SkillName string `json:"skill_name"`
	Category  string `json:"category,omitempty"`
}

type SkillInput struct {
	SkillName string `json:"skill_name" form:"skill_name" binding:"required,max=100"`
	Category  string `json:"category" form:"category" binding:"max=100"`
}

type Link struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type LinkInput struct {
	Title string `json:"title" form:"title" binding:"required,max=100"`
	URL   string `json:"url" form:"url" binding:"required,url"`
}

type Portfolio struct {
	Projects []Project `json:"projects"`
	Skills   []Skill   `json:"skills"`
	Links    []Link    `json:"links"`
}
