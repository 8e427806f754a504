package community

import "codeberg.org/krishisakhi/server/internal/store"

// store kind for community posts
const Kind = "community_posts"

const (
	CategoryQuestion     = "question"
	CategoryTip          = "tip"
	CategoryProblem      = "problem"
	CategorySuccessStory = "success_story"
	CategoryMarketUpdate = "market_update"
	CategoryGeneral      = "general"
)

// author shown when the poster has no display name
const DefaultAuthor = "Farmer"

const fieldLikesCount = "likes_count"

type Repository struct {
	store store.Store[Post]
}

type Post struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Category     string   `json:"category"`
	Location     string   `json:"location,omitempty"`
	Tags         []string `json:"tags"`
	CreatedBy    string   `json:"created_by"`
	LikesCount   int      `json:"likes_count"`
	RepliesCount int      `json:"replies_count"`
	IsResolved   bool     `json:"is_resolved"`
	CreatedDate  string   `json:"created_date"`
	UpdatedDate  string   `json:"updated_date,omitempty"`
}

type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Content  string   `json:"content" binding:"required,max=5000"`
	Category string   `json:"category,omitempty" binding:"omitempty,oneof=question tip problem success_story market_update general"`
	Location string   `json:"location,omitempty" binding:"max=200"`
	Tags     []string `json:"tags,omitempty" binding:"max=20,dive,max=50"`
}

type UpdatePostRequest struct {
	Title    *string  `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Content  *string  `json:"content,omitempty" binding:"omitempty,min=1,max=5000"`
	Category *string  `json:"category,omitempty" binding:"omitempty,oneof=question tip problem success_story market_update general"`
	Location *string  `json:"location,omitempty" binding:"omitempty,max=200"`
	Tags     []string `json:"tags,omitempty" binding:"max=20,dive,max=50"`
}

type ListFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=question tip problem success_story market_update general"`
	Search   string `form:"q" binding:"max=100"`
}

type Stats struct {
	TotalPosts int `json:"total_posts"`
	Questions  int `json:"questions"`
	Resolved   int `json:"resolved"`
	TotalLikes int `json:"total_likes"`
}
