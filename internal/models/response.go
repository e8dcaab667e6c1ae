package models

import "time"

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// MessageData carries a plain confirmation message
type MessageData struct {
	Message string `json:"message"`
}

// LoginData is returned by a successful login
type LoginData struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// CodeData is returned by /request_code
type CodeData struct {
	ID   string `json:"_id"`
	Code string `json:"code"`
}

// ArticleCreated echoes a newly created article
type ArticleCreated struct {
	ArticleID string   `json:"article_id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Content   string   `json:"content"`
	Image     string   `json:"image"`
	Author    string   `json:"author"`
	Likes     int      `json:"likes"`
	Comments  []string `json:"comments"`
}

// ArticleSummary is one row of a browse page
type ArticleSummary struct {
	ArticleID string      `json:"article_id"`
	Title     string      `json:"title"`
	Category  string      `json:"category"`
	Author    UserCompact `json:"author"`
	Likes     int         `json:"likes"`
	CreatedAt time.Time   `json:"createdAt"`
	Image     string      `json:"image"`
}

// ArticleView is the article block of the detail view
type ArticleView struct {
	ArticleSummary
	Content string `json:"content"`
}

// ArticleDetail is the fully materialized detail view for one viewer
type ArticleDetail struct {
	Article   ArticleView   `json:"article"`
	Liked     bool          `json:"liked"`
	Collected bool          `json:"collected"`
	Comments  []CommentView `json:"comments"`
}

// CommentView is a comment with its author resolved and ownership derived
type CommentView struct {
	ID        string      `json:"_id"`
	Content   string      `json:"content"`
	Author    UserCompact `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	IsMine    bool        `json:"isMine"`
	Replies   []ReplyView `json:"replies"`
}

// ReplyView is a reply with its author resolved and ownership derived
type ReplyView struct {
	ID        string      `json:"_id"`
	Content   string      `json:"content"`
	Author    UserCompact `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	IsMine    bool        `json:"isMine"`
}

// CommentCreated echoes a newly created comment
type CommentCreated struct {
	CommentID string      `json:"comment_id"`
	ArticleID string      `json:"article_id"`
	Author    string      `json:"author"`
	Content   string      `json:"content"`
	Replies   []ReplyView `json:"replies"`
}

// ArticleRef is the short article reference used in profile and own-article lists
type ArticleRef struct {
	ArticleID string    `json:"article_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentRef is the short comment reference used in profiles
type CommentRef struct {
	CommentID string    `json:"comment_id"`
	ArticleID string    `json:"article_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserProfile is returned by /search_user
type UserProfile struct {
	Username        string        `json:"username"`
	Image           string        `json:"image"`
	WrittenComments []CommentRef  `json:"writtenComments"`
	LikedArticles   []ArticleRef  `json:"likedArticles"`
	SavedArticles   []ArticleRef  `json:"savedArticles"`
	Following       []UserCompact `json:"following"`
}

// FileData is returned by /upload_file
type FileData struct {
	FileURL string `json:"file_url"`
}

// FileRef describes one upload in /get_user_files
type FileRef struct {
	FileURL     string    `json:"file_url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// FileList is returned by /get_user_files
type FileList struct {
	Files []FileRef `json:"files"`
}

// ArticleList is returned by /browse_article
type ArticleList struct {
	Articles []ArticleSummary `json:"articles"`
}

// ArticleRefList is returned by /get_user_articles
type ArticleRefList struct {
	Articles []ArticleRef `json:"articles"`
}
