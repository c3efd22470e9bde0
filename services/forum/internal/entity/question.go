package entity

import "time"

type Question struct {
	ID             uint      `json:"id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AnswerCount    int64     `json:"answer_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type Answer struct {
	ID             uint      `json:"id"`
	QuestionID     uint      `json:"question_id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author"`
	Content        string    `json:"content"`
	LikeCount      int64     `json:"like_count"`
	LikedByViewer  bool      `json:"liked"`
	CreatedAt      time.Time `json:"created_at"`
}

// LikeToggle reports the state of an answer's likers after a toggle.
type LikeToggle struct {
	AnswerID   uint  `json:"answer_id"`
	QuestionID uint  `json:"question_id"`
	Liked      bool  `json:"liked"`
	LikeCount  int64 `json:"like_count"`
}
