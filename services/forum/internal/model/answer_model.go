package model

import "time"

type AnswerModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AnswerModel) TableName() string {
	return "answers"
}

// AnswerRow is an answer joined with its author, like count and the viewer's like.
type AnswerRow struct {
	AnswerModel
	AuthorUsername string
	LikeCount      int64
	LikedByViewer  bool
}
