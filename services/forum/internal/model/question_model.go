package model

import "time"

type QuestionModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

// QuestionRow is a question joined with its author and answer count.
type QuestionRow struct {
	QuestionModel
	AuthorUsername string
	AnswerCount    int64
}
