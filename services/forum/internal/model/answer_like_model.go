package model

// AnswerLikeModel is one edge of the answer likers set; the pair is the primary key.
type AnswerLikeModel struct {
	AnswerID uint `gorm:"primaryKey;autoIncrement:false" json:"answer_id"`
	UserID   uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
}

func (AnswerLikeModel) TableName() string {
	return "answer_likes"
}
