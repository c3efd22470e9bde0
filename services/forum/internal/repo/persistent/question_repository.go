package persistent

import (
	"context"
	"fmt"

	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	List(ctx context.Context) ([]*entity.Question, error)
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	questionModel := ToQuestionModel(question)
	if err := r.db.WithContext(ctx).Create(questionModel).Error; err != nil {
		return translate(err, "create question")
	}
	question.ID = questionModel.ID
	question.CreatedAt = questionModel.CreatedAt
	return nil
}

func (r *questionRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("questions").
		Select(`questions.*, users.username AS author_username,
			(SELECT COUNT(*) FROM answers a WHERE a.question_id = questions.id) AS answer_count`).
		Joins("JOIN users ON users.id = questions.user_id")
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var rows []model.QuestionRow
	if err := r.query(ctx).Where("questions.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("question %d", id))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("question %d: %w", id, entity.ErrNotFound)
	}
	return ToQuestionEntity(&rows[0]), nil
}

// List returns every question, newest first.
func (r *questionRepository) List(ctx context.Context) ([]*entity.Question, error) {
	var rows []model.QuestionRow
	if err := r.query(ctx).Order("questions.created_at DESC, questions.id DESC").Scan(&rows).Error; err != nil {
		return nil, translate(err, "list questions")
	}

	questions := make([]*entity.Question, len(rows))
	for i := range rows {
		questions[i] = ToQuestionEntity(&rows[i])
	}
	return questions, nil
}

// Delete removes the question together with its answers and their likes.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.QuestionModel{}, id)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("delete question %d", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, entity.ErrNotFound)
	}
	return nil
}
