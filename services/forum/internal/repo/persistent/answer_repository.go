package persistent

import (
	"context"
	"fmt"

	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *entity.Answer) error
	GetByID(ctx context.Context, id, viewerID uint) (*entity.Answer, error)
	ListByQuestion(ctx context.Context, questionID, viewerID uint) ([]*entity.Answer, error)
	ToggleLike(ctx context.Context, answerID, userID uint) (bool, int64, error)
	CountLikes(ctx context.Context, answerID uint) (int64, error)
	Likers(ctx context.Context, answerID uint) ([]uint, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *entity.Answer) error {
	answerModel := ToAnswerModel(answer)
	if err := r.db.WithContext(ctx).Create(answerModel).Error; err != nil {
		return translate(err, "create answer")
	}
	answer.ID = answerModel.ID
	answer.CreatedAt = answerModel.CreatedAt
	return nil
}

func (r *answerRepository) query(ctx context.Context, viewerID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("answers").
		Select(`answers.*, users.username AS author_username,
			(SELECT COUNT(*) FROM answer_likes al WHERE al.answer_id = answers.id) AS like_count,
			EXISTS (SELECT 1 FROM answer_likes lv WHERE lv.answer_id = answers.id AND lv.user_id = ?) AS liked_by_viewer`, viewerID).
		Joins("JOIN users ON users.id = answers.user_id")
}

func (r *answerRepository) GetByID(ctx context.Context, id, viewerID uint) (*entity.Answer, error) {
	var rows []model.AnswerRow
	if err := r.query(ctx, viewerID).Where("answers.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("answer %d", id))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("answer %d: %w", id, entity.ErrNotFound)
	}
	return ToAnswerEntity(&rows[0]), nil
}

// ListByQuestion returns the question's answers, newest first.
func (r *answerRepository) ListByQuestion(ctx context.Context, questionID, viewerID uint) ([]*entity.Answer, error) {
	var rows []model.AnswerRow
	err := r.query(ctx, viewerID).
		Where("answers.question_id = ?", questionID).
		Order("answers.created_at DESC, answers.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("answers of question %d", questionID))
	}

	answers := make([]*entity.Answer, len(rows))
	for i := range rows {
		answers[i] = ToAnswerEntity(&rows[i])
	}
	return answers, nil
}

// ToggleLike flips userID's membership in the answer's likers and returns the
// new membership and like count. The edge is removed if present, otherwise
// inserted; an insert that loses a race to a concurrent toggle removes the
// edge instead, so concurrent toggles behave as if applied one after another.
func (r *answerRepository) ToggleLike(ctx context.Context, answerID, userID uint) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("answer_id = ? AND user_id = ?", answerID, userID).Delete(&model.AnswerLikeModel{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			res = tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.AnswerLikeModel{AnswerID: answerID, UserID: userID})
			if res.Error != nil {
				return res.Error
			}
			liked = res.RowsAffected == 1

			if !liked {
				if err := tx.Where("answer_id = ? AND user_id = ?", answerID, userID).Delete(&model.AnswerLikeModel{}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&model.AnswerLikeModel{}).Where("answer_id = ?", answerID).Count(&count).Error
	})
	if err != nil {
		return false, 0, translate(err, fmt.Sprintf("toggle like on answer %d", answerID))
	}

	return liked, count, nil
}

func (r *answerRepository) CountLikes(ctx context.Context, answerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AnswerLikeModel{}).Where("answer_id = ?", answerID).Count(&count).Error
	return count, err
}

func (r *answerRepository) Likers(ctx context.Context, answerID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.WithContext(ctx).Model(&model.AnswerLikeModel{}).
		Where("answer_id = ?", answerID).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}
