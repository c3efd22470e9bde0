package usecase

import (
	"context"
	"errors"
	"fmt"

	"qa-forum/pkg/logger"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/repo/persistent"
)

type ForumUseCase interface {
	ListQuestions(ctx context.Context) ([]*entity.Question, error)
	AskQuestion(ctx context.Context, authorID uint, title, content string) (*entity.Question, error)
	GetQuestion(ctx context.Context, questionID uint) (*entity.Question, error)
	ListAnswers(ctx context.Context, questionID, viewerID uint) ([]*entity.Answer, error)
	SubmitAnswer(ctx context.Context, questionID, authorID uint, content string) (*entity.Answer, error)
	ToggleLike(ctx context.Context, answerID, userID uint) (*entity.LikeToggle, error)
	DeleteQuestion(ctx context.Context, questionID uint) error
}

type forumUseCase struct {
	questionRepo persistent.QuestionRepository
	answerRepo   persistent.AnswerRepository
	logger       *logger.Logger
}

func NewForumUseCase(
	questionRepo persistent.QuestionRepository,
	answerRepo persistent.AnswerRepository,
	logger *logger.Logger,
) ForumUseCase {
	return &forumUseCase{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		logger:       logger,
	}
}

func (uc *forumUseCase) ListQuestions(ctx context.Context) ([]*entity.Question, error) {
	questions, err := uc.questionRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list questions: %v", err)
		return nil, err
	}
	return questions, nil
}

func (uc *forumUseCase) AskQuestion(ctx context.Context, authorID uint, title, content string) (*entity.Question, error) {
	in, err := ValidateQuestion(title, content)
	if err != nil {
		return nil, err
	}

	question := &entity.Question{
		AuthorID: authorID,
		Title:    in.Title,
		Content:  in.Content,
	}
	if err := uc.questionRepo.Create(ctx, question); err != nil {
		uc.logger.Error("Failed to create question for user %d: %v", authorID, err)
		return nil, err
	}

	return question, nil
}

func (uc *forumUseCase) GetQuestion(ctx context.Context, questionID uint) (*entity.Question, error) {
	question, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			uc.logger.Error("Failed to load question %d: %v", questionID, err)
		}
		return nil, err
	}
	return question, nil
}

func (uc *forumUseCase) ListAnswers(ctx context.Context, questionID, viewerID uint) ([]*entity.Answer, error) {
	answers, err := uc.answerRepo.ListByQuestion(ctx, questionID, viewerID)
	if err != nil {
		uc.logger.Error("Failed to list answers of question %d: %v", questionID, err)
		return nil, err
	}
	return answers, nil
}

func (uc *forumUseCase) SubmitAnswer(ctx context.Context, questionID, authorID uint, content string) (*entity.Answer, error) {
	content, err := ValidateAnswer(content)
	if err != nil {
		return nil, err
	}

	if _, err := uc.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	answer := &entity.Answer{
		QuestionID: questionID,
		AuthorID:   authorID,
		Content:    content,
	}
	if err := uc.answerRepo.Create(ctx, answer); err != nil {
		uc.logger.Error("Failed to create answer on question %d: %v", questionID, err)
		return nil, err
	}

	return answer, nil
}

// ToggleLike adds userID to the answer's likers, or removes them if already
// present. Authors may not like their own answers.
func (uc *forumUseCase) ToggleLike(ctx context.Context, answerID, userID uint) (*entity.LikeToggle, error) {
	answer, err := uc.answerRepo.GetByID(ctx, answerID, userID)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			uc.logger.Error("Failed to load answer %d: %v", answerID, err)
		}
		return nil, err
	}

	if answer.AuthorID == userID {
		return nil, &entity.AuthorizationError{
			AnswerID:   answer.ID,
			QuestionID: answer.QuestionID,
			Err:        entity.ErrSelfLike,
		}
	}

	liked, count, err := uc.answerRepo.ToggleLike(ctx, answerID, userID)
	if err != nil {
		uc.logger.Error("Failed to toggle like on answer %d by user %d: %v", answerID, userID, err)
		return nil, err
	}

	return &entity.LikeToggle{
		AnswerID:   answer.ID,
		QuestionID: answer.QuestionID,
		Liked:      liked,
		LikeCount:  count,
	}, nil
}

func (uc *forumUseCase) DeleteQuestion(ctx context.Context, questionID uint) error {
	if err := uc.questionRepo.Delete(ctx, questionID); err != nil {
		return fmt.Errorf("delete question %d: %w", questionID, err)
	}
	uc.logger.Info("Deleted question %d", questionID)
	return nil
}
