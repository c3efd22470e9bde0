package persistent

import (
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Username:  e.Username,
		Email:     e.Email,
		Password:  e.Password,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToQuestionEntity(m *model.QuestionRow) *entity.Question {
	if m == nil {
		return nil
	}

	return &entity.Question{
		ID:             m.ID,
		AuthorID:       m.UserID,
		AuthorUsername: m.AuthorUsername,
		Title:          m.Title,
		Content:        m.Content,
		AnswerCount:    m.AnswerCount,
		CreatedAt:      m.CreatedAt,
	}
}

func ToQuestionModel(e *entity.Question) *model.QuestionModel {
	if e == nil {
		return nil
	}

	return &model.QuestionModel{
		ID:        e.ID,
		UserID:    e.AuthorID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

func ToAnswerEntity(m *model.AnswerRow) *entity.Answer {
	if m == nil {
		return nil
	}

	return &entity.Answer{
		ID:             m.ID,
		QuestionID:     m.QuestionID,
		AuthorID:       m.UserID,
		AuthorUsername: m.AuthorUsername,
		Content:        m.Content,
		LikeCount:      m.LikeCount,
		LikedByViewer:  m.LikedByViewer,
		CreatedAt:      m.CreatedAt,
	}
}

func ToAnswerModel(e *entity.Answer) *model.AnswerModel {
	if e == nil {
		return nil
	}

	return &model.AnswerModel{
		ID:         e.ID,
		QuestionID: e.QuestionID,
		UserID:     e.AuthorID,
		Content:    e.Content,
		CreatedAt:  e.CreatedAt,
	}
}
