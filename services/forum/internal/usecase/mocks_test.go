package usecase

import (
	"context"
	"io"
	"time"

	"qa-forum/pkg/logger"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, io.Discard)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	if args.Error(0) == nil {
		question.ID = 7
	}
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context) ([]*entity.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ persistent.QuestionRepository = (*MockQuestionRepository)(nil)

type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Create(ctx context.Context, answer *entity.Answer) error {
	args := m.Called(ctx, answer)
	if args.Error(0) == nil {
		answer.ID = 11
	}
	return args.Error(0)
}

func (m *MockAnswerRepository) GetByID(ctx context.Context, id, viewerID uint) (*entity.Answer, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ListByQuestion(ctx context.Context, questionID, viewerID uint) ([]*entity.Answer, error) {
	args := m.Called(ctx, questionID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ToggleLike(ctx context.Context, answerID, userID uint) (bool, int64, error) {
	args := m.Called(ctx, answerID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnswerRepository) CountLikes(ctx context.Context, answerID uint) (int64, error) {
	args := m.Called(ctx, answerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) Likers(ctx context.Context, answerID uint) ([]uint, error) {
	args := m.Called(ctx, answerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

var _ persistent.AnswerRepository = (*MockAnswerRepository)(nil)

type recordingDenylist struct {
	revoked map[string]time.Duration
}

func (d *recordingDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if d.revoked == nil {
		d.revoked = make(map[string]time.Duration)
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *recordingDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, nil
}
