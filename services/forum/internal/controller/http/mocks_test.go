package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"qa-forum/pkg/flash"
	"qa-forum/pkg/jwt"
	"qa-forum/pkg/logger"
	"qa-forum/pkg/middleware"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/usecase"
	"qa-forum/services/forum/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, in usecase.RegistrationInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthUseCase) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

type MockForumUseCase struct {
	mock.Mock
}

func (m *MockForumUseCase) ListQuestions(ctx context.Context) ([]*entity.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Question), args.Error(1)
}

func (m *MockForumUseCase) AskQuestion(ctx context.Context, authorID uint, title, content string) (*entity.Question, error) {
	args := m.Called(ctx, authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockForumUseCase) GetQuestion(ctx context.Context, questionID uint) (*entity.Question, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockForumUseCase) ListAnswers(ctx context.Context, questionID, viewerID uint) ([]*entity.Answer, error) {
	args := m.Called(ctx, questionID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Answer), args.Error(1)
}

func (m *MockForumUseCase) SubmitAnswer(ctx context.Context, questionID, authorID uint, content string) (*entity.Answer, error) {
	args := m.Called(ctx, questionID, authorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Answer), args.Error(1)
}

func (m *MockForumUseCase) ToggleLike(ctx context.Context, answerID, userID uint) (*entity.LikeToggle, error) {
	args := m.Called(ctx, answerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeToggle), args.Error(1)
}

func (m *MockForumUseCase) DeleteQuestion(ctx context.Context, questionID uint) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

var _ usecase.ForumUseCase = (*MockForumUseCase)(nil)

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, io.Discard)
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl, err := web.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)
	return r
}

// signedIn stands in for the session middleware.
func signedIn(userID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUsername, username)
		c.Next()
	}
}

func postForm(path string, values map[string]string) *http.Request {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// flashed decodes the notices a response queued for the next page.
func flashed(t *testing.T, w *httptest.ResponseRecorder) []flash.Message {
	t.Helper()
	var msgs []flash.Message
	for _, ck := range w.Result().Cookies() {
		if ck.Name != flash.CookieName {
			continue
		}
		if ck.MaxAge < 0 {
			msgs = nil
			continue
		}
		data, err := base64.RawURLEncoding.DecodeString(ck.Value)
		require.NoError(t, err)
		msgs = nil
		require.NoError(t, json.Unmarshal(data, &msgs))
	}
	return msgs
}
