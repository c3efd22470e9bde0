package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"qa-forum/pkg/middleware"
	"qa-forum/services/forum/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAPI(t *testing.T) (*MockAuthUseCase, *MockForumUseCase, *gin.Engine) {
	t.Helper()
	authUseCase := new(MockAuthUseCase)
	forumUseCase := new(MockForumUseCase)
	handler := NewAPIHandler(authUseCase, forumUseCase)

	router := setupTestRouter(t)
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	protected := router.Group("", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(2))
		c.Next()
	})
	protected.GET("/questions", handler.ListQuestions)
	protected.POST("/questions", handler.AskQuestion)
	protected.GET("/questions/:id", handler.GetQuestion)
	protected.POST("/questions/:id/answers", handler.SubmitAnswer)
	protected.POST("/answers/:answer_id/like", handler.ToggleLike)
	return authUseCase, forumUseCase, router
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAPIRegister_ValidationError(t *testing.T) {
	authUseCase, _, router := setupAPI(t)
	verr := entity.NewValidationError()
	verr.Add("email", "Email is already in use.")
	authUseCase.On("Register", mock.Anything, mock.Anything).Return(nil, verr)

	w := doJSON(router, "POST", "/auth/register", `{"username":"alice","email":"alice@example.com","password":"s3cure-pass","password_confirm":"s3cure-pass"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Email is already in use."}, resp.Fields["email"])
}

func TestAPIRegister_BadJSON(t *testing.T) {
	_, _, router := setupAPI(t)

	w := doJSON(router, "POST", "/auth/register", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPILogin(t *testing.T) {
	authUseCase, _, router := setupAPI(t)
	authUseCase.On("Login", mock.Anything, "alice", "s3cure-pass").Return(&entity.User{ID: 1, Username: "alice"}, "tok", nil)
	authUseCase.On("Login", mock.Anything, "alice", "wrong").Return(nil, "", entity.ErrInvalidCredentials)

	w := doJSON(router, "POST", "/auth/login", `{"username":"alice","password":"s3cure-pass"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)

	w = doJSON(router, "POST", "/auth/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIListQuestions_Degrades(t *testing.T) {
	_, forumUseCase, router := setupAPI(t)
	forumUseCase.On("ListQuestions", mock.Anything).Return(nil, errors.New("db down"))

	w := doJSON(router, "GET", "/questions", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"questions":[],"notice":"Error loading questions."}`, w.Body.String())
}

func TestAPIAskQuestion(t *testing.T) {
	_, forumUseCase, router := setupAPI(t)
	forumUseCase.On("AskQuestion", mock.Anything, uint(2), "How do goroutines work?", "Explain").
		Return(&entity.Question{ID: 5, AuthorID: 2, Title: "How do goroutines work?"}, nil)

	w := doJSON(router, "POST", "/questions", `{"title":"How do goroutines work?","content":"Explain"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var q entity.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, uint(5), q.ID)
}

func TestAPIGetQuestion(t *testing.T) {
	_, forumUseCase, router := setupAPI(t)
	forumUseCase.On("GetQuestion", mock.Anything, uint(5)).Return(&entity.Question{ID: 5}, nil)
	forumUseCase.On("ListAnswers", mock.Anything, uint(5), uint(2)).Return(nil, errors.New("timeout"))
	forumUseCase.On("GetQuestion", mock.Anything, uint(9999)).Return(nil, entity.ErrNotFound)

	w := doJSON(router, "GET", "/questions/5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp QuestionDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Answers)
	assert.Equal(t, "Failed to load answers.", resp.Notice)

	w = doJSON(router, "GET", "/questions/9999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/questions/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIToggleLike_StatusMapping(t *testing.T) {
	_, forumUseCase, router := setupAPI(t)
	forumUseCase.On("ToggleLike", mock.Anything, uint(1), uint(2)).
		Return(&entity.LikeToggle{AnswerID: 1, QuestionID: 3, Liked: true, LikeCount: 4}, nil)
	forumUseCase.On("ToggleLike", mock.Anything, uint(2), uint(2)).
		Return(nil, &entity.AuthorizationError{AnswerID: 2, QuestionID: 3, Err: entity.ErrSelfLike})
	forumUseCase.On("ToggleLike", mock.Anything, uint(3), uint(2)).Return(nil, entity.ErrNotFound)
	forumUseCase.On("ToggleLike", mock.Anything, uint(4), uint(2)).Return(nil, errors.New("deadlock"))

	w := doJSON(router, "POST", "/answers/1/like", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer_id":1,"question_id":3,"liked":true,"like_count":4}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, doJSON(router, "POST", "/answers/2/like", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, "POST", "/answers/3/like", "").Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(router, "POST", "/answers/4/like", "").Code)
}

func TestAPISubmitAnswer_Validation(t *testing.T) {
	_, forumUseCase, router := setupAPI(t)
	verr := entity.NewValidationError()
	verr.Add("content", "Answer cannot be empty or just spaces.")
	forumUseCase.On("SubmitAnswer", mock.Anything, uint(5), uint(2), " ").Return(nil, verr)

	w := doJSON(router, "POST", "/questions/5/answers", `{"content":" "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Answer cannot be empty or just spaces.")
}
