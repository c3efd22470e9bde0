package http

import (
	"errors"
	"net/http"

	"qa-forum/pkg/middleware"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the JSON surface under /api/v1.
type APIHandler struct {
	authUseCase  usecase.AuthUseCase
	forumUseCase usecase.ForumUseCase
}

func NewAPIHandler(authUseCase usecase.AuthUseCase, forumUseCase usecase.ForumUseCase) *APIHandler {
	return &APIHandler{
		authUseCase:  authUseCase,
		forumUseCase: forumUseCase,
	}
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type QuestionRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AnswerRequest struct {
	Content string `json:"content"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type QuestionListResponse struct {
	Questions []*entity.Question `json:"questions"`
	Notice    string             `json:"notice,omitempty"`
}

type QuestionDetailResponse struct {
	Question *entity.Question `json:"question"`
	Answers  []*entity.Answer `json:"answers"`
	Notice   string           `json:"notice,omitempty"`
}

type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeError(c *gin.Context, err error) {
	var verr *entity.ValidationError
	var authErr *entity.AuthorizationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: authErr.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, entity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: msgLoginFailed})
	case errors.Is(err, entity.ErrInactiveUser):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: msgLoginInactive})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account; no session is started
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  entity.User
// @Failure      400  {object}  ErrorResponse
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *APIHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	user, err := h.authUseCase.Register(c.Request.Context(), usecase.RegistrationInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary      Login user
// @Description  Verify credentials and return a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *APIHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// ListQuestions godoc
// @Summary      List questions
// @Description  All questions, newest first. On a storage failure the list is empty and notice is set.
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  QuestionListResponse
// @Failure      401  {object}  map[string]string
// @Router       /questions [get]
func (h *APIHandler) ListQuestions(c *gin.Context) {
	questions, err := h.forumUseCase.ListQuestions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, QuestionListResponse{Questions: []*entity.Question{}, Notice: "Error loading questions."})
		return
	}

	c.JSON(http.StatusOK, QuestionListResponse{Questions: questions})
}

// AskQuestion godoc
// @Summary      Ask a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuestionRequest true "Question"
// @Success      201  {object}  entity.Question
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Router       /questions [post]
func (h *APIHandler) AskQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	question, err := h.forumUseCase.AskQuestion(c.Request.Context(), middleware.CurrentUserID(c), req.Title, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// GetQuestion godoc
// @Summary      Get a question with its answers
// @Description  Answers are newest first and carry the caller's like state
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Question ID"
// @Success      200  {object}  QuestionDetailResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /questions/{id} [get]
func (h *APIHandler) GetQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		writeError(c, entity.ErrNotFound)
		return
	}

	question, err := h.forumUseCase.GetQuestion(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := QuestionDetailResponse{Question: question}
	answers, err := h.forumUseCase.ListAnswers(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		resp.Answers = []*entity.Answer{}
		resp.Notice = "Failed to load answers."
	} else {
		resp.Answers = answers
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary      Answer a question
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "Question ID"
// @Param        request  body  AnswerRequest  true  "Answer"
// @Success      201  {object}  entity.Answer
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /questions/{id}/answers [post]
func (h *APIHandler) SubmitAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		writeError(c, entity.ErrNotFound)
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	answer, err := h.forumUseCase.SubmitAnswer(c.Request.Context(), id, middleware.CurrentUserID(c), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// ToggleLike godoc
// @Summary      Like or unlike an answer
// @Description  Flips the caller's like; authors cannot like their own answers
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        answer_id  path  int  true  "Answer ID"
// @Success      200  {object}  entity.LikeToggle
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /answers/{answer_id}/like [post]
func (h *APIHandler) ToggleLike(c *gin.Context) {
	id, ok := parseID(c, "answer_id")
	if !ok {
		writeError(c, entity.ErrNotFound)
		return
	}

	result, err := h.forumUseCase.ToggleLike(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
