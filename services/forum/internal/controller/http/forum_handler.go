package http

import (
	"errors"
	"net/http"

	"qa-forum/pkg/flash"
	"qa-forum/pkg/logger"
	"qa-forum/pkg/middleware"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ForumHandler struct {
	forumUseCase usecase.ForumUseCase
	logger       *logger.Logger
}

func NewForumHandler(forumUseCase usecase.ForumUseCase, logger *logger.Logger) *ForumHandler {
	return &ForumHandler{
		forumUseCase: forumUseCase,
		logger:       logger,
	}
}

type QuestionForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

type AnswerForm struct {
	Content string `form:"content"`
}

// Home lists every question, newest first. A storage failure shows an empty
// list with a notice.
func (h *ForumHandler) Home(c *gin.Context) {
	questions, err := h.forumUseCase.ListQuestions(c.Request.Context())
	if err != nil {
		questions = []*entity.Question{}
		flash.Add(c, flash.Error, "Error loading questions.")
	}

	render(c, http.StatusOK, "home.html", gin.H{
		"Title":     "Questions",
		"Questions": questions,
	})
}

func (h *ForumHandler) AskPage(c *gin.Context) {
	render(c, http.StatusOK, "ask_question.html", gin.H{
		"Title":  "Ask a question",
		"Form":   QuestionForm{},
		"Errors": map[string][]string(nil),
	})
}

func (h *ForumHandler) Ask(c *gin.Context) {
	var form QuestionForm
	_ = c.ShouldBind(&form)

	_, err := h.forumUseCase.AskQuestion(c.Request.Context(), middleware.CurrentUserID(c), form.Title, form.Content)
	if err != nil {
		var verr *entity.ValidationError
		errs := map[string][]string(nil)
		if errors.As(err, &verr) {
			errs = verr.Fields
		} else {
			flash.Add(c, flash.Error, "Failed to post question.")
		}
		render(c, http.StatusOK, "ask_question.html", gin.H{
			"Title":  "Ask a question",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	flash.Add(c, flash.Success, "Your question has been posted.")
	c.Redirect(http.StatusFound, HomePath)
}

// loadQuestion resolves the :id parameter, rendering 404 or 500 itself when
// it cannot.
func (h *ForumHandler) loadQuestion(c *gin.Context) (*entity.Question, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		NotFound(c)
		return nil, false
	}

	question, err := h.forumUseCase.GetQuestion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			NotFound(c)
		} else {
			serverError(c)
		}
		return nil, false
	}
	return question, true
}

func (h *ForumHandler) renderDetail(c *gin.Context, question *entity.Question, form AnswerForm, errs map[string][]string) {
	answers, err := h.forumUseCase.ListAnswers(c.Request.Context(), question.ID, middleware.CurrentUserID(c))
	if err != nil {
		answers = []*entity.Answer{}
		flash.Add(c, flash.Error, "Failed to load answers.")
	}

	render(c, http.StatusOK, "question_detail.html", gin.H{
		"Title":    question.Title,
		"Question": question,
		"Answers":  answers,
		"Form":     form,
		"Errors":   errs,
	})
}

func (h *ForumHandler) QuestionDetail(c *gin.Context) {
	question, ok := h.loadQuestion(c)
	if !ok {
		return
	}
	h.renderDetail(c, question, AnswerForm{}, nil)
}

func (h *ForumHandler) SubmitAnswer(c *gin.Context) {
	question, ok := h.loadQuestion(c)
	if !ok {
		return
	}

	var form AnswerForm
	_ = c.ShouldBind(&form)

	_, err := h.forumUseCase.SubmitAnswer(c.Request.Context(), question.ID, middleware.CurrentUserID(c), form.Content)
	if err != nil {
		var verr *entity.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderDetail(c, question, form, verr.Fields)
		case errors.Is(err, entity.ErrNotFound):
			NotFound(c)
		default:
			flash.Add(c, flash.Error, "Failed to submit answer.")
			h.renderDetail(c, question, form, nil)
		}
		return
	}

	flash.Add(c, flash.Success, "Answer submitted successfully.")
	c.Redirect(http.StatusFound, questionPath(question.ID))
}

func (h *ForumHandler) LikeAnswer(c *gin.Context) {
	answerID, ok := parseID(c, "answer_id")
	if !ok {
		NotFound(c)
		return
	}

	result, err := h.forumUseCase.ToggleLike(c.Request.Context(), answerID, middleware.CurrentUserID(c))
	if err != nil {
		var authErr *entity.AuthorizationError
		switch {
		case errors.Is(err, entity.ErrNotFound):
			NotFound(c)
		case errors.As(err, &authErr):
			flash.Add(c, flash.Warning, "You cannot like your own answer.")
			c.Redirect(http.StatusFound, questionPath(authErr.QuestionID))
		default:
			flash.Add(c, flash.Error, "Something went wrong.")
			c.Redirect(http.StatusFound, HomePath)
		}
		return
	}

	if result.Liked {
		flash.Add(c, flash.Success, "You liked the answer.")
	} else {
		flash.Add(c, flash.Info, "You unliked the answer.")
	}
	c.Redirect(http.StatusFound, questionPath(result.QuestionID))
}
