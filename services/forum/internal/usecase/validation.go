package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"qa-forum/services/forum/internal/entity"

	"github.com/go-playground/validator/v10"
)

const (
	MinTitleLength     = 10
	MaxTitleLength     = 255
	MaxUsernameLength  = 150
	MaxEmailLength     = 254
	MinPasswordLength  = 8
	msgRequired        = "This field is required."
	msgTitleTooShort   = "Title must be at least 10 characters long."
	msgContentEmpty    = "Content cannot be empty."
	msgAnswerEmpty     = "Answer cannot be empty or just spaces."
	msgEmailInUse      = "Email is already in use."
	msgUsernameTaken   = "A user with that username already exists."
	msgPasswordsDiffer = "The two password fields didn't match."
	msgInvalidEmail    = "Enter a valid email address."
	msgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgPasswordShort   = "This password is too short. It must contain at least 8 characters."
	msgPasswordNumeric = "This password is entirely numeric."
	msgPasswordSimilar = "The password is too similar to the username."
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	numericPattern  = regexp.MustCompile(`^[0-9]+$`)
	validate        = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

type QuestionInput struct {
	Title   string
	Content string
}

type RegistrationInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

func tooLong(limit int, value string) string {
	return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", limit, utf8.RuneCountInString(value))
}

// ValidateQuestion trims the inputs and checks them; it touches no storage.
func ValidateQuestion(title, content string) (QuestionInput, error) {
	in := QuestionInput{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	verr := entity.NewValidationError()

	switch n := utf8.RuneCountInString(in.Title); {
	case n < MinTitleLength:
		verr.Add("title", msgTitleTooShort)
	case n > MaxTitleLength:
		verr.Add("title", tooLong(MaxTitleLength, in.Title))
	}
	if in.Content == "" {
		verr.Add("content", msgContentEmpty)
	}

	return in, verr.Err()
}

func ValidateAnswer(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		verr := entity.NewValidationError()
		verr.Add("content", msgAnswerEmpty)
		return "", verr
	}
	return content, nil
}

// ValidateRegistration checks the shape of a sign-up form. Uniqueness of
// username and email is checked against storage by the auth use case.
func ValidateRegistration(in RegistrationInput) (RegistrationInput, error) {
	in, verr := validateRegistration(in)
	return in, verr.Err()
}

func validateRegistration(in RegistrationInput) (RegistrationInput, *entity.ValidationError) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	verr := entity.NewValidationError()

	switch {
	case in.Username == "":
		verr.Add("username", msgRequired)
	case utf8.RuneCountInString(in.Username) > MaxUsernameLength:
		verr.Add("username", tooLong(MaxUsernameLength, in.Username))
	case validate.Var(in.Username, "username") != nil:
		verr.Add("username", msgInvalidUsername)
	}

	switch {
	case in.Email == "":
		verr.Add("email", msgRequired)
	case utf8.RuneCountInString(in.Email) > MaxEmailLength:
		verr.Add("email", tooLong(MaxEmailLength, in.Email))
	case validate.Var(in.Email, "email") != nil:
		verr.Add("email", msgInvalidEmail)
	}

	if in.Password == "" {
		verr.Add("password1", msgRequired)
	}
	switch {
	case in.PasswordConfirm == "":
		verr.Add("password2", msgRequired)
	case in.Password != "" && in.Password != in.PasswordConfirm:
		verr.Add("password2", msgPasswordsDiffer)
	case in.Password != "":
		for _, msg := range passwordProblems(in.Password, in.Username) {
			verr.Add("password2", msg)
		}
	}

	return in, verr
}

func passwordProblems(password, username string) []string {
	var problems []string
	if username != "" && strings.EqualFold(password, username) {
		problems = append(problems, msgPasswordSimilar)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		problems = append(problems, msgPasswordShort)
	}
	if numericPattern.MatchString(password) {
		problems = append(problems, msgPasswordNumeric)
	}
	return problems
}
