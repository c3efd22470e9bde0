package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"qa-forum/pkg/config"
	"qa-forum/pkg/database"
	"qa-forum/pkg/jwt"
	"qa-forum/pkg/logger"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/repo/persistent"
	"qa-forum/services/forum/internal/usecase"
)

const demoPassword = "forum-demo-pass"

type seedQuestion struct {
	author  string
	title   string
	content string
	answers []seedAnswer
}

type seedAnswer struct {
	author  string
	content string
	likedBy []string
}

var demoUsers = []string{"alice", "bob", "charlie", "diana"}

var demoQuestions = []seedQuestion{
	{
		author:  "alice",
		title:   "When should I use a buffered channel?",
		content: "Unbuffered channels block until the receiver is ready. When is a buffer the right call?",
		answers: []seedAnswer{
			{author: "bob", content: "When producer and consumer run at different speeds and you can bound the backlog.", likedBy: []string{"alice", "charlie"}},
			{author: "charlie", content: "A buffer of one is handy for signalling without blocking the sender.", likedBy: []string{"diana"}},
		},
	},
	{
		author:  "bob",
		title:   "How do I cancel a long running query?",
		content: "My handler keeps running after the client disconnects.",
		answers: []seedAnswer{
			{author: "diana", content: "Pass the request context down and use WithContext on the query.", likedBy: []string{"bob"}},
		},
	},
	{
		author:  "charlie",
		title:   "Is it fine to share a DB handle between goroutines?",
		content: "Or should every goroutine open its own connection?",
	},
}

func main() {
	var migrate bool
	flag.BoolVar(&migrate, "migrate", true, "apply pending migrations first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	if migrate {
		if err := database.Migrate(ctx, db, cfg.DBDriver, log); err != nil {
			log.Error("Failed to apply migrations: %v", err)
			panic(err)
		}
	}

	userRepo := persistent.NewUserRepository(db)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwt.NewService(cfg.JWTSecret, cfg.SessionTTL), nil, log)
	forumUseCase := usecase.NewForumUseCase(persistent.NewQuestionRepository(db), persistent.NewAnswerRepository(db), log)

	if err := seedDatabase(ctx, userRepo, authUseCase, forumUseCase, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully! Every demo user logs in with %q", demoPassword)
}

func seedDatabase(
	ctx context.Context,
	userRepo persistent.UserRepository,
	authUseCase usecase.AuthUseCase,
	forumUseCase usecase.ForumUseCase,
	log *logger.Logger,
) error {
	ids := make(map[string]uint, len(demoUsers))
	for _, name := range demoUsers {
		user, err := authUseCase.Register(ctx, usecase.RegistrationInput{
			Username:        name,
			Email:           name + "@example.com",
			Password:        demoPassword,
			PasswordConfirm: demoPassword,
		})
		var verr *entity.ValidationError
		switch {
		case err == nil:
			log.Info("Created user %s", name)
		case errors.As(err, &verr):
			// Already seeded.
			user, err = userRepo.GetByUsername(ctx, name)
			if err != nil {
				return fmt.Errorf("user %s: %w", name, err)
			}
			log.Info("User %s already exists, reusing", name)
		default:
			return fmt.Errorf("register %s: %w", name, err)
		}
		ids[name] = user.ID
	}

	existing, err := forumUseCase.ListQuestions(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("Questions already present, skipping content")
		return nil
	}

	for _, sq := range demoQuestions {
		question, err := forumUseCase.AskQuestion(ctx, ids[sq.author], sq.title, sq.content)
		if err != nil {
			return fmt.Errorf("ask %q: %w", sq.title, err)
		}

		for _, sa := range sq.answers {
			answer, err := forumUseCase.SubmitAnswer(ctx, question.ID, ids[sa.author], sa.content)
			if err != nil {
				return fmt.Errorf("answer %q: %w", sq.title, err)
			}
			for _, liker := range sa.likedBy {
				if _, err := forumUseCase.ToggleLike(ctx, answer.ID, ids[liker]); err != nil {
					return fmt.Errorf("like answer %d: %w", answer.ID, err)
				}
			}
		}
		log.Info("Created question %q with %d answers", sq.title, len(sq.answers))
	}

	return nil
}
