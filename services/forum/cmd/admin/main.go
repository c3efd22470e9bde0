// Command admin performs moderation tasks that have no web surface.
//
//	admin delete-question -id 42
//	admin delete-user -username alice
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"qa-forum/pkg/config"
	"qa-forum/pkg/database"
	"qa-forum/pkg/jwt"
	"qa-forum/pkg/logger"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/repo/persistent"
	"qa-forum/services/forum/internal/usecase"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n  %[1]s delete-question -id N\n  %[1]s delete-user -username NAME\n", os.Args[0])
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New()
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	forumUseCase := usecase.NewForumUseCase(persistent.NewQuestionRepository(db), persistent.NewAnswerRepository(db), log)
	authUseCase := usecase.NewAuthUseCase(persistent.NewUserRepository(db), jwt.NewService(cfg.JWTSecret, cfg.SessionTTL), nil, log)

	if err := run(ctx, os.Args[1], os.Args[2:], forumUseCase, authUseCase); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			log.Error("Nothing to delete: %v", err)
		} else {
			log.Error("%v", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, forumUseCase usecase.ForumUseCase, authUseCase usecase.AuthUseCase) error {
	switch command {
	case "delete-question":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.Uint("id", 0, "question id")
		_ = fs.Parse(args)
		if *id == 0 {
			return errors.New("-id is required")
		}
		return forumUseCase.DeleteQuestion(ctx, *id)
	case "delete-user":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		username := fs.String("username", "", "username")
		_ = fs.Parse(args)
		if *username == "" {
			return errors.New("-username is required")
		}
		return authUseCase.DeleteUser(ctx, *username)
	default:
		usage()
		return nil
	}
}
