package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wine-interviewer/internal/config"
	"wine-interviewer/internal/console"
	"wine-interviewer/internal/interview"
	"wine-interviewer/internal/llm"
	"wine-interviewer/internal/storage"
	"wine-interviewer/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Printf("interview aborted: %v", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	guide := interview.DefaultGuide()
	if cfg.GuidePath != "" {
		g, err := interview.LoadGuide(cfg.GuidePath)
		if err != nil {
			return err
		}
		guide = g
	}

	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		return err
	}

	rec, err := newRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Close(); err != nil {
			log.Printf("failed to close store: %v", err)
		}
	}()

	opts := interview.Options{
		MinSubtopicQuestions: cfg.MinSubtopicQuestions,
		MaxEmptyAttempts:     cfg.MaxEmptyAttempts,
		HistoryWindow:        cfg.HistoryWindow,
	}

	var ch interview.Channel
	switch cfg.Channel {
	case config.ChannelTelegram:
		tg, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
		defer tg.Close()
		ch = tg
	default:
		ch = console.New(os.Stdin, os.Stdout)
		opts.EchoCorrected = true
	}

	ctrl := interview.NewController(
		guide,
		opts,
		ch,
		interview.NewLLMNormalizer(llm.Logged("normalize", client)),
		interview.NewLLMClassifier(llm.Logged("classify", client)),
		interview.NewLLMQuestioner(llm.Logged("question", client)),
		rec,
	)

	session, err := ctrl.Run(ctx)
	log.Printf("interview %s after %d questions; coverage: %s", session.Phase(), session.QuestionsAsked, session.Summary())
	if errors.Is(err, interview.ErrNoResponse) {
		_ = ch.Say(context.Background(), "It seems we lost each other. Thank you for your time.")
	}
	return err
}

func newRecorder(ctx context.Context, cfg *config.Config) (storage.Recorder, error) {
	switch cfg.StoreDriver {
	case config.StoreJSONL:
		return storage.NewFileRecorder(cfg.StorePath)
	default:
		return storage.NewSQLiteRecorder(ctx, cfg.StorePath)
	}
}
