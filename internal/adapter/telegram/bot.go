package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"legal-intake-bot/internal/config"
	"legal-intake-bot/internal/usecase/intake"
)

const chunkSize = 2048

type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    config.Config
	intake *intake.Service
	logger *zap.Logger
}

func NewBot(cfg config.Config, intakeSvc *intake.Service, logger *zap.Logger) (*Bot, error) {
	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Bot{
		api:    api,
		cfg:    cfg,
		intake: intakeSvc,
		logger: logger,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			msg := update.Message
			if msg.From == nil {
				continue
			}
			go b.handleMessage(ctx, update.UpdateID, msg)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, updateID int, msg *tgbotapi.Message) {
	start := time.Now()
	logger := b.logger.With(
		zap.Int("update_id", updateID),
		zap.Int64("user_id", msg.From.ID),
		zap.Int64("chat_id", msg.Chat.ID),
	)
	ctx = ctxzap.ToContext(ctx, logger)
	defer func() {
		logger.Debug("telegram update processed", zap.Duration("duration", time.Since(start)))
	}()

	if !isAllowedUser(msg.From.ID, b.cfg) {
		logger.Warn("access denied")
		b.sendText(ctx, msg.Chat.ID, msg.MessageID, "access denied")
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	current, ok := b.intake.Snapshot(msg.Chat.ID)
	switch nextAction(current, ok, msg.Text) {
	case actionStart:
		b.startIntake(ctx, msg.Chat.ID)
		return
	case actionPending:
		b.sendText(ctx, msg.Chat.ID, msg.MessageID, pendingText)
		return
	case actionFinished:
		b.sendText(ctx, msg.Chat.ID, msg.MessageID, finishedText)
		return
	case actionIgnore:
		return
	}

	b.sendChatAction(ctx, msg.Chat.ID)

	conv, accepted := b.intake.Handle(ctx, msg.Chat.ID, msg.Text)
	if !accepted {
		return
	}

	prompt, asking := b.intake.CurrentPrompt(conv)
	b.sendText(ctx, msg.Chat.ID, msg.MessageID, replyFor(conv, prompt, asking))
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "restart":
		b.startIntake(ctx, msg.Chat.ID)
	case "cancel":
		b.intake.Cancel(ctx, msg.Chat.ID)
		b.sendText(ctx, msg.Chat.ID, msg.MessageID, cancelledText)
	case "transcript":
		conv, ok := b.intake.Snapshot(msg.Chat.ID)
		if !ok || len(conv.Transcript) == 0 {
			b.sendText(ctx, msg.Chat.ID, msg.MessageID, "nothing recorded yet, send /start")
			return
		}
		b.sendText(ctx, msg.Chat.ID, msg.MessageID, renderTranscript(conv.Transcript))
	default:
		b.sendText(ctx, msg.Chat.ID, msg.MessageID, helpText)
	}
}

func (b *Bot) startIntake(ctx context.Context, chatID int64) {
	conv := b.intake.Start(ctx, chatID)
	prompt, _ := b.intake.CurrentPrompt(conv)
	b.sendText(ctx, chatID, 0, greetingText)
	b.sendText(ctx, chatID, 0, prompt)
}

func (b *Bot) sendText(ctx context.Context, chatID int64, replyTo int, text string) {
	chunks := splitText(text, chunkSize)
	for idx, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if idx == 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := b.api.Send(msg); err != nil {
			ctxzap.Extract(ctx).Error("failed to send reply", zap.Error(err))
		}
	}
}

func (b *Bot) sendChatAction(ctx context.Context, chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		ctxzap.Extract(ctx).Warn("failed to send chat action", zap.Error(err))
	}
}

func isAllowedUser(userID int64, cfg config.Config) bool {
	for _, id := range cfg.AdminUserIDs {
		if id == userID {
			return true
		}
	}

	if len(cfg.AllowedUserIDs) == 0 {
		return true
	}

	for _, id := range cfg.AllowedUserIDs {
		if id == userID {
			return true
		}
	}

	return false
}
