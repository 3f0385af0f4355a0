package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/foxsi02/russian-world-game/internal/game"
)

// Bot maps Telegram commands onto engine operations. The chat id doubles
// as the player id.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *game.Engine
	logger *log.Logger
	num    *message.Printer
}

func New(token string, debug bool, engine *game.Engine, logger *log.Logger) (*Bot, error) {
	if logger == nil {
		logger = log.Default()
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	api.Debug = debug
	logger.Printf("bot authorized as @%s", api.Self.UserName)

	return &Bot{
		api:    api,
		engine: engine,
		logger: logger,
		num:    message.NewPrinter(language.English),
	}, nil
}

// Run consumes the update stream until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.send(chatID, helpText)
	case "profile":
		b.handleProfile(ctx, chatID)
	case "role":
		b.handleRole(ctx, chatID, args)
	case "jobs":
		b.handleJobs(ctx, chatID)
	case "work":
		b.handleWork(ctx, chatID, args)
	case "bonus":
		b.handleBonus(ctx, chatID)
	case "top":
		b.handleTop(ctx, chatID)
	case "stats":
		b.handleStats(ctx, chatID)
	default:
		b.send(chatID, "Unknown command. Try /help.")
	}
}

const helpText = `Commands:
/start - register
/profile - your profile
/role <police|criminal|businessman|politician> - choose a role
/jobs - jobs available to you
/work <job id> - work a shift
/bonus - claim the daily bonus
/top - hall of fame
/stats - world statistics`

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	p, err := b.engine.RegisterPlayer(ctx, msg.Chat.ID, name, msg.From.UserName)
	if errors.Is(err, game.ErrPlayerExists) {
		b.send(msg.Chat.ID, "You are already in the game. /profile")
		return
	}
	if err != nil {
		b.fail(msg.Chat.ID, err)
		return
	}
	b.send(msg.Chat.ID, b.num.Sprintf("Welcome to the city, %s! Starting balance: $%d. Pick a career with /role.", p.Name, p.Balance))
}

func (b *Bot) handleProfile(ctx context.Context, chatID int64) {
	prof, err := b.engine.Profile(ctx, chatID)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, renderProfile(b.num, prof))
}

// renderProfile formats a profile reply. Skills print in sorted order so
// repeated calls read the same.
func renderProfile(num *message.Printer, prof game.ProfileResult) string {
	p := prof.Player

	var sb strings.Builder
	sb.WriteString(num.Sprintf("%s (level %d)\n", p.Name, p.Level))
	sb.WriteString(num.Sprintf("Role: %s\n", p.Role))
	sb.WriteString(num.Sprintf("Balance: $%d\n", p.Balance))
	sb.WriteString(num.Sprintf("Reputation: %d\n", p.Reputation))
	sb.WriteString(num.Sprintf("Energy: %.0f/100  Health: %.0f/100 (%s)\n", p.Energy, p.Health, prof.HealthStatus))
	if prof.Arrested {
		sb.WriteString("⚠ Under arrest\n")
	}
	if len(p.Skills) > 0 {
		sb.WriteString("Skills:\n")
		ids := make([]string, 0, len(p.Skills))
		for id := range p.Skills {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			s := p.Skills[id]
			sb.WriteString(num.Sprintf("  %s: level %d (%d/%d)\n", id, s.Level, s.Exp, s.Level*1000))
		}
	}
	return sb.String()
}

func (b *Bot) handleRole(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.send(chatID, "Usage: /role <police|criminal|businessman|politician>")
		return
	}
	res, err := b.engine.ChooseRole(ctx, chatID, args[0])
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, b.num.Sprintf("You are now a %s. Bonus: $%d, reputation %+d. New balance: $%d.",
		res.Role, res.BonusBalance, res.BonusReputation, res.Balance))
}

func (b *Bot) handleJobs(ctx context.Context, chatID int64) {
	jobs, err := b.engine.AvailableJobs(ctx, chatID)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	var sb strings.Builder
	sb.WriteString("Available jobs:\n")
	for _, j := range jobs {
		sb.WriteString(b.num.Sprintf("  %d. %s - $%d, %.0f energy\n", j.ID, j.Name, j.Salary, j.EnergyCost))
	}
	sb.WriteString("Work with /work <id>.")
	b.send(chatID, sb.String())
}

func (b *Bot) handleWork(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.send(chatID, "Usage: /work <job id>")
		return
	}
	jobID, err := strconv.Atoi(args[0])
	if err != nil {
		b.send(chatID, "Job id must be a number. See /jobs.")
		return
	}
	res, err := b.engine.WorkJob(ctx, chatID, jobID)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	text := b.num.Sprintf("Shift done: %s. Earned $%d, balance $%d, energy %.0f.",
		res.Job.Name, res.Salary, res.Balance, res.Energy)
	if res.LeveledUp {
		text += b.num.Sprintf("\n%s is now level %d!", res.Skill, res.SkillState.Level)
	}
	b.send(chatID, text)
}

func (b *Bot) handleBonus(ctx context.Context, chatID int64) {
	res, err := b.engine.ClaimDailyBonus(ctx, chatID)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, b.num.Sprintf("Daily bonus claimed: $%d. Balance: $%d.", res.Amount, res.Balance))
}

func (b *Bot) handleTop(ctx context.Context, chatID int64) {
	top, err := b.engine.HallOfFame(ctx, 10)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	var sb strings.Builder
	sb.WriteString("Hall of fame:\n")
	for i, p := range top {
		sb.WriteString(b.num.Sprintf("  %d. %s - $%d\n", i+1, p.Name, p.Balance))
	}
	b.send(chatID, sb.String())
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.engine.Statistics(ctx)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, b.num.Sprintf("Players: %d\nTotal money: $%d\nArrests: %d\nRobberies: %d\nCorporations: %d",
		stats.Players, stats.TotalBalance, stats.Arrests, stats.Robberies, stats.Corporations))
}

// fail renders engine errors in player-friendly wording.
func (b *Bot) fail(chatID int64, err error) {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound):
		b.send(chatID, "You are not registered yet. Send /start.")
	case errors.Is(err, game.ErrRoleTaken):
		b.send(chatID, "You already chose a role.")
	case errors.Is(err, game.ErrInvalidRole):
		b.send(chatID, "Pick one of: police, criminal, businessman, politician.")
	case errors.Is(err, game.ErrInsufficientEnergy):
		b.send(chatID, "Too tired. Rest a little and try again.")
	case errors.Is(err, game.ErrOnCooldown):
		b.send(chatID, "That job is still on cooldown.")
	case errors.Is(err, game.ErrArrested):
		b.send(chatID, "You are under arrest and cannot do that.")
	case errors.Is(err, game.ErrBonusClaimed):
		b.send(chatID, "Bonus already claimed today. Come back later.")
	case errors.Is(err, game.ErrJobNotFound):
		b.send(chatID, "No such job. See /jobs.")
	case errors.Is(err, game.ErrRoleMismatch):
		b.send(chatID, "That job needs a different role.")
	default:
		b.logger.Printf("bot: command failed: %v", err)
		b.send(chatID, "Something went wrong, try again.")
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Printf("bot: send to %d: %v", chatID, err)
	}
}
