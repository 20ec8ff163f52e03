// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"ultimate-bot/internal/bot"
	"ultimate-bot/internal/bot/filters"
	"ultimate-bot/internal/cards"
	"ultimate-bot/internal/config"
	"ultimate-bot/internal/db/postgres"
	"ultimate-bot/internal/features/admin"
	"ultimate-bot/internal/features/fun"
	"ultimate-bot/internal/features/games"
	"ultimate-bot/internal/features/moderation"
	"ultimate-bot/internal/features/progression"
	"ultimate-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Рендер карточек ===
	renderer, err := cards.NewRenderer(cfg.Location())
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации рендера карточек: %w", err)
	}

	// === 4. Репозитории ===
	progressRepo := progression.NewRepository(pool)
	modRepo := moderation.NewRepository(pool)

	// === 5. Сервисы ===
	progressService := progression.NewService(progressRepo, cfg)
	modService := moderation.NewService(modRepo)
	adminService := admin.NewService(cfg)

	// === 6. Обработчики ===
	progressHandler := progression.NewHandler(progressService, botAPI, renderer, cfg)
	gamesHandler := games.NewHandler(botAPI, progressService)
	funClient := fun.NewClient(cfg.JokeAPIURL, cfg.MemeAPIURL, cfg.FunAPITimeout)
	funHandler := fun.NewHandler(botAPI, progressService, funClient)
	modHandler := moderation.NewHandler(modService, adminService, botAPI, renderer, cfg)

	// === 7. Фильтры ===
	chatFilter := filters.NewChatFilter(cfg.AllowedChatIDs)

	// === 8. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		progressService, progressHandler,
		gamesHandler,
		funHandler,
		modHandler,
		adminService,
		chatFilter,
	)

	// === 9. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg, progressService, b.SendMessageToChat)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Users},
		{2, migration002Warns},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.
// Также доступны как .sql файлы в папке migrations/.

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    user_id BIGINT NOT NULL,
    chat_id BIGINT NOT NULL,
    username VARCHAR(255),
    xp BIGINT NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 1,
    last_daily DATE,
    last_active TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW(),
    PRIMARY KEY (user_id, chat_id)
);
CREATE INDEX IF NOT EXISTS idx_users_chat_xp ON users(chat_id, xp DESC);
`

var migration002Warns = `
CREATE TABLE IF NOT EXISTS warns (
    warn_id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    chat_id BIGINT NOT NULL,
    reason TEXT NOT NULL,
    admin_id BIGINT NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_warns_user_chat ON warns(user_id, chat_id);
`
