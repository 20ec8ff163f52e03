// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежедневный дайджест топа чатов.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"ultimate-bot/internal/config"
	"ultimate-bot/internal/features/progression"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron            *cron.Cron
	cfg             *config.Config
	progressService *progression.Service
	sendFunc        func(chatID int64, text string)
}

// NewScheduler создаёт планировщик задач в часовом поясе из конфига.
func NewScheduler(cfg *config.Config, progressService *progression.Service, sendFunc func(chatID int64, text string)) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Location()))

	return &Scheduler{
		cron:            c,
		cfg:             cfg,
		progressService: progressService,
		sendFunc:        sendFunc,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.cfg.FeatureDigestEnabled {
		log.Info("Дайджест отключён, планировщик не запускается")
		return
	}

	// Утренний дайджест в 09:00
	s.cron.AddFunc("0 9 * * *", func() {
		log.Info("[CRON] Ежедневный дайджест")
		s.runDigest(ctx)
	})

	s.cron.Start()
	log.WithField("tz", s.cfg.Location().String()).Info("Планировщик задач запущен")
}

// runDigest рассылает топ-5 по каждому активному чату.
// Ошибка в одном чате не мешает остальным.
func (s *Scheduler) runDigest(ctx context.Context) {
	chatIDs, err := s.progressService.ActiveScopes(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] Не удалось получить список чатов")
		return
	}

	for _, chatID := range chatIDs {
		top, err := s.progressService.GetTop(ctx, chatID, 5)
		if err != nil {
			log.WithError(err).WithField("chat_id", chatID).Error("[CRON] Не удалось получить топ")
			continue
		}
		if len(top) == 0 {
			continue
		}

		text := "☀️ *Good morning! Yesterday's top:*\n\n" + progression.FormatTopText(top)
		s.sendFunc(chatID, text)
	}

	log.WithField("chats", len(chatIDs)).Info("[CRON] Дайджест разослан")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
