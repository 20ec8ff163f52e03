// Package filters отвечает за то, в каких чатах бот вообще работает.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ChatFilter пропускает сообщения только из разрешённых чатов.
// Пустой список allowed означает "любые группы". Личные чаты
// пропускаются всегда (там живёт /login).
type ChatFilter struct {
	allowed map[int64]bool
}

func NewChatFilter(allowedChatIDs []int64) *ChatFilter {
	allowed := make(map[int64]bool, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = true
	}
	return &ChatFilter{allowed: allowed}
}

// CheckAccess сообщает, надо ли обрабатывать сообщение из этого чата.
func (f *ChatFilter) CheckAccess(message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Debug("nil message.From (сервисное сообщение?)")
		return false
	}

	if message.Chat.IsPrivate() {
		return true
	}

	if len(f.allowed) == 0 {
		return true
	}

	if f.allowed[message.Chat.ID] {
		return true
	}

	log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
	}).Info("deny: чат не в списке разрешённых")
	return false
}
