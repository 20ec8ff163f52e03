package bot

import "strings"

// CommandParser разбирает команды вида /cmd, /cmd@botname и аргументы.
type CommandParser struct {
	botUsername string
}

// NewCommandParser создаёт парсер. botUsername — без @, нужен чтобы
// отбрасывать команды, адресованные другим ботам в группе.
func NewCommandParser(botUsername string) *CommandParser {
	return &CommandParser{botUsername: strings.ToLower(botUsername)}
}

// ParseCommand разбирает текст на команду и аргументы.
// Возвращает false, если текст не команда или команда адресована
// другому боту (/cmd@someoneelse).
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}

	parts := strings.Fields(strings.TrimPrefix(text, "/"))
	if len(parts) == 0 || parts[0] == "" {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	if at := strings.Index(command, "@"); at >= 0 {
		mention := command[at+1:]
		command = command[:at]
		if command == "" {
			return "", nil, false
		}
		if p.botUsername != "" && mention != p.botUsername {
			return "", nil, false
		}
	}

	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	return command, args, true
}

// commandAliases сводит альтернативные написания команд к каноническим.
var commandAliases = map[string]string{
	"roll":              "dice",
	"flip":              "coinflip",
	"rockpaperscissors": "rps",
	"stats":             "rank",
	"leaderboard":       "top",
}

// canonicalCommand возвращает каноническое имя для известных алиасов,
// прочие команды отдаёт как есть.
func canonicalCommand(cmd string) string {
	if canon, ok := commandAliases[cmd]; ok {
		return canon
	}
	return cmd
}
