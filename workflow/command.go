package workflow

import (
	"strings"
	"unicode"
)

// Command is a canonical bot command.
type Command string

// Bot commands.
const (
	CmdHelp   Command = "/help"
	CmdSlay   Command = "/slay"
	CmdFriday Command = "/friday"
	CmdModel  Command = "/model"
	CmdGet    Command = "/get"
	CmdList   Command = "/list"
	CmdAdd    Command = "/add"
	CmdRename Command = "/rename"
	CmdDelete Command = "/delete"
	CmdCancel Command = "/cancel"
)

type kind int

const (
	kindStateless kind = iota
	kindFlow
	kindMenu
	kindControl
)

type commandSpec struct {
	cmd         Command
	aliases     []string
	kind        kind
	description string
}

// commands is listed in help order.
var commands = []commandSpec{
	{CmdHelp, nil, kindStateless, "Показать это сообщение."},
	{CmdSlay, nil, kindMenu, "Метакоманда, предоставляющая интерфейс взаимодействия с другими командами"},
	{CmdFriday, nil, kindStateless, "Показать, сколько осталось до нефорской пятницы."},
	{CmdModel, nil, kindStateless, "Показать, какая модель сгенерировала сообщение (ответом на сообщение бота)"},
	{CmdGet, []string{"/sticker"}, kindStateless, "Отправить стикер с определенным названием.\nНапример, /sticker xdd или /get xdd"},
	{CmdList, []string{"/list_stickers"}, kindStateless, "Показать доступные стикеры"},
	{CmdAdd, []string{"/add_sticker"}, kindFlow, "Добавляет новый стикер."},
	{CmdRename, []string{"/rename_sticker"}, kindFlow, "Переименовывает существующий стикер."},
	{CmdDelete, []string{"/delete_sticker", "/remove", "/remove_sticker"}, kindFlow, "Удаляет существующий стикер."},
	{CmdCancel, nil, kindControl, "Отмена операции в рамках диалога"},
}

var byName = func() map[string]commandSpec {
	m := make(map[string]commandSpec)
	for _, spec := range commands {
		m[string(spec.cmd)] = spec
		for _, alias := range spec.aliases {
			m[alias] = spec
		}
	}
	return m
}()

// ParseCommand splits text into a known command and its argument. Matching
// is case-insensitive and a "@botname" suffix on the command is ignored.
func ParseCommand(text string) (cmd Command, arg string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	head, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, rest = text[:i], strings.TrimSpace(text[i:])
	}
	if at := strings.IndexByte(head, '@'); at >= 0 {
		head = head[:at]
	}
	spec, ok := byName[strings.ToLower(head)]
	if !ok {
		return "", "", false
	}
	return spec.cmd, rest, true
}

func kindOf(cmd Command) kind {
	return byName[string(cmd)].kind
}

// menuCommands returns every command offered by the /slay menu.
func menuCommands() []string {
	out := make([]string, 0, len(commands))
	for _, spec := range commands {
		if spec.cmd == CmdSlay || spec.cmd == CmdModel {
			continue
		}
		out = append(out, string(spec.cmd))
	}
	return out
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Поддерживаются следующие команды:\n")
	for _, spec := range commands {
		b.WriteString("\n")
		b.WriteString(string(spec.cmd))
		if len(spec.aliases) > 0 {
			b.WriteString(" (")
			b.WriteString(strings.Join(spec.aliases, ", "))
			b.WriteString(")")
		}
		b.WriteString(" - ")
		b.WriteString(spec.description)
	}
	return b.String()
}
