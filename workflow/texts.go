package workflow

// Replies sent to the chat.
const (
	textChannelsUnsupported = "Каналы не поддерживаются"
	textBusy                = "Сначала заверши текущую операцию или отправь /cancel"
	textCancelled           = "Операция отменена."
	textNameRequired        = "Пожалуйста, укажите название"

	textAddAskName      = "Введите название нового стикера"
	textAddAskSticker   = "Отправь мне стикер для '%s'"
	textAddNameTaken    = "Стикер с именем %s уже существует, попробуй другое"
	textAddNotSticker   = "Это не стикер. Отправьте стикер или /cancel."
	textAddSaved        = "Стикер '%s' сохранен! 🎉"
	textAddRaceConflict = "Стикер '%s' уже существует. Попробуйте другое имя"
	textAddFailed       = "Произошла ошибка сохранения стикера"

	textRenameAskOld    = "Введите название стикера для переименования"
	textRenameUnknown   = "Стикер с именем %s не существует, попробуй другое"
	textRenameAskNew    = "Отправь новое имя для стикера '%s'"
	textRenameSaved     = "Новое имя '%s' сохранено! 🎉"
	textRenameNameTaken = "Стикер с именем %s уже существует, попробуй другое"
	textRenameFailed    = "Произошла неизвестная ошибка"

	textDeleteAskName = "Введите название стикера для удаления"
	textDeleteDone    = "Стикер %s успешно удален"
	textDeleteUnknown = "Стикер с названием %s не найден"
	textDeleteFailed  = "Произошла ошибка удаления стикера"

	textStickerUnknown = "Стикера с таким названием нет"
	textListEmpty      = "Список стикеров пуст"
	textListHeader     = "Доступные стикеры:"
	textChooseOption   = "Выберите опцию"
	textChooseCommand  = "Выберите команду"

	textModelNotReply = "Команда должна быть ответом на сообщение бота"
	textModelNoText   = "Это сообщение не сгенерировано ботом"
	textModelFound    = "Это сообщение сгенерировано: %s"
	textModelUnknown  = "Информации про это сообщение не найдено"

	textFridayCountdown = "До нефорской пятницы осталось: %s 🕷️ Готовь свой лучший аутфит. ⛓️"
	textFridayToday     = "SLAAAAAY! 💅🔥🖤 ЭТО НЕФОРСКАЯ ПЯТНИЦА, ДЕТКА! 🤘😈⛓️ Время сиять! ✨"

	textGenerationFailed = "Не получилось сгенерировать ответ, попробуй позже"
)
