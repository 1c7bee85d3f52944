package dialogue

// State is the workflow step a conversation is in. The set of states is
// closed: only this package defines them.
type State interface {
	// Kind identifies the state in logs.
	Kind() string
	state()
}

// AwaitingStickerNameForAdd waits for the name of a new sticker.
type AwaitingStickerNameForAdd struct{}

// AwaitingStickerMediaForAdd waits for the sticker to store under Name.
type AwaitingStickerMediaForAdd struct {
	Name string
}

// AwaitingStickerNameForRename waits for the name of the sticker to rename.
type AwaitingStickerNameForRename struct{}

// AwaitingNewNameForRename waits for the new name of OldName.
type AwaitingNewNameForRename struct {
	OldName string
}

// AwaitingStickerNameForDelete waits for the name of the sticker to delete.
type AwaitingStickerNameForDelete struct{}

// Origin is a snapshot of the message that opened a menu.
type Origin struct {
	MessageID int
	ChatID    int64
	UserID    int64
	Text      string
}

// ShowingCommandMenu is an open command menu that only Owner may use.
type ShowingCommandMenu struct {
	Owner         int64
	Original      Origin
	MenuMessageID int
}

func (AwaitingStickerNameForAdd) Kind() string    { return "awaiting_sticker_name_for_add" }
func (AwaitingStickerMediaForAdd) Kind() string   { return "awaiting_sticker_media_for_add" }
func (AwaitingStickerNameForRename) Kind() string { return "awaiting_sticker_name_for_rename" }
func (AwaitingNewNameForRename) Kind() string     { return "awaiting_new_name_for_rename" }
func (AwaitingStickerNameForDelete) Kind() string { return "awaiting_sticker_name_for_delete" }
func (ShowingCommandMenu) Kind() string           { return "showing_command_menu" }

func (AwaitingStickerNameForAdd) state()    {}
func (AwaitingStickerMediaForAdd) state()   {}
func (AwaitingStickerNameForRename) state() {}
func (AwaitingNewNameForRename) state()     {}
func (AwaitingStickerNameForDelete) state() {}
func (ShowingCommandMenu) state()           {}
