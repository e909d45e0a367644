package chat

type Command interface {
	RoomKey() RoomKey
}

type LoadChatCommand struct {
	From Identity `validate:"required"`
	To   Identity `validate:"required"`
}

func (c LoadChatCommand) RoomKey() RoomKey {
	return NewRoomKey(c.From, c.To)
}

type SendMessageCommand struct {
	From Identity `validate:"required"`
	To   Identity `validate:"required"`
	Body string   `validate:"required"`
}

func (c SendMessageCommand) RoomKey() RoomKey {
	return NewRoomKey(c.From, c.To)
}
