package models

type MessageKind int

const (
	KindNone MessageKind = iota
	KindSuccess
	KindError
)

// Message is the last user-visible outcome of a screen action.
type Message struct {
	Text string
	Kind MessageKind
}

func Success(text string) Message { return Message{Text: text, Kind: KindSuccess} }
func Failure(text string) Message { return Message{Text: text, Kind: KindError} }
