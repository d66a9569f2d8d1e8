package dialogue

// DirectiveType tells the telephony gateway how to finish the turn.
type DirectiveType string

const (
	// DirectiveSay speaks text and opens another recording window.
	DirectiveSay DirectiveType = "say"
	// DirectivePlay plays a pre-rendered audio file and ends the turn.
	DirectivePlay DirectiveType = "play"
)

type Directive struct {
	Type     DirectiveType
	Message  string
	AudioURL string
}

func Say(message string) Directive {
	return Directive{Type: DirectiveSay, Message: message}
}

func Play(audioURL string) Directive {
	return Directive{Type: DirectivePlay, AudioURL: audioURL}
}
