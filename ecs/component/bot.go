package component

// Bot marks a tank driven by a tengo script instead of the keyboard.
type Bot struct {
	Script string
}

var BotComponent = NewComponent[Bot]()
