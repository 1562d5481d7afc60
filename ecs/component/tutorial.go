package component

type Tutorial struct {
	Text    string
	Visible bool

	HasMoved  bool
	HasTurned bool
	HasShot   bool
}

func (t *Tutorial) Done() bool {
	return t.HasMoved && t.HasTurned && t.HasShot
}

var TutorialComponent = NewComponent[Tutorial]()
