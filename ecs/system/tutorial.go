package system

import (
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// TutorialSystem hides a tank's control hints once its driver has used
// every control.
type TutorialSystem struct{}

func NewTutorialSystem() *TutorialSystem {
	return &TutorialSystem{}
}

func (s *TutorialSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.TutorialComponent, func(_ ecs.Entity, tutorial *component.Tutorial) {
		if tutorial.Visible && tutorial.Done() {
			tutorial.Visible = false
		}
	})
}

// TutorialText is the control hint shown over a tank.
func TutorialText(moveKeys, shootKeys string) string {
	return "CONTROLS\n\n Press " + moveKeys + " to move around.\n Hold " + shootKeys + " to shoot."
}
