// Package animation plays pre-baked pose frames for the actor: a state
// machine picks the clip and frame, a Stage swaps the displayed frame.
package animation

import (
	"github.com/ivlev/choreo/internal/scenegraph"
)

// Clips supplies frame arrays by clip name.
type Clips interface {
	Clip(name string) ([]scenegraph.Object, bool)
}

// Library holds the loaded clips and static props of a production.
type Library struct {
	clips map[string][]scenegraph.Object
	props map[string]*scenegraph.Node
}

func NewLibrary() *Library {
	return &Library{
		clips: make(map[string][]scenegraph.Object),
		props: make(map[string]*scenegraph.Node),
	}
}

func (l *Library) AddClip(name string, frames []scenegraph.Object) {
	l.clips[name] = frames
}

func (l *Library) Clip(name string) ([]scenegraph.Object, bool) {
	frames, ok := l.clips[name]
	return frames, ok
}

func (l *Library) AddProp(name string, node *scenegraph.Node) {
	l.props[name] = node
}

func (l *Library) Prop(name string) (*scenegraph.Node, bool) {
	n, ok := l.props[name]
	return n, ok
}

// Counts returns the number of clips and props loaded.
func (l *Library) Counts() (clips, props int) {
	return len(l.clips), len(l.props)
}
