package animation

import (
	"log"

	"github.com/ivlev/choreo/internal/motion"
	"github.com/ivlev/choreo/internal/scenegraph"
)

// Stage owns the attachment of the actor's displayed pose frame. At most one
// frame is attached at any time.
type Stage struct {
	graph *scenegraph.Graph
	actor *motion.Actor
}

func NewStage(graph *scenegraph.Graph, actor *motion.Actor) *Stage {
	return &Stage{graph: graph, actor: actor}
}

// Swap replaces the displayed frame with next, posed at the actor's current
// transform. It reports whether anything changed.
func (s *Stage) Swap(next scenegraph.Object) bool {
	if next == nil {
		return false
	}
	cur := s.actor.Pose()
	if cur == next {
		if s.graph.Contains(next) {
			return false
		}
		s.actor.SetPose(next)
		s.graph.Add(next)
		return true
	}

	if cur != nil && !s.graph.Remove(cur) {
		log.Printf("[*] [animation] pose %s was already detached", cur.Name())
	}
	s.actor.SetPose(next)
	s.graph.Add(next)
	return true
}

// Clear detaches the displayed frame and leaves the actor without one.
func (s *Stage) Clear() {
	if cur := s.actor.Pose(); cur != nil {
		s.graph.Remove(cur)
	}
	s.actor.Detach()
}
