// Package scenegraph is the minimal retained world the choreography engine
// writes into: a flat list of attached objects plus a camera. Mesh data is
// never interpreted here; a node only remembers where it came from.
package scenegraph

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Object is anything that can be attached to the world and posed on the
// ground plane.
type Object interface {
	Name() string
	SetPosition(p mgl64.Vec3)
	SetRotationY(yaw float64)
	Position() mgl64.Vec3
	RotationY() float64
}

type Kind int

const (
	KindPose Kind = iota
	KindProp
	KindCamera
	KindRig
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindPose:
		return "pose"
	case KindProp:
		return "prop"
	case KindCamera:
		return "camera"
	case KindRig:
		return "rig"
	case KindLight:
		return "light"
	}
	return "unknown"
}

// Node is a renderable placeholder for a pre-baked asset.
type Node struct {
	name     string
	Kind     Kind
	Source   string
	Size     int64
	position mgl64.Vec3
	yaw      float64
}

func NewNode(name string, kind Kind) *Node {
	return &Node{name: name, Kind: kind}
}

func (n *Node) Name() string { return n.name }
func (n *Node) SetPosition(p mgl64.Vec3) { n.position = p }
func (n *Node) SetRotationY(yaw float64) { n.yaw = yaw }
func (n *Node) Position() mgl64.Vec3 { return n.position }
func (n *Node) RotationY() float64 { return n.yaw }

// Graph keeps attached objects in insertion order.
type Graph struct {
	children []Object
}

func NewGraph() *Graph {
	return &Graph{}
}

// Add attaches obj. Adding an object that is already attached does nothing
// and reports false.
func (g *Graph) Add(obj Object) bool {
	if obj == nil || g.Contains(obj) {
		return false
	}
	g.children = append(g.children, obj)
	return true
}

// Remove detaches obj. Removing an absent object is a no-op that reports false.
func (g *Graph) Remove(obj Object) bool {
	for i, c := range g.children {
		if c == obj {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

func (g *Graph) Contains(obj Object) bool {
	for _, c := range g.children {
		if c == obj {
			return true
		}
	}
	return false
}

// Children returns a snapshot of the attached objects.
func (g *Graph) Children() []Object {
	out := make([]Object, len(g.children))
	copy(out, g.children)
	return out
}

func (g *Graph) Len() int {
	return len(g.children)
}

// Clear detaches everything except the objects in keep and returns how many
// objects were removed.
func (g *Graph) Clear(keep ...Object) int {
	kept := g.children[:0]
	removed := 0
	for _, c := range g.children {
		if containsObject(keep, c) {
			kept = append(kept, c)
			continue
		}
		removed++
	}
	for i := len(kept); i < len(g.children); i++ {
		g.children[i] = nil
	}
	g.children = kept
	return removed
}

func containsObject(list []Object, obj Object) bool {
	for _, o := range list {
		if o == obj {
			return true
		}
	}
	return false
}
