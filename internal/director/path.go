package director

import (
	"log"

	"github.com/ivlev/choreo/internal/clock"
	"github.com/ivlev/choreo/internal/motion"
)

// Mover is the actor surface a Path drives.
type Mover interface {
	Transform() motion.Transform
	SetTransform(t motion.Transform)
	StartMovement(req motion.Request, driver motion.Driver) bool
	StepMovement(dt float64) bool
	FinishMovement()
	StopMovement()
	Moving() bool
	Driver() motion.Driver
}

// Path plays an ordered list of waypoints against a scene clock. A waypoint
// is left once it has been active for its duration; its exact pose is
// committed first so interpolation error never carries over.
type Path struct {
	clock     *clock.Clock
	actor     Mover
	waypoints []Waypoint

	index    int
	start    float64
	started  bool
	complete bool

	// OnEnter runs after a waypoint's movement has been dispatched.
	OnEnter func(index int, wp Waypoint)
	// OnComplete runs once, when the last waypoint has elapsed.
	OnComplete func()
}

func NewPath(clk *clock.Clock, actor Mover, waypoints []Waypoint) *Path {
	wps := make([]Waypoint, len(waypoints))
	copy(wps, waypoints)
	return &Path{clock: clk, actor: actor, waypoints: wps}
}

// Start activates the first waypoint at the current timeline.
func (p *Path) Start() {
	p.index = 0
	p.start = p.clock.Now()
	p.started = true
	p.complete = false
	if len(p.waypoints) == 0 {
		return
	}
	p.enter(0)
}

// Advance runs one update. The scene clock must already include dt.
func (p *Path) Advance(dt float64) {
	if !p.started {
		p.Start()
	}
	if p.complete {
		return
	}
	if len(p.waypoints) == 0 {
		p.finish()
		return
	}

	wp := p.waypoints[p.index]
	if p.clock.Now()-p.start >= wp.Duration {
		p.commit(wp)
		if p.index == len(p.waypoints)-1 {
			p.finish()
			return
		}
		p.index++
		p.start += wp.Duration
		p.enter(p.index)
		return
	}

	if wp.Movement == MoveSmooth && p.actor.Moving() && p.actor.Driver() == motion.DriverPath {
		p.actor.StepMovement(dt)
	}
}

// Append adds waypoints to the end of the path. A completed path resumes
// with the first appended waypoint on the next Advance.
func (p *Path) Append(wps ...Waypoint) {
	if len(wps) == 0 {
		return
	}
	resume := p.complete && len(p.waypoints) > 0
	p.waypoints = append(p.waypoints, wps...)
	if resume {
		p.complete = false
		p.index++
		p.start = p.clock.Now()
		p.enter(p.index)
	}
}

// commit ends any live movement and writes the exact waypoint pose. A
// movement started outside the path is dropped, not finished.
func (p *Path) commit(wp Waypoint) {
	if p.actor.Moving() {
		if p.actor.Driver() == motion.DriverPath {
			p.actor.FinishMovement()
		} else {
			log.Printf("[!] [path] waypoint %d ended during a free movement, stopping it", p.index)
			p.actor.StopMovement()
		}
	}
	p.actor.SetTransform(wp.Pose())
}

func (p *Path) enter(i int) {
	wp := p.waypoints[i]
	if wp.Description != "" {
		log.Printf("[*] [path] waypoint %d: %s", i, wp.Description)
	}

	switch wp.Movement {
	case MoveSmooth:
		rot := wp.Rotation
		ok := p.actor.StartMovement(motion.Request{
			Target:   wp.Position,
			Rotation: &rot,
			Duration: wp.Duration,
			AutoFace: wp.AutoFace,
		}, motion.DriverPath)
		if !ok {
			log.Printf("[!] [path] waypoint %d: no actor to move, teleporting", i)
			p.actor.SetTransform(wp.Pose())
		}
	default:
		p.actor.SetTransform(wp.Pose())
	}

	if p.OnEnter != nil {
		p.OnEnter(i, wp)
	}
}

func (p *Path) finish() {
	p.complete = true
	log.Printf("[+] [path] complete after %d waypoints", len(p.waypoints))
	if p.OnComplete != nil {
		p.OnComplete()
	}
}

func (p *Path) Index() int { return p.index }

func (p *Path) Len() int { return len(p.waypoints) }

func (p *Path) Complete() bool { return p.complete }

// Current returns the active waypoint.
func (p *Path) Current() (Waypoint, bool) {
	if !p.started || len(p.waypoints) == 0 {
		return Waypoint{}, false
	}
	return p.waypoints[p.index], true
}

// Elapsed is the time spent in the active waypoint.
func (p *Path) Elapsed() float64 {
	if !p.started {
		return 0
	}
	return p.clock.Now() - p.start
}
