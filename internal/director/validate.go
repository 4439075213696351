package director

import (
	"errors"
	"fmt"
)

func (s *Script) applyDefaults() {
	if s.Version == "" {
		s.Version = "1.0"
	}
	for i := range s.Scenes {
		sc := &s.Scenes[i]
		if sc.Kind == "" {
			sc.Kind = KindScripted
		}
		for j := range sc.Waypoints {
			if sc.Waypoints[j].Movement == "" {
				sc.Waypoints[j].Movement = MoveStatic
			}
		}
		for j := range sc.Camera {
			if sc.Camera[j].Movement == "" {
				sc.Camera[j].Movement = CameraStatic
			}
		}
		for j := range sc.States {
			if sc.States[j].Mode == "" {
				sc.States[j].Mode = "cyclic"
			}
			if sc.States[j].TicksPerFrame <= 0 {
				sc.States[j].TicksPerFrame = 1
			}
		}
	}
}

// Validate reports every problem in the script at once.
func (s *Script) Validate() error {
	var errs []error
	if len(s.Scenes) == 0 {
		errs = append(errs, errors.New("script has no scenes"))
	}

	for i, sc := range s.Scenes {
		prefix := fmt.Sprintf("scene %d (%s)", i, sc.Name)
		switch sc.Kind {
		case KindScripted:
		case KindInterlude:
			if sc.Duration <= 0 {
				errs = append(errs, fmt.Errorf("%s: interlude duration must be positive", prefix))
			}
		default:
			errs = append(errs, fmt.Errorf("%s: unknown kind %q", prefix, sc.Kind))
		}

		states := make(map[string]bool, len(sc.States))
		for _, st := range sc.States {
			if st.Name == "" {
				errs = append(errs, fmt.Errorf("%s: state without a name", prefix))
			}
			if states[st.Name] {
				errs = append(errs, fmt.Errorf("%s: duplicate state %q", prefix, st.Name))
			}
			states[st.Name] = true
			if st.Mode != "cyclic" && st.Mode != "finite" {
				errs = append(errs, fmt.Errorf("%s: state %q has unknown mode %q", prefix, st.Name, st.Mode))
			}
			if st.LoopFrom != nil && *st.LoopFrom < 0 {
				errs = append(errs, fmt.Errorf("%s: state %q loop_from must not be negative", prefix, st.Name))
			}
			if st.Hold < 0 {
				errs = append(errs, fmt.Errorf("%s: state %q hold must not be negative", prefix, st.Name))
			}
		}
		if sc.InitialState != "" && !states[sc.InitialState] {
			errs = append(errs, fmt.Errorf("%s: unknown initial state %q", prefix, sc.InitialState))
		}

		for j, w := range sc.Waypoints {
			if w.Duration <= 0 {
				errs = append(errs, fmt.Errorf("%s: waypoint %d duration must be positive", prefix, j))
			}
			switch w.Movement {
			case MoveStatic, MoveTeleport, MoveSmooth:
			default:
				errs = append(errs, fmt.Errorf("%s: waypoint %d has unknown movement %q", prefix, j, w.Movement))
			}
			if w.Animation != "" && len(sc.States) > 0 && !states[w.Animation] {
				errs = append(errs, fmt.Errorf("%s: waypoint %d uses unknown state %q", prefix, j, w.Animation))
			}
		}

		for j, k := range sc.Camera {
			if k.Duration <= 0 {
				errs = append(errs, fmt.Errorf("%s: camera keyframe %d duration must be positive", prefix, j))
			}
			switch k.Movement {
			case CameraStatic, CameraSmoothApproach, CameraSmoothZoomOut:
			default:
				errs = append(errs, fmt.Errorf("%s: camera keyframe %d has unknown movement %q", prefix, j, k.Movement))
			}
		}

		for j, m := range sc.Music {
			if m.End <= m.Start {
				errs = append(errs, fmt.Errorf("%s: music cue %d ends before it starts", prefix, j))
			}
		}
	}

	return errors.Join(errs...)
}
