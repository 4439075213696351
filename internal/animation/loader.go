package animation

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/choreo/internal/scenegraph"
	"github.com/ivlev/choreo/internal/source"
)

// Loader builds a Library from clip directories and prop files.
type Loader struct {
	Root    string
	Workers int
}

// Load reads every clip and prop. Missing entries are logged and skipped so
// the states that use them degrade to holding their last pose; read errors
// on files that do exist fail the load.
func (l *Loader) Load(ctx context.Context, clips, props map[string]string) (*Library, error) {
	lib := NewLibrary()

	for _, name := range sortedKeys(clips) {
		frames, err := l.loadClip(ctx, name, l.resolve(clips[name]))
		if err != nil {
			return nil, err
		}
		if frames == nil {
			continue
		}
		lib.AddClip(name, frames)
	}

	for _, name := range sortedKeys(props) {
		path := l.resolve(props[name])
		info, err := os.Stat(path)
		if err != nil {
			log.Printf("[!] [loader] prop %q: %v", name, err)
			continue
		}
		node := scenegraph.NewNode(name, scenegraph.KindProp)
		node.Source = path
		node.Size = info.Size()
		lib.AddProp(name, node)
	}

	c, p := lib.Counts()
	fmt.Printf("[*] Assets loaded: %d clips, %d props\n", c, p)
	return lib, nil
}

func (l *Loader) loadClip(ctx context.Context, name, dir string) ([]scenegraph.Object, error) {
	src, err := source.NewDirSource(dir)
	if err != nil {
		log.Printf("[!] [loader] clip %q: %v", name, err)
		return nil, nil
	}
	defer src.Close()

	count := src.FrameCount()
	if count == 0 {
		log.Printf("[!] [loader] clip %q has no frames in %s", name, dir)
		return nil, nil
	}

	frames := make([]scenegraph.Object, count)
	g, ctx := errgroup.WithContext(ctx)
	if l.Workers > 0 {
		g.SetLimit(l.Workers)
	}
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := src.ReadFrame(i)
			if err != nil {
				return fmt.Errorf("clip %s frame %d: %w", name, i, err)
			}
			path := src.FramePath(i)
			node := scenegraph.NewNode(fmt.Sprintf("%s_%d", name, i), scenegraph.KindPose)
			node.Source = path
			node.Size = int64(len(data))
			frames[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

func (l *Loader) resolve(path string) string {
	if l.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.Root, path)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
