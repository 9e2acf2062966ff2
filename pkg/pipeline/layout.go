package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/observability"
	"github.com/matzehuels/gridspace/pkg/pack"
	"github.com/matzehuels/gridspace/pkg/scene"
	"github.com/matzehuels/gridspace/pkg/spatial"
	"github.com/matzehuels/gridspace/pkg/spatial/place"
)

// GenerateLayout computes the layout of s without caching. Each call builds
// its own graph, so concurrent calls never share engine state.
func GenerateLayout(ctx context.Context, s *scene.Scene, opts Options) (*scene.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch s.Mode() {
	case scene.ModeTree:
		return packTree(ctx, s, opts)
	default:
		return insertStream(ctx, s, opts)
	}
}

func insertStream(ctx context.Context, s *scene.Scene, opts Options) (l *scene.Layout, err error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, string(scene.ModeStream), s.Len())
	defer func() { hooks.OnLayoutComplete(ctx, string(scene.ModeStream), time.Since(start), err) }()

	additions, missing, err := s.Stream()
	if err != nil {
		return nil, err
	}

	g := spatial.New()
	planner := place.New(g, opts.Config, opts.Logger)
	var cur place.Cursor
	planner.ApplyAllUpdates(&cur, additions, missing)

	opts.Logger.Debug("placed stream", "additions", len(additions), "missing", len(missing))
	all := append(append(additions[:0:0], additions...), missing...)
	return scene.FromStream(opts.Config, all, g), nil
}

func packTree(ctx context.Context, s *scene.Scene, opts Options) (l *scene.Layout, err error) {
	hooks := observability.Pipeline()
	start := time.Now()
	groups := 0
	if s.Root != nil {
		groups = countGroups(s.Root)
	}
	hooks.OnPackStart(ctx, groups)
	defer func() { hooks.OnPackComplete(ctx, s.Len(), time.Since(start), err) }()

	root, err := s.Tree()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "layout cancelled")
	}

	pack.New(opts.Config).ApplyAllConstraints(root, 0)
	opts.Logger.Debug("packed group tree", "groups", groups, "blocks", root.Len())
	return scene.FromPlacements(opts.Config, pack.Flatten(root)), nil
}

func countGroups(g *scene.GroupSpec) int {
	n := 1
	for i := range g.Groups {
		n += countGroups(&g.Groups[i])
	}
	return n
}
