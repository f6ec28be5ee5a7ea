package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidSpec is wrapped by every TargetSpec validation failure.
var ErrInvalidSpec = errors.New("invalid target spec")

// TargetSpec describes a target to build during Preload.
type TargetSpec struct {
	Name        string
	Description string
	Creator     string
	Shape       Shape
	// Size is the full extent of the shape. Spheres use X as the diameter; tori use X as the
	// outer diameter and Y as the tube thickness.
	Size     mgl32.Vec3
	Segments int
}

// Target is a prepared, viewable object.
type Target struct {
	Name        string
	Description string
	Creator     string
	// Points is a line list: every consecutive pair is one segment.
	Points      []mgl32.Vec3
	Bounds      common.Bounds
	VertexCount int
}

// Change is the payload of a selection change. Target is nil and Index is -1 when nothing is selected.
type Change struct {
	Index  int
	Target *Target
}

type managerImpl struct {
	mu       sync.Mutex
	targets  []*Target
	selected int

	loading    atomic.Bool
	changed    common.Event[Change]
	workers    int
	pool       worker.DynamicWorkerPool
	autoSelect bool
	logger     *slog.Logger
}

// Manager owns the set of viewable targets and which one is selected.
// It satisfies camera.TargetProvider and camera.TargetEvents so a rig can follow the selection.
type Manager interface {
	camera.TargetProvider
	camera.TargetEvents

	// Preload builds every spec on the worker pool and appends the results in spec order.
	// Invalid specs are skipped and reported in the returned error; valid ones are still added.
	//
	// Parameters:
	//   - ctx: cancels the preload; targets not yet built are dropped
	//   - specs: the targets to build
	//
	// Returns:
	//   - error: joined build errors, or the context error
	Preload(ctx context.Context, specs []TargetSpec) error

	// Loading reports whether a Preload is in progress.
	//
	// Returns:
	//   - bool: true while preloading
	Loading() bool

	// Targets returns the prepared targets in load order.
	//
	// Returns:
	//   - []*Target: a copy of the target list
	Targets() []*Target

	// Selected returns the selected target and its index.
	//
	// Returns:
	//   - *Target: the selected target, or nil
	//   - int: its index, or -1
	Selected() (*Target, int)

	// Select selects the target at index. An out-of-range index selects nothing.
	// A change notification is emitted on every call, including reselecting the current target.
	//
	// Parameters:
	//   - index: the target index
	Select(index int)

	// SelectTarget selects the first target with the given name.
	//
	// Parameters:
	//   - name: the target name
	//
	// Returns:
	//   - bool: false if no target has that name; the selection is unchanged
	SelectTarget(name string) bool

	// SelectNext advances the selection, wrapping to the first target. Does nothing when empty.
	SelectNext()

	// OnSelectionChanged registers fn for selection changes.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - common.ListenerID: token for RemoveSelectionChangedListener
	OnSelectionChanged(fn func(Change)) common.ListenerID

	// RemoveSelectionChangedListener removes the listener registered under id.
	//
	// Parameters:
	//   - id: the token returned by OnSelectionChanged
	RemoveSelectionChangedListener(id common.ListenerID)
}

var _ Manager = &managerImpl{}

// NewManager creates an empty Manager.
//
// Parameters:
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the newly created manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &managerImpl{
		selected:   -1,
		workers:    4,
		autoSelect: true,
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(m)
	}
	m.logger = m.logger.With("component", "selection")
	m.pool = worker.NewDynamicWorkerPool(m.workers, 256, 1*time.Second)
	return m
}

func (m *managerImpl) Preload(ctx context.Context, specs []TargetSpec) error {
	m.loading.Store(true)
	defer m.loading.Store(false)

	built := make([]*Target, len(specs))
	errs := make([]error, len(specs))

	// The pool has no per-batch wait, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, spec := range specs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		id := i
		specCap := spec
		m.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					errs[id] = err
					return nil, nil
				}
				t, err := buildTarget(specCap)
				if err != nil {
					errs[id] = fmt.Errorf("preload %q: %w", specCap.Name, err)
					return nil, nil
				}
				built[id] = t
				return nil, nil
			},
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("preload cancelled: %w", err)
	}

	m.mu.Lock()
	added := 0
	for _, t := range built {
		if t != nil {
			m.targets = append(m.targets, t)
			added++
		}
	}
	selectFirst := m.autoSelect && m.selected < 0 && len(m.targets) > 0
	m.mu.Unlock()

	m.logger.Info("targets preloaded", "requested", len(specs), "added", added)
	if selectFirst {
		m.Select(0)
	}
	return errors.Join(errs...)
}

func buildTarget(spec TargetSpec) (*Target, error) {
	points, err := buildPoints(spec)
	if err != nil {
		return nil, err
	}
	return &Target{
		Name:        spec.Name,
		Description: spec.Description,
		Creator:     spec.Creator,
		Points:      points,
		Bounds:      common.BoundsFromPoints(points),
		VertexCount: len(points),
	}, nil
}

func (m *managerImpl) Loading() bool {
	return m.loading.Load()
}

func (m *managerImpl) Targets() []*Target {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Target, len(m.targets))
	copy(out, m.targets)
	return out
}

func (m *managerImpl) Selected() (*Target, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected < 0 {
		return nil, -1
	}
	return m.targets[m.selected], m.selected
}

func (m *managerImpl) Select(index int) {
	m.mu.Lock()
	var change Change
	if index >= 0 && index < len(m.targets) {
		m.selected = index
		change = Change{Index: index, Target: m.targets[index]}
	} else {
		m.selected = -1
		change = Change{Index: -1}
	}
	m.mu.Unlock()

	if change.Target != nil {
		m.logger.Info("target selected",
			"index", change.Index,
			"name", change.Target.Name,
			"creator", change.Target.Creator,
			"description", change.Target.Description,
			"vertices", change.Target.VertexCount,
		)
	} else {
		m.logger.Info("selection cleared", "requested", index)
	}
	m.changed.Emit(change)
}

func (m *managerImpl) SelectTarget(name string) bool {
	m.mu.Lock()
	index := -1
	for i, t := range m.targets {
		if t.Name == name {
			index = i
			break
		}
	}
	m.mu.Unlock()

	if index < 0 {
		return false
	}
	m.Select(index)
	return true
}

func (m *managerImpl) SelectNext() {
	m.mu.Lock()
	n := len(m.targets)
	next := (m.selected + 1) % max(n, 1)
	m.mu.Unlock()

	if n == 0 {
		return
	}
	m.Select(next)
}

func (m *managerImpl) ViewTargetBounds() (common.Bounds, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected < 0 {
		return common.Bounds{}, false
	}
	return m.targets[m.selected].Bounds, true
}

func (m *managerImpl) OnTargetChanged(fn func()) common.ListenerID {
	if fn == nil {
		return 0
	}
	return m.changed.Subscribe(func(Change) { fn() })
}

func (m *managerImpl) RemoveTargetChangedListener(id common.ListenerID) {
	m.changed.Unsubscribe(id)
}

func (m *managerImpl) OnSelectionChanged(fn func(Change)) common.ListenerID {
	return m.changed.Subscribe(fn)
}

func (m *managerImpl) RemoveSelectionChangedListener(id common.ListenerID) {
	m.changed.Unsubscribe(id)
}
