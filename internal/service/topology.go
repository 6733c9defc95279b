package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"sdntopo/internal/codec"
	"sdntopo/internal/domain"
	"sdntopo/internal/metrics"
	"sdntopo/internal/reconcile"
	"sdntopo/internal/topology"
)

// ErrNotInitialized is returned by reads before the first successful poll
var ErrNotInitialized = errors.New("topology not initialized")

// ErrNodeNotFound is returned when a position update names an unknown switch
var ErrNodeNotFound = errors.New("node not found")

// TopologyService owns the live graph and the controller status list
type TopologyService struct {
	mu          sync.RWMutex
	state       *reconcile.GraphState
	configured  []string
	controllers []domain.ControllerStatus
	lastSnap    *domain.Snapshot
	lastPoll    time.Time

	eventBus *EventBus
	metrics  *metrics.Registry
}

// NewTopologyService creates a service with an empty live graph.
// metrics may be nil.
func NewTopologyService(eventBus *EventBus, m *metrics.Registry) *TopologyService {
	return &TopologyService{
		state:       reconcile.New(),
		controllers: make([]domain.ControllerStatus, 0),
		eventBus:    eventBus,
		metrics:     m,
	}
}

// Apply builds a graph from snap and folds it into the live graph.
// The first successful call initializes; later calls reconcile. A build
// failure leaves the live graph untouched.
func (s *TopologyService) Apply(ctx context.Context, source string, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := topology.Build(snap)
	if err != nil {
		return fmt.Errorf("build topology from %s: %w", source, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Initialized() {
		s.state.Initialize(g)
		nodes, links := s.state.Len()
		log.Printf("Topology initialized from %s: %d switches, %d links", source, nodes, links)
		s.publishTopology(EventTopologyInitialized)
	} else if s.state.Reconcile(g) {
		nodes, links := s.state.Len()
		log.Printf("Topology changed from %s: %d switches, %d links", source, nodes, links)
		if s.metrics != nil {
			s.metrics.TopologyChangesTotal.Inc()
		}
		s.publishTopology(EventTopologyChanged)
	}

	s.lastSnap = snap
	s.lastPoll = time.Now()
	s.refreshControllers()
	s.updateGauges()

	return nil
}

// Topology returns a copy of the live graph
func (s *TopologyService) Topology() (*domain.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.state.Initialized() {
		return nil, ErrNotInitialized
	}
	return s.state.Snapshot(), nil
}

// Controllers returns the current controller status list
func (s *TopologyService) Controllers() []domain.ControllerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ControllerStatus, len(s.controllers))
	copy(out, s.controllers)
	return out
}

// LastPoll returns the time of the last applied snapshot
func (s *TopologyService) LastPoll() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPoll
}

// SetControllers replaces the configured controller display order and
// recomputes statuses against the last snapshot.
func (s *TopologyService) SetControllers(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configured = append([]string(nil), names...)
	s.refreshControllers()
	s.updateGauges()
}

// UpdatePosition sets renderer-owned placement for one node
func (s *TopologyService) UpdatePosition(ctx context.Context, pos domain.NodePosition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.SetPosition(pos) {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, pos.Name)
	}

	s.eventBus.Publish(Event{
		Type:    EventPositionUpdated,
		Payload: pos,
	})
	return nil
}

// Export writes the live graph using the given exporter
func (s *TopologyService) Export(ctx context.Context, exp codec.Exporter, w io.Writer) error {
	g, err := s.Topology()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return exp.Export(g, w)
}

// publishTopology must be called with mu held
func (s *TopologyService) publishTopology(t EventType) {
	s.eventBus.Publish(Event{
		Type:    t,
		Payload: s.state.Snapshot().View(),
	})
}

// refreshControllers must be called with mu held
func (s *TopologyService) refreshControllers() {
	statuses := topology.ControllerStatuses(s.configured, s.lastSnap)
	if domain.ControllerStatusEqual(statuses, s.controllers) {
		return
	}
	s.controllers = statuses

	s.eventBus.Publish(Event{
		Type:    EventControllersUpdated,
		Payload: statuses,
	})
}

// updateGauges must be called with mu held
func (s *TopologyService) updateGauges() {
	if s.metrics == nil {
		return
	}
	g := s.state.Graph()
	s.metrics.UpdateTopology(len(g.Nodes), len(g.Links), g.ActiveCount())

	up := 0
	for _, c := range s.controllers {
		if c.Up {
			up++
		}
	}
	s.metrics.ControllersUp.Set(float64(up))
}
