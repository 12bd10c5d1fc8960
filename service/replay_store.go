package service

import (
	"fmt"

	"github.com/lixenwraith/fixedstep/replay"
)

// ReplayStoreService owns the replay database handle for a process
//
// Init expects the database path as its first arg; an empty manager
// args list leaves the service disabled (Store returns nil)
type ReplayStoreService struct {
	store *replay.Store
}

// NewReplayStoreService returns an unopened replay store service
func NewReplayStoreService() *ReplayStoreService {
	return &ReplayStoreService{}
}

func (s *ReplayStoreService) Name() string {
	return "replay-store"
}

func (s *ReplayStoreService) Dependencies() []string {
	return nil
}

// Init opens the database at the path given in args[0]
func (s *ReplayStoreService) Init(args ...any) error {
	if len(args) == 0 {
		return nil
	}
	path, ok := args[0].(string)
	if !ok {
		return fmt.Errorf("replay-store: expected path string, got %T", args[0])
	}
	if path == "" {
		return nil
	}

	store, err := replay.Open(path)
	if err != nil {
		return err
	}
	s.store = store
	return nil
}

// Start is a no-op; the store has no background goroutines
func (s *ReplayStoreService) Start() error {
	return nil
}

// Stop closes the database handle. Idempotent
func (s *ReplayStoreService) Stop() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// Store returns the open store, or nil when the service is disabled
func (s *ReplayStoreService) Store() *replay.Store {
	return s.store
}
