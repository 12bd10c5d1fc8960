package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/fixedstep/config"
	"github.com/lixenwraith/fixedstep/lockstep"
	"github.com/lixenwraith/fixedstep/replay"
	"github.com/lixenwraith/fixedstep/sched"
	"github.com/lixenwraith/fixedstep/service"
	"github.com/lixenwraith/fixedstep/sim"
)

var (
	flagTicks  int
	flagSample int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Record, list, and verify deterministic replay sessions",
	Long: `Replay sessions store a checksum trace of a headless simulation run.
Verification re-simulates from the recorded seed and compares checksums
tick by tick; any divergence means determinism was broken.

The recorded seed and timestep come from the session header; verification
must run with the same demo dimensions and particle count the recording
used.`,
}

var replayRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Simulate headless and store a checksum trace",
	RunE:  runReplayRecord,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored replay sessions",
	RunE:  runReplayList,
}

var replayInfoCmd = &cobra.Command{
	Use:   "info <session-id>",
	Short: "Show a stored session's header and checkpoint range",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayInfo,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <session-id>",
	Short: "Re-simulate a session and compare checksums",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayVerify,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored replay session",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayDelete,
}

func init() {
	replayRecordCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of simulation ticks to record")
	replayRecordCmd.Flags().IntVar(&flagSample, "sample", 60, "Record a checksum every N ticks")

	replayCmd.AddCommand(replayRecordCmd)
	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayInfoCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

// checksumPayload is the JSON body of one recorded checkpoint
type checksumPayload struct {
	Checksum string `json:"checksum"`
}

// openStore builds the service manager and returns the open replay store
func openStore() (*replay.Store, *service.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	mgr := service.NewManager()
	storeSvc := service.NewReplayStoreService()
	if err := mgr.Register(storeSvc); err != nil {
		return nil, nil, err
	}
	if err := mgr.InitAll(cfg.Replay.DBPath); err != nil {
		return nil, nil, err
	}
	if err := mgr.StartAll(); err != nil {
		mgr.StopAll()
		return nil, nil, err
	}
	if storeSvc.Store() == nil {
		mgr.StopAll()
		return nil, nil, fmt.Errorf("replay: no database path configured")
	}
	return storeSvc.Store(), mgr, nil
}

// simulate runs the demo world headless for the given tick count,
// invoking the observer after every executed step. The seed is explicit
// so verification can rebuild the world a recording started from
func simulate(cfg config.Config, seed uint64, ticks int, observe sched.StepObserverFunc[*sim.World]) error {
	world := sim.NewWorld(cfg.Demo.Width, cfg.Demo.Height, seed, cfg.Demo.Particles)
	s, err := sched.New(cfg.Sched(), world.Clone(), world, sim.Step,
		sched.WithStepObserver(observe),
	)
	if err != nil {
		return err
	}

	// One step per frame keeps the trace exact regardless of clamping
	dt := cfg.Timestep.FixedDt()
	for int(s.CurrentTick()) < ticks {
		s.Advance(dt)
	}
	return nil
}

// recordTrace simulates from the config's seed and returns a session of
// checksum checkpoints every sample ticks (plus the final tick)
func recordTrace(cfg config.Config, ticks, sample int) (replay.Session, error) {
	rec := replay.NewRecorder(cfg.Timestep.FixedDt(), cfg.Demo.Seed)
	every := uint64(sample)

	var recErr error
	observe := lockstep.NewStepObserver(
		func(w *sim.World) uint64 { return w.Checksum() },
		func(r lockstep.TickRecord) {
			if r.Tick%every != 0 && r.Tick != uint64(ticks-1) {
				return
			}
			payload, _ := json.Marshal(checksumPayload{
				Checksum: fmt.Sprintf("%016x", r.Checksum),
			})
			if err := rec.Record(r.Tick, payload); err != nil && recErr == nil {
				recErr = err
			}
		},
	)

	if err := simulate(cfg, cfg.Demo.Seed, ticks, observe); err != nil {
		return replay.Session{}, err
	}
	if recErr != nil {
		return replay.Session{}, recErr
	}
	return rec.Session(), nil
}

// verifyTrace re-simulates a session from its recorded seed and compares
// checksums at every checkpoint. Returns the number of checkpoints verified
func verifyTrace(cfg config.Config, sess replay.Session) (int, error) {
	if len(sess.Records) == 0 {
		return 0, fmt.Errorf("replay: session has no checkpoints")
	}

	player, err := replay.NewPlayer(sess, cfg.Timestep.FixedDt())
	if err != nil {
		return 0, err
	}

	lastTick := sess.Records[len(sess.Records)-1].Tick
	verified := 0
	var mismatch error

	observe := lockstep.NewStepObserver(
		func(w *sim.World) uint64 { return w.Checksum() },
		func(r lockstep.TickRecord) {
			if mismatch != nil {
				return
			}
			err := player.ApplyTick(r.Tick, func(tick uint64, payload json.RawMessage) error {
				var cp checksumPayload
				if err := json.Unmarshal(payload, &cp); err != nil {
					return fmt.Errorf("replay: bad checkpoint at tick %d: %w", tick, err)
				}
				got := fmt.Sprintf("%016x", r.Checksum)
				if got != cp.Checksum {
					return fmt.Errorf("replay: divergence at tick %d: recorded %s, got %s",
						tick, cp.Checksum, got)
				}
				verified++
				return nil
			})
			if err != nil {
				mismatch = err
			}
		},
	)

	// The world must rebuild from the recording's seed, not the live config's
	if err := simulate(cfg, sess.Header.Seed, int(lastTick)+1, observe); err != nil {
		return verified, err
	}
	if mismatch != nil {
		return verified, mismatch
	}
	if !player.Done() {
		return verified, fmt.Errorf("replay: %d checkpoints were never reached", player.Remaining())
	}
	return verified, nil
}

func runReplayRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagTicks <= 0 || flagSample <= 0 {
		return fmt.Errorf("replay: ticks and sample must be positive")
	}

	store, mgr, err := openStore()
	if err != nil {
		return err
	}
	defer mgr.StopAll()

	sess, err := recordTrace(cfg, flagTicks, flagSample)
	if err != nil {
		return err
	}

	id, err := store.SaveSession(sess)
	if err != nil {
		return err
	}
	logger.Info("session recorded", "id", id, "ticks", flagTicks,
		"checkpoints", len(sess.Records), "seed", cfg.Demo.Seed)
	return nil
}

func runReplayList(cmd *cobra.Command, args []string) error {
	store, mgr, err := openStore()
	if err != nil {
		return err
	}
	defer mgr.StopAll()

	infos, err := store.ListSessions()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}

	fmt.Printf("%-6s %-12s %-10s %-12s %s\n", "ID", "TICK RATE", "SEED", "CHECKPOINTS", "CREATED")
	for _, info := range infos {
		tickRate := int64(0)
		if info.Header.FixedDt > 0 {
			tickRate = int64(1e9 / info.Header.FixedDt.Nanoseconds())
		}
		fmt.Printf("%-6d %-12d %-10d %-12d %s\n",
			info.ID, tickRate, info.Header.Seed, info.RecordCount,
			info.Header.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runReplayInfo(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("replay: invalid session id %q", args[0])
	}

	store, mgr, err := openStore()
	if err != nil {
		return err
	}
	defer mgr.StopAll()

	sess, err := store.LoadSession(id)
	if err != nil {
		return err
	}

	fmt.Printf("Session %d\n", id)
	fmt.Printf("  Created:     %s\n", sess.Header.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Fixed dt:    %s\n", sess.Header.FixedDt)
	fmt.Printf("  Seed:        %d\n", sess.Header.Seed)
	fmt.Printf("  Checkpoints: %d\n", len(sess.Records))
	if len(sess.Records) > 0 {
		fmt.Printf("  Tick range:  %d - %d\n",
			sess.Records[0].Tick, sess.Records[len(sess.Records)-1].Tick)
	}
	return nil
}

func runReplayVerify(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("replay: invalid session id %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, mgr, err := openStore()
	if err != nil {
		return err
	}
	defer mgr.StopAll()

	sess, err := store.LoadSession(id)
	if err != nil {
		return err
	}

	verified, err := verifyTrace(cfg, sess)
	if err != nil {
		return err
	}

	logger.Info("session verified", "id", id, "checkpoints", verified,
		"seed", sess.Header.Seed)
	return nil
}

func runReplayDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("replay: invalid session id %q", args[0])
	}

	store, mgr, err := openStore()
	if err != nil {
		return err
	}
	defer mgr.StopAll()

	if err := store.DeleteSession(id); err != nil {
		return err
	}
	logger.Info("session deleted", "id", id)
	return nil
}
