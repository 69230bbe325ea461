// Package rotation implements the open-play rotation rules: roster and queue
// management, bulk court assignment, and the streak-limited winners-stay
// reseed policy applied after every result.
package rotation

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/nickdiaz444/pickleball-open-play2/models"
	"github.com/nickdiaz444/pickleball-open-play2/store"
)

// StreakCap is the consecutive-win count at which a winner is rotated out
// instead of staying on the court.
const StreakCap = 3

var (
	// ErrCapacityExceeded is returned when the roster is already at the
	// configured maximum.
	ErrCapacityExceeded = errors.New("maximum player limit reached")
	// ErrEmptyRoster is returned when shuffling with no registered players.
	ErrEmptyRoster = errors.New("no players registered")
	// ErrInsufficientPlayers is returned when a result names a court that is
	// not holding a full game.
	ErrInsufficientPlayers = errors.New("court does not hold a full game")
	// ErrCourtOutOfRange is returned when a court index is outside the board.
	ErrCourtOutOfRange = errors.New("no such court")
	// ErrInvalidTeam is returned when a result names a team other than 1 or 2.
	ErrInvalidTeam = errors.New("winning team must be 1 or 2")
	// ErrInvalidSettings is returned when a settings update carries a limit
	// below 1.
	ErrInvalidSettings = errors.New("max players and court count must be at least 1")
)

// Engine owns the session state and applies the rotation rules. Operations
// serialize on an internal mutex and follow clone, mutate, save, commit: the
// new state is persisted before it replaces the in-memory state, so a failed
// save leaves the engine exactly as it was.
type Engine struct {
	mu       sync.Mutex
	store    store.Store
	state    *models.SessionState
	settings models.Settings
	rnd      *rand.Rand
}

// NewEngine loads the persisted session from st and seeds shuffle randomness
// from the clock.
func NewEngine(st store.Store) (*Engine, error) {
	return NewEngineWithRand(st, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithRand is NewEngine with a caller-supplied randomness source,
// which makes shuffle order reproducible in tests.
func NewEngineWithRand(st store.Store, rnd *rand.Rand) (*Engine, error) {
	settings, err := st.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings = sanitizeSettings(settings)

	state, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	state.Normalize()
	// The stored board may predate a court-count change.
	state.ResizeCourts(settings.NumCourts)

	return &Engine{
		store:    st,
		state:    state,
		settings: settings,
		rnd:      rnd,
	}, nil
}

func sanitizeSettings(s models.Settings) models.Settings {
	if s.MaxPlayers < 1 {
		s.MaxPlayers = models.DefaultMaxPlayers
	}
	if s.NumCourts < 1 {
		s.NumCourts = models.DefaultNumCourts
	}
	return s
}

// persist writes next through the store and installs it as the current state.
func (e *Engine) persist(next *models.SessionState) error {
	if err := e.store.Save(next); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	e.state = next
	return nil
}

// AddPlayer registers name and appends it to the waiting queue. A name that is
// empty or already registered is ignored without error so repeated submissions
// are harmless. Registration is refused once the roster holds the configured
// maximum.
func (e *Engine) AddPlayer(name string) (*models.SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.state.Players) >= e.settings.MaxPlayers {
		return nil, ErrCapacityExceeded
	}
	if name == "" || contains(e.state.Players, name) {
		return e.state.Clone(), nil
	}

	next := e.state.Clone()
	next.Players = append(next.Players, name)
	next.Queue = append(next.Queue, name)
	if err := e.persist(next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// ShuffleQueue rebuilds the queue as a uniformly random permutation of the
// whole roster. Courts and streaks are cleared: this restarts the play order,
// it does not reshuffle around games in progress.
func (e *Engine) ShuffleQueue() (*models.SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.state.Players) == 0 {
		return nil, ErrEmptyRoster
	}

	next := e.state.Clone()
	next.Queue = append([]string{}, next.Players...)
	e.rnd.Shuffle(len(next.Queue), func(i, j int) {
		next.Queue[i], next.Queue[j] = next.Queue[j], next.Queue[i]
	})
	for i := range next.Courts {
		next.Courts[i] = models.Court{}
	}
	next.Streaks = map[string]int{}
	if err := e.persist(next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// AssignCourts seats waiting players four at a time, court by court in index
// order, until the queue runs short. Each seated player starts at streak 1.
// Occupied courts are overwritten: this is a bulk assignment over the whole
// board, not a gap fill, and the stop-on-short-queue check means courts past
// the break keep their prior content.
func (e *Engine) AssignCourts() (*models.SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.state.Clone()
	for i := range next.Courts {
		if len(next.Queue) < models.CourtSize {
			break
		}
		court := make(models.Court, models.CourtSize)
		copy(court, next.Queue[:models.CourtSize])
		next.Queue = next.Queue[models.CourtSize:]
		next.Courts[i] = court
		for _, p := range court {
			next.Streaks[p] = 1
		}
	}
	if err := e.persist(next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// SubmitResult settles the game on the given court in favor of winningTeam
// (1 or 2) and reseeds the court.
//
// Winners' streaks increment and losers' reset to 0. A winner at the cap
// rotates out to the queue tail with a fresh streak. If both winners stay and
// at least 3 players are waiting, the court reseeds as winner, two fresh
// players, winner, splitting the staying pair across both teams. In every
// other case the court empties and the staying winners rejoin the queue ahead
// of the losers, who are always appended last in their original order.
func (e *Engine) SubmitResult(courtIndex, winningTeam int) (*models.SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if courtIndex < 0 || courtIndex >= len(e.state.Courts) {
		return nil, ErrCourtOutOfRange
	}
	if winningTeam != 1 && winningTeam != 2 {
		return nil, ErrInvalidTeam
	}
	if !e.state.Courts[courtIndex].IsFull() {
		return nil, ErrInsufficientPlayers
	}

	next := e.state.Clone()
	court := next.Courts[courtIndex]

	var winners, losers []string
	if winningTeam == 1 {
		winners, losers = court.Team1(), court.Team2()
	} else {
		winners, losers = court.Team2(), court.Team1()
	}

	for _, w := range winners {
		next.Streaks[w]++
	}
	for _, l := range losers {
		next.Streaks[l] = 0
	}

	// Capped winners leave first so they land ahead of the losers in the queue.
	staying := make([]string, 0, models.TeamSize)
	for _, w := range winners {
		if next.Streaks[w] < StreakCap {
			staying = append(staying, w)
			continue
		}
		next.Streaks[w] = 0
		next.Queue = append(next.Queue, w)
	}

	reseeded := models.Court{}
	if len(staying) == models.TeamSize && len(next.Queue) >= 3 {
		reseeded = models.Court{staying[0], next.Queue[0], next.Queue[1], staying[1]}
		next.Queue = next.Queue[2:]
	} else {
		// Not enough fresh players for a foursome, or a lone winner who
		// cannot hold the court alone: the court opens up and the staying
		// winners rejoin the queue with their streaks cleared.
		for _, w := range staying {
			next.Streaks[w] = 0
			next.Queue = append(next.Queue, w)
		}
	}

	next.Queue = append(next.Queue, losers...)
	next.Courts[courtIndex] = reseeded
	next.History = append(next.History, models.MatchRecord{
		Court:    courtIndex,
		Winners:  winners,
		Losers:   losers,
		PlayedAt: time.Now().UTC(),
	})

	if err := e.persist(next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// Reset wipes the whole session: roster, queue, courts, streaks and history.
// Settings survive.
func (e *Engine) Reset() (*models.SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Reset(); err != nil {
		return nil, fmt.Errorf("reset state: %w", err)
	}
	e.state = models.NewSessionState(e.settings.NumCourts)
	return e.state.Clone(), nil
}

// UpdateSettings stores new limits and resizes the board when the court count
// changes. Shrinking drops the highest-numbered courts along with any game in
// progress on them; players seated there stay registered and can be brought
// back with a shuffle. A max-players value below the current roster size only
// blocks further registrations, it does not evict anyone.
func (e *Engine) UpdateSettings(settings models.Settings) (*models.SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if settings.MaxPlayers < 1 || settings.NumCourts < 1 {
		return nil, ErrInvalidSettings
	}

	next := e.state.Clone()
	boardChanged := settings.NumCourts != e.settings.NumCourts
	if boardChanged {
		next.ResizeCourts(settings.NumCourts)
	}

	if err := e.store.SaveSettings(settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	if boardChanged {
		if err := e.store.Save(next); err != nil {
			return nil, fmt.Errorf("save state: %w", err)
		}
	}
	e.settings = settings
	e.state = next
	return next.Clone(), nil
}

// Snapshot returns a copy of the current session state.
func (e *Engine) Snapshot() *models.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Settings returns the current session limits.
func (e *Engine) Settings() models.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// View returns the live-board snapshot served to API clients.
func (e *Engine) View() models.StateView {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state.Clone()
	return models.StateView{
		Players:  s.Players,
		Queue:    s.Queue,
		Courts:   s.Courts,
		Streaks:  s.Streaks,
		Settings: e.settings,
	}
}

// History returns up to limit finished games, most recent first. A negative
// limit returns everything.
func (e *Engine) History(limit int) []models.MatchRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.state.History)
	if limit < 0 || limit > n {
		limit = n
	}
	out := make([]models.MatchRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, e.state.History[i])
	}
	return out
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
