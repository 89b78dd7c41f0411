package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/match-predictions/internal/domain/match"
	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
	"github.com/riskibarqy/match-predictions/internal/domain/user"
)

type BoardState string

const (
	BoardIdle          BoardState = "IDLE"
	BoardLoading       BoardState = "LOADING"
	BoardMatchesLoaded BoardState = "MATCHES_LOADED"
	BoardEditing       BoardState = "EDITING"
	BoardSubmitting    BoardState = "SUBMITTING"
)

type CallToAction string

const (
	CallToActionMake   CallToAction = "make"
	CallToActionUpdate CallToAction = "update"
)

// Editor is the open prediction form for one match.
type Editor struct {
	MatchID int64
	Draft   prediction.Draft
	Action  CallToAction
	// Violation is the inline result of validating Draft.
	Violation error
	// SubmitErr is the last store failure; the draft is kept for retry.
	SubmitErr error
}

// BoardSnapshot is a copy of the controller state safe to hand to renderers.
type BoardSnapshot struct {
	State              BoardState
	Day                time.Time
	Identity           *user.Identity
	Matches            []match.Match
	Consensus          map[int64]prediction.Summary
	Recent             []prediction.Prediction
	Own                map[int64]prediction.Prediction
	PredictionsLoading bool
	OwnLoading         bool
	Editor             *Editor
	FetchErrors        map[string]error
}

// BoardController drives the predictions page for one viewer. Each date
// selection bumps a generation counter; responses carrying an older
// generation are dropped, so the latest selection always wins. Refetches
// within one date are sequenced the same way. No timeout
// is applied: a request that never returns leaves its panel loading until
// ctx ends or the date changes.
type BoardController struct {
	svc *BoardService

	mu                 sync.Mutex
	generation         uint64
	identityGeneration uint64
	predictionsSeq     uint64
	ownSeq             uint64
	state              BoardState
	day                time.Time
	identity           *user.Identity
	matches            []match.Match
	consensus          map[int64]prediction.Summary
	recent             []prediction.Prediction
	own                map[int64]prediction.Prediction
	predictionsLoading bool
	ownLoading         bool
	editor             *Editor
	fetchErrors        map[string]error
}

func NewBoardController(svc *BoardService, identity *user.Identity) *BoardController {
	return &BoardController{
		svc:         svc,
		state:       BoardIdle,
		identity:    cloneIdentity(identity),
		consensus:   map[int64]prediction.Summary{},
		own:         map[int64]prediction.Prediction{},
		fetchErrors: map[string]error{},
	}
}

// Watch keeps the controller in sync with src until the returned func is called.
func (c *BoardController) Watch(ctx context.Context, src *user.IdentitySource) func() {
	return src.Subscribe(func(identity *user.Identity) {
		c.SetIdentity(ctx, identity)
	})
}

// SelectDate loads matches for the calendar day containing day, then all
// predictions and the viewer's own predictions for those matches concurrently.
func (c *BoardController) SelectDate(ctx context.Context, day time.Time) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = BoardLoading
	c.day, _ = match.DayWindow(day, c.svc.Location())
	c.matches = nil
	c.consensus = map[int64]prediction.Summary{}
	c.recent = nil
	c.own = map[int64]prediction.Prediction{}
	c.editor = nil
	c.predictionsLoading = false
	c.ownLoading = false
	c.fetchErrors = map[string]error{}
	c.mu.Unlock()

	matches, err := c.svc.ListMatchesForDay(ctx, day)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.svc.degrade(ctx, fetchMatches, err)
		c.fetchErrors[fetchMatches] = err
		matches = []match.Match{}
	}
	c.matches = matches
	c.state = BoardMatchesLoaded
	identity := cloneIdentity(c.identity)
	identityGen := c.identityGeneration
	c.mu.Unlock()

	if err != nil {
		return
	}
	c.refresh(ctx, gen, identityGen, match.IDs(matches), identity)
}

// SetIdentity reacts to sign-in, sign-out, or a user switch by re-deriving the
// own-predictions view for the current match set.
func (c *BoardController) SetIdentity(ctx context.Context, identity *user.Identity) {
	c.mu.Lock()
	if sameIdentityUser(c.identity, identity) {
		c.identity = cloneIdentity(identity)
		c.mu.Unlock()
		return
	}

	c.identity = cloneIdentity(identity)
	c.identityGeneration++
	identityGen := c.identityGeneration
	gen := c.generation
	c.own = map[int64]prediction.Prediction{}
	delete(c.fetchErrors, fetchOwnPredictions)
	if c.editor != nil {
		c.editor = nil
		c.state = BoardMatchesLoaded
	}
	loaded := c.state == BoardMatchesLoaded
	matchIDs := match.IDs(c.matches)
	c.ownSeq++
	ownSeq := c.ownSeq
	c.ownLoading = identity != nil && loaded
	c.mu.Unlock()

	if identity == nil || !loaded {
		return
	}
	c.fetchOwn(ctx, gen, identityGen, ownSeq, identity.UserID, matchIDs)
}

// OpenEditor opens the form for matchID seeded from the viewer's existing
// prediction. Signed-out viewers get ErrSignInRequired.
func (c *BoardController) OpenEditor(matchID int64) (Editor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity == nil {
		return Editor{}, ErrSignInRequired
	}
	if c.state != BoardMatchesLoaded && c.state != BoardEditing {
		return Editor{}, fmt.Errorf("%w: board is %s", ErrInvalidInput, c.state)
	}
	if !containsMatch(c.matches, matchID) {
		return Editor{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	editor := &Editor{MatchID: matchID, Action: CallToActionMake}
	if existing, ok := c.own[matchID]; ok {
		editor.Draft = existing.Draft()
		editor.Action = CallToActionUpdate
	}
	c.editor = editor
	c.state = BoardEditing
	return *editor, nil
}

// UpdateDraft replaces the draft and returns its validation result for inline display.
func (c *BoardController) UpdateDraft(draft prediction.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editor == nil || c.state != BoardEditing {
		return fmt.Errorf("%w: no open editor", ErrInvalidInput)
	}
	c.editor.Draft = draft
	c.editor.Violation = prediction.ValidateDraft(draft)
	return c.editor.Violation
}

// CloseEditor discards the open form. It is ignored while a submit is in
// flight; Submit closes the editor itself on success.
func (c *BoardController) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editor == nil || c.state == BoardSubmitting {
		return
	}
	c.editor = nil
	if c.state == BoardEditing {
		c.state = BoardMatchesLoaded
	}
}

// Submit validates the open draft and stores it. On success the editor closes
// and predictions are fetched again; on failure the draft stays for retry.
func (c *BoardController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.editor == nil || c.state != BoardEditing {
		c.mu.Unlock()
		return fmt.Errorf("%w: no open editor", ErrInvalidInput)
	}
	if c.identity == nil {
		c.mu.Unlock()
		return ErrSignInRequired
	}
	if err := prediction.ValidateDraft(c.editor.Draft); err != nil {
		c.editor.Violation = err
		c.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	c.state = BoardSubmitting
	c.editor.Violation = nil
	c.editor.SubmitErr = nil
	gen := c.generation
	identityGen := c.identityGeneration
	identity := *c.identity
	matchID := c.editor.MatchID
	draft := c.editor.Draft
	c.mu.Unlock()

	_, err := c.svc.SubmitPrediction(ctx, identity, matchID, draft)

	c.mu.Lock()
	if gen != c.generation || identityGen != c.identityGeneration {
		c.mu.Unlock()
		return err
	}
	if err != nil {
		if c.editor != nil {
			c.editor.SubmitErr = err
			c.state = BoardEditing
		} else {
			c.state = BoardMatchesLoaded
		}
		c.mu.Unlock()
		return err
	}
	c.editor = nil
	c.state = BoardMatchesLoaded
	matchIDs := match.IDs(c.matches)
	c.mu.Unlock()

	c.refresh(ctx, gen, identityGen, matchIDs, &identity)
	return nil
}

func (c *BoardController) Snapshot() BoardSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := BoardSnapshot{
		State:              c.state,
		Day:                c.day,
		Identity:           cloneIdentity(c.identity),
		Matches:            append([]match.Match(nil), c.matches...),
		Consensus:          make(map[int64]prediction.Summary, len(c.consensus)),
		Recent:             make([]prediction.Prediction, 0, len(c.recent)),
		Own:                make(map[int64]prediction.Prediction, len(c.own)),
		PredictionsLoading: c.predictionsLoading,
		OwnLoading:         c.ownLoading,
		FetchErrors:        make(map[string]error, len(c.fetchErrors)),
	}
	for k, v := range c.consensus {
		out.Consensus[k] = v
	}
	for _, item := range c.recent {
		out.Recent = append(out.Recent, item.Clone())
	}
	for k, v := range c.own {
		out.Own[k] = v.Clone()
	}
	for k, v := range c.fetchErrors {
		out.FetchErrors[k] = v
	}
	if c.editor != nil {
		editor := *c.editor
		editor.Draft = c.editor.Draft.Clone()
		out.Editor = &editor
	}
	return out
}

// refresh refetches all predictions and, when signed in, the viewer's own
// predictions for matchIDs. Results older than gen are discarded.
func (c *BoardController) refresh(ctx context.Context, gen, identityGen uint64, matchIDs []int64, identity *user.Identity) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	if identityGen != c.identityGeneration {
		identity = nil
	}
	c.predictionsSeq++
	predictionsSeq := c.predictionsSeq
	c.predictionsLoading = true
	if identity != nil {
		c.ownSeq++
		c.ownLoading = true
	} else if c.identity == nil {
		c.ownLoading = false
	}
	ownSeq := c.ownSeq
	c.mu.Unlock()

	var wg conc.WaitGroup
	wg.Go(func() {
		c.fetchPredictions(ctx, gen, predictionsSeq, matchIDs)
	})
	if identity != nil {
		wg.Go(func() {
			c.fetchOwn(ctx, gen, identityGen, ownSeq, identity.UserID, matchIDs)
		})
	}
	wg.Wait()
}

func (c *BoardController) fetchPredictions(ctx context.Context, gen, seq uint64, matchIDs []int64) {
	items, err := c.svc.ListPredictions(ctx, matchIDs)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || seq != c.predictionsSeq {
		return
	}
	c.predictionsLoading = false
	if err != nil {
		c.svc.degrade(ctx, fetchPredictions, err)
		c.fetchErrors[fetchPredictions] = err
		c.consensus = map[int64]prediction.Summary{}
		c.recent = nil
		return
	}
	delete(c.fetchErrors, fetchPredictions)
	c.consensus = c.svc.Consensus(matchIDs, items)
	c.recent = c.svc.Recent(items)
}

func (c *BoardController) fetchOwn(ctx context.Context, gen, identityGen, seq uint64, userID string, matchIDs []int64) {
	own, err := c.svc.ListUserPredictions(ctx, userID, matchIDs)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || identityGen != c.identityGeneration || seq != c.ownSeq {
		return
	}
	c.ownLoading = false
	if err != nil {
		c.svc.degrade(ctx, fetchOwnPredictions, err)
		c.fetchErrors[fetchOwnPredictions] = err
		c.own = map[int64]prediction.Prediction{}
		return
	}
	delete(c.fetchErrors, fetchOwnPredictions)
	c.own = own
}

func containsMatch(items []match.Match, matchID int64) bool {
	for _, item := range items {
		if item.ID == matchID {
			return true
		}
	}
	return false
}

func sameIdentityUser(a, b *user.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UserID == b.UserID
}

func cloneIdentity(identity *user.Identity) *user.Identity {
	if identity == nil {
		return nil
	}
	out := *identity
	return &out
}
