package light

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/klave-network/evm-light-client/beacon"
)

var (
	updatesAppliedCounter  = metrics.NewRegisteredCounter("lightclient/updates/applied", nil)
	updatesRejectedCounter = metrics.NewRegisteredCounter("lightclient/updates/rejected", nil)
	rotationsCounter       = metrics.NewRegisteredCounter("lightclient/committee/rotations", nil)
)

// Store is the verifier's mutable view of the finalized beacon chain. It is
// created from a trusted bootstrap and mutated only by ProcessUpdate and
// ForceAdvance; readers observe atomic snapshots.
type Store struct {
	mu sync.RWMutex

	finalizedHeader      LightClientHeader
	optimisticHeader     LightClientHeader
	currentSyncCommittee beacon.SyncCommittee
	nextSyncCommittee    *beacon.SyncCommittee

	// bestValidUpdate remembers the strongest pending update for deferred
	// finalization via ForceAdvance.
	bestValidUpdate *LightClientUpdate

	currentMaxActiveParticipants  uint64
	previousMaxActiveParticipants uint64
}

// NewStore validates a bootstrap against the operator's trusted block root
// and builds the initial store. A zero trusted root skips the root pin (the
// operator vouches for the bootstrap object itself).
func NewStore(ctx *Context, bootstrap *LightClientBootstrap, trustedBlockRoot common.Hash) (*Store, error) {
	if err := ctx.ValidateBootstrap(bootstrap, trustedBlockRoot); err != nil {
		return nil, err
	}
	return &Store{
		finalizedHeader:      bootstrap.Header,
		optimisticHeader:     bootstrap.Header,
		currentSyncCommittee: bootstrap.CurrentSyncCommittee,
	}, nil
}

// FinalizedHeader returns a snapshot of the finalized header.
func (s *Store) FinalizedHeader() LightClientHeader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finalizedHeader
}

// OptimisticHeader returns a snapshot of the optimistic header.
func (s *Store) OptimisticHeader() LightClientHeader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.optimisticHeader
}

// CurrentSyncCommittee returns a snapshot of the trusted committee.
func (s *Store) CurrentSyncCommittee() beacon.SyncCommittee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSyncCommittee
}

// NextSyncCommittee returns the next committee, or nil when unknown.
func (s *Store) NextSyncCommittee() *beacon.SyncCommittee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.nextSyncCommittee == nil {
		return nil
	}
	cp := *s.nextSyncCommittee
	return &cp
}

// BestValidUpdate returns the pending best update, or nil.
func (s *Store) BestValidUpdate() *LightClientUpdate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bestValidUpdate == nil {
		return nil
	}
	cp := *s.bestValidUpdate
	return &cp
}

// MaxActiveParticipants returns the current and previous period's maximum
// observed participation.
func (s *Store) MaxActiveParticipants() (current, previous uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentMaxActiveParticipants, s.previousMaxActiveParticipants
}

// view builds the read-only projection validation consumes. Callers hold
// the lock.
func (s *Store) view() *storeView {
	return &storeView{
		finalizedSlot:        s.finalizedHeader.Beacon.Slot,
		currentSyncCommittee: &s.currentSyncCommittee,
		nextSyncCommittee:    s.nextSyncCommittee,
	}
}

// ProcessUpdate validates an update and, if acceptable, advances the store:
// best-update bookkeeping, optimistic header advancement, finalized header
// advancement and committee rotation. The store is untouched when an error
// is returned.
func (s *Store) ProcessUpdate(ctx *Context, update *LightClientUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := ctx.validateUpdate(s.view(), update, ctx.CurrentSlot()); err != nil {
		updatesRejectedCounter.Inc(1)
		log.Debug("Rejected light client update",
			"attestedSlot", update.AttestedHeader.Beacon.Slot,
			"signatureSlot", update.SignatureSlot,
			"err", err)
		return err
	}

	active := update.Participation()

	// Best-update bookkeeping: strongest participation wins.
	if s.bestValidUpdate == nil || active > s.bestValidUpdate.Participation() {
		cp := *update
		s.bestValidUpdate = &cp
	}

	if active > s.currentMaxActiveParticipants {
		s.currentMaxActiveParticipants = active
	}

	// Optimistic advancement needs only a safe share of the strongest
	// participation seen this period.
	if update.AttestedHeader.Beacon.Slot > s.optimisticHeader.Beacon.Slot &&
		active > s.currentMaxActiveParticipants/2 {
		s.optimisticHeader = update.AttestedHeader
	}

	committeeSize := uint64(len(s.currentSyncCommittee.Pubkeys))
	supermajority := active*3 >= committeeSize*2

	storePeriod := ctx.SyncCommitteePeriod(s.finalizedHeader.Beacon.Slot)
	attestedPeriod := ctx.SyncCommitteePeriod(update.AttestedHeader.Beacon.Slot)
	addsUnknownNextCommittee := update.HasNextSyncCommittee() &&
		s.nextSyncCommittee == nil && attestedPeriod == storePeriod

	finalityAdvances := update.HasFinality() && supermajority &&
		update.FinalizedSlot() > s.finalizedHeader.Beacon.Slot

	if finalityAdvances || addsUnknownNextCommittee {
		s.applyUpdate(ctx, update)
		updatesAppliedCounter.Inc(1)
		log.Info("Applied light client update",
			"finalizedSlot", s.finalizedHeader.Beacon.Slot,
			"optimisticSlot", s.optimisticHeader.Beacon.Slot,
			"participation", active,
			"nextCommitteeKnown", s.nextSyncCommittee != nil)
	}
	return nil
}

// applyUpdate commits a validated update: committee adoption/rotation first,
// then finalized and optimistic header advancement. Callers hold the lock.
func (s *Store) applyUpdate(ctx *Context, update *LightClientUpdate) {
	storePeriod := ctx.SyncCommitteePeriod(s.finalizedHeader.Beacon.Slot)

	if s.nextSyncCommittee == nil {
		if update.HasNextSyncCommittee() &&
			ctx.SyncCommitteePeriod(update.AttestedHeader.Beacon.Slot) == storePeriod {
			cp := *update.NextSyncCommittee
			s.nextSyncCommittee = &cp
		}
	} else if update.HasFinality() && ctx.SyncCommitteePeriod(update.FinalizedSlot()) == storePeriod+1 {
		// The finalized head crossed into the next period: rotate.
		s.currentSyncCommittee = *s.nextSyncCommittee
		s.nextSyncCommittee = nil
		if update.HasNextSyncCommittee() {
			cp := *update.NextSyncCommittee
			s.nextSyncCommittee = &cp
		}
		s.previousMaxActiveParticipants = s.currentMaxActiveParticipants
		s.currentMaxActiveParticipants = 0
		rotationsCounter.Inc(1)
		log.Info("Rotated sync committee", "period", storePeriod+1,
			"nextKnown", s.nextSyncCommittee != nil)
	}

	if update.HasFinality() && update.FinalizedSlot() > s.finalizedHeader.Beacon.Slot {
		s.finalizedHeader = *update.FinalizedHeader
		if s.finalizedHeader.Beacon.Slot > s.optimisticHeader.Beacon.Slot {
			s.optimisticHeader = s.finalizedHeader
		}
		// The pending best update is consumed once finality catches up
		// with it.
		if s.bestValidUpdate != nil && s.bestValidUpdate.FinalizedSlot() <= s.finalizedHeader.Beacon.Slot {
			s.bestValidUpdate = nil
		}
	}
}

// ForceAdvance applies the pending best valid update without requiring
// supermajority finalization. The core never invokes this on its own; the
// host calls it after its own timeout policy decides the network will not
// produce a stronger update.
func (s *Store) ForceAdvance(ctx *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bestValidUpdate == nil {
		return ErrNoBestValidUpdate
	}
	update := s.bestValidUpdate

	if update.HasFinality() {
		s.applyUpdate(ctx, update)
	} else if update.AttestedHeader.Beacon.Slot > s.finalizedHeader.Beacon.Slot {
		// With no finality proof available, promote the attested header;
		// the signature quorum is the only trust anchor left.
		promoted := *update
		hdr := update.AttestedHeader
		promoted.FinalizedHeader = &hdr
		s.applyUpdate(ctx, &promoted)
	}
	s.bestValidUpdate = nil
	log.Warn("Force-advanced light client store",
		"finalizedSlot", s.finalizedHeader.Beacon.Slot)
	return nil
}
