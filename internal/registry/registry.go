package registry

import (
	"strconv"

	"github.com/keyloom/keyloom/internal/chain"
	"github.com/keyloom/keyloom/internal/derivation"
	"github.com/keyloom/keyloom/internal/loomcrypto"
	"github.com/keyloom/keyloom/internal/mnemonic"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// Logger is the subset of the application logger the registry needs for
// reporting best-effort persistence failures.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Registry is single-owner, single-session state: it is not safe for
// concurrent use and is not meant to be shared.
//
// It moves between two meta-states: Empty (no chain selected) and
// ChainSelected. Selecting a chain is one-way for the life of the
// instance; only Clear returns to Empty.
type Registry struct {
	gateway Gateway
	logger  Logger

	kind      chain.Kind // empty string means no chain selected
	phrase    string     // established on first successful Generate
	nextIndex uint32
	records   []Record
}

// New creates an empty registry backed by the given gateway.
func New(gateway Gateway, logger Logger) *Registry {
	if gateway == nil {
		gateway = NopGateway{}
	}
	return &Registry{
		gateway: gateway,
		logger:  logger,
	}
}

// Restore loads previously persisted state from the gateway. A corrupt or
// missing snapshot leaves the registry empty; load errors are returned so
// the caller can surface them, but the registry stays usable.
func (r *Registry) Restore() error {
	snap, err := r.gateway.Load()
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	r.kind = snap.Chain
	r.phrase = mnemonic.Join(snap.Mnemonic)
	r.nextIndex = snap.NextIndex
	r.records = append([]Record(nil), snap.Records...)
	return nil
}

// Kind returns the selected chain, or empty when none is selected.
func (r *Registry) Kind() chain.Kind {
	return r.kind
}

// ChainSelected reports whether the registry has left the Empty state.
func (r *Registry) ChainSelected() bool {
	return r.kind != ""
}

// Phrase returns the established recovery phrase, empty before the first
// successful Generate.
func (r *Registry) Phrase() string {
	return r.phrase
}

// Len returns the number of wallets.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns a copy of the ordered wallet sequence.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Record returns the record at the given list position.
func (r *Registry) Record(position int) (*Record, error) {
	if position < 0 || position >= len(r.records) {
		return nil, r.outOfRange(position)
	}
	rec := r.records[position]
	return &rec, nil
}

// SelectChain fixes the chain for this session. Valid only from the Empty
// state; every wallet in a registry shares one chain.
func (r *Registry) SelectChain(kind chain.Kind) error {
	if !kind.IsValid() {
		return loomerr.WithDetails(loomerr.ErrUnsupportedChain, map[string]string{
			"chain": kind.String(),
		})
	}
	if r.kind != "" {
		return loomerr.WithSuggestion(loomerr.ErrChainAlreadySelected,
			"run 'keyloom wallet clear' to start a fresh session")
	}

	r.kind = kind
	r.save()
	return nil
}

// Generate derives the next wallet. An explicit phrase override must pass
// validation; otherwise the established session phrase is reused, or a new
// phrase is generated when none exists yet. The first successful call
// establishes the session phrase. On failure nothing is mutated and
// nothing is saved.
func (r *Registry) Generate(phraseOverride string) (*Wallet, error) {
	if r.kind == "" {
		return nil, loomerr.ErrNoChainSelected
	}

	phrase := r.phrase
	switch {
	case phraseOverride != "":
		if err := mnemonic.Validate(phraseOverride); err != nil {
			return nil, err
		}
		phrase = mnemonic.Normalize(phraseOverride)
	case phrase == "":
		generated, err := mnemonic.Generate()
		if err != nil {
			return nil, err
		}
		phrase = generated
	}

	rec, err := r.derive(phrase)
	if err != nil {
		return nil, err
	}

	r.records = append(r.records, *rec)
	r.nextIndex++
	if r.phrase == "" {
		r.phrase = phrase
	}
	r.save()

	w := rec.Wallet
	return &w, nil
}

// AddFromExistingPhrase derives the next wallet from the session phrase
// established by the first Generate.
func (r *Registry) AddFromExistingPhrase() (*Wallet, error) {
	if r.kind == "" {
		return nil, loomerr.ErrNoChainSelected
	}
	if r.phrase == "" {
		return nil, loomerr.ErrNoMnemonicEstablished
	}

	rec, err := r.derive(r.phrase)
	if err != nil {
		return nil, err
	}

	r.records = append(r.records, *rec)
	r.nextIndex++
	r.save()

	w := rec.Wallet
	return &w, nil
}

// Remove deletes the wallet at a list position and compacts the sequence.
// Later wallets shift down one position but keep their derivation paths:
// account indices are never recomputed or reused.
func (r *Registry) Remove(position int) error {
	if position < 0 || position >= len(r.records) {
		return r.outOfRange(position)
	}

	r.records = append(r.records[:position], r.records[position+1:]...)
	r.save()
	return nil
}

// Clear empties the registry and returns it to the Empty state. The
// persisted state is cleared as well, best-effort.
func (r *Registry) Clear() {
	r.kind = ""
	r.phrase = ""
	r.nextIndex = 0
	r.records = nil

	if err := r.gateway.Clear(); err != nil && r.logger != nil {
		r.logger.Error("clearing persisted state: %v", err)
	}
}

// SetVisibility toggles a revealable field on the record at a position.
func (r *Registry) SetVisibility(position int, field Field, shown bool) error {
	if position < 0 || position >= len(r.records) {
		return r.outOfRange(position)
	}

	vis := &r.records[position].Visibility
	switch field {
	case FieldPublicKey:
		vis.PublicKey = shown
	case FieldPrivateKey:
		vis.PrivateKey = shown
	case FieldMnemonic:
		vis.Mnemonic = shown
	default:
		return loomerr.WithDetails(loomerr.ErrInvalidInput, map[string]string{
			"field": string(field),
		})
	}

	r.save()
	return nil
}

// derive runs the full pipeline for the next account index without
// mutating registry state. Seed material is zeroed before returning.
func (r *Registry) derive(phrase string) (*Record, error) {
	index := r.nextIndex

	path, err := derivation.BuildPath(r.kind, index)
	if err != nil {
		return nil, err
	}

	seed, err := mnemonic.ToSeed(phrase)
	if err != nil {
		return nil, err
	}
	secureSeed := loomcrypto.SecureBytesFromSlice(seed)
	loomcrypto.Zero(seed)
	defer secureSeed.Destroy()

	subSeed, err := derivation.SubSeedAtPath(secureSeed.Bytes(), r.kind, path)
	if err != nil {
		return nil, err
	}
	defer loomcrypto.Zero(subSeed)

	pair, err := chain.DeriveKeyPair(r.kind, subSeed)
	if err != nil {
		return nil, err
	}

	return &Record{
		Wallet: Wallet{
			PublicKey:    pair.PublicKey,
			PrivateKey:   pair.PrivateKey,
			Mnemonic:     phrase,
			Path:         path,
			AccountIndex: index,
		},
		Visibility: Visibility{PublicKey: true},
	}, nil
}

// save persists the current state. Persistence is fire-and-forget: a
// failed save is logged and never surfaced to the derivation pipeline.
func (r *Registry) save() {
	snap := &Snapshot{
		Mnemonic:  mnemonic.Words(r.phrase),
		Chain:     r.kind,
		NextIndex: r.nextIndex,
		Records:   r.Records(),
	}

	if err := r.gateway.Save(snap); err != nil && r.logger != nil {
		r.logger.Error("saving wallet state: %v", err)
	}
}

func (r *Registry) outOfRange(position int) error {
	return loomerr.WithDetails(loomerr.ErrIndexOutOfRange, map[string]string{
		"position": strconv.Itoa(position),
		"length":   strconv.Itoa(len(r.records)),
	})
}
