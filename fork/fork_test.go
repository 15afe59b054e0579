package fork

import (
	"errors"
	"testing"

	"github.com/klave-network/evm-light-client/beacon"
)

func v(b byte) beacon.Version {
	return beacon.Version{b, 0, 0, 1}
}

func fullSchedule(epochs ...uint64) []ForkParameter {
	specs := []ForkSpec{AltairForkSpec, BellatrixForkSpec, CapellaForkSpec, DenebForkSpec, ElectraForkSpec}
	out := make([]ForkParameter, len(epochs))
	for i, e := range epochs {
		out[i] = ForkParameter{Version: v(byte(i + 1)), Epoch: beacon.Epoch(e), Spec: specs[i]}
	}
	return out
}

func TestForkParametersStaggered(t *testing.T) {
	params, err := NewForkParameters(v(0), fullSchedule(0, 1, 2, 3, 4))
	if err != nil {
		t.Fatalf("NewForkParameters: %v", err)
	}

	for epoch := uint64(0); epoch <= 4; epoch++ {
		want := v(byte(epoch + 1))
		if got := params.ComputeForkVersion(beacon.Epoch(epoch)); got != want {
			t.Errorf("version(%d) = %s, want %s", epoch, got, want)
		}
	}
	// Past the last activation the last fork stays active.
	if got := params.ComputeForkVersion(100); got != v(5) {
		t.Errorf("version(100) = %s, want %s", got, v(5))
	}

	if !params.IsFork(0, AltairIndex) {
		t.Error("altair must be active at epoch 0")
	}
	if params.IsFork(0, BellatrixIndex) {
		t.Error("bellatrix must not be active at epoch 0")
	}
	if !params.IsFork(1, BellatrixIndex) || params.IsFork(1, CapellaIndex) {
		t.Error("epoch 1 must be bellatrix, not capella")
	}
	if !params.IsFork(3, DenebIndex) {
		t.Error("deneb must be active at epoch 3")
	}
	if !params.IsFork(5, ElectraIndex) {
		t.Error("electra must be active at epoch 5")
	}
}

func TestForkParametersAllAtGenesis(t *testing.T) {
	// Every fork activating at epoch 0 leaves the last one active
	// immediately.
	params, err := NewForkParameters(v(0), fullSchedule(0, 0, 0, 0, 0))
	if err != nil {
		t.Fatalf("NewForkParameters: %v", err)
	}
	if got := params.ComputeForkVersion(0); got != v(5) {
		t.Errorf("version(0) = %s, want %s", got, v(5))
	}
}

func TestForkParametersNonMonotonic(t *testing.T) {
	forks := []ForkParameter{
		{Version: v(2), Epoch: 1, Spec: BellatrixForkSpec},
		{Version: v(1), Epoch: 0, Spec: AltairForkSpec},
	}
	if _, err := NewForkParameters(v(0), forks); !errors.Is(err, ErrInvalidForkParametersOrder) {
		t.Errorf("err = %v, want ErrInvalidForkParametersOrder", err)
	}
}

func TestForkParametersEmpty(t *testing.T) {
	if _, err := NewForkParameters(v(0), nil); !errors.Is(err, ErrNotSupportedLightClient) {
		t.Errorf("err = %v, want ErrNotSupportedLightClient", err)
	}
}

func TestForkParametersSingleFork(t *testing.T) {
	forks := []ForkParameter{{Version: v(1), Epoch: 0, Spec: AltairForkSpec}}
	params, err := NewForkParameters(v(0), forks)
	if err != nil {
		t.Fatalf("NewForkParameters: %v", err)
	}
	// The fork is active at epoch 0, not the genesis version.
	if got := params.ComputeForkVersion(0); got != v(1) {
		t.Errorf("version(0) = %s, want %s", got, v(1))
	}
}

func TestComputeForkSpecFallback(t *testing.T) {
	forks := []ForkParameter{{Version: v(1), Epoch: 10, Spec: AltairForkSpec}}
	params, err := NewForkParameters(v(0), forks)
	if err != nil {
		t.Fatalf("NewForkParameters: %v", err)
	}
	// Before the first activation: genesis spec and genesis version.
	if got := params.ComputeForkSpec(5); got != GenesisSpec {
		t.Errorf("spec(5) = %+v, want genesis spec", got)
	}
	if got := params.ComputeForkVersion(5); got != v(0) {
		t.Errorf("version(5) = %s, want genesis version", got)
	}
	if params.IsFork(5, AltairIndex) {
		t.Error("no fork is active before the first activation")
	}
	if got := params.ComputeForkSpec(10); got != AltairForkSpec {
		t.Errorf("spec(10) = %+v, want altair", got)
	}
}

func TestForkNamesRoundTrip(t *testing.T) {
	for _, name := range []string{"altair", "bellatrix", "capella", "deneb", "electra"} {
		idx, ok := IndexByName(name)
		if !ok {
			t.Fatalf("IndexByName(%q) failed", name)
		}
		back, ok := NameByIndex(idx)
		if !ok || back != name {
			t.Errorf("NameByIndex(%d) = %q, want %q", idx, back, name)
		}
		if _, ok := SpecByIndex(idx); !ok {
			t.Errorf("SpecByIndex(%d) failed", idx)
		}
	}
	if _, ok := IndexByName("phase0"); ok {
		t.Error("phase0 has no light-client fork entry")
	}
}

func TestElectraMovesStateIndices(t *testing.T) {
	if ElectraForkSpec.FinalizedRootGIndex != 169 ||
		ElectraForkSpec.CurrentSyncCommitteeGIndex != 86 ||
		ElectraForkSpec.NextSyncCommitteeGIndex != 87 {
		t.Errorf("electra state gindices wrong: %+v", ElectraForkSpec)
	}
	if DenebForkSpec.ExecutionPayloadStateRootGIndex != 34 ||
		CapellaForkSpec.ExecutionPayloadStateRootGIndex != 18 {
		t.Errorf("payload widening gindices wrong")
	}
}
