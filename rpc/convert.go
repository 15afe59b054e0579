package rpc

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/klave-network/evm-light-client/beacon"
	"github.com/klave-network/evm-light-client/bls"
	"github.com/klave-network/evm-light-client/config"
	"github.com/klave-network/evm-light-client/fork"
	"github.com/klave-network/evm-light-client/light"
	"github.com/klave-network/evm-light-client/ssz"
)

// Conversion errors.
var (
	ErrInvalidAddressLength = errors.New("rpc: invalid address length")
	ErrLogsBloomLength      = errors.New("rpc: logs bloom length does not match preset")
	ErrExtraDataTooLong     = errors.New("rpc: extra data exceeds preset maximum")
	ErrCommitteeSize        = errors.New("rpc: sync committee size does not match preset")
)

// Converter turns API payloads into verifier types, applying the preset's
// size checks at the boundary.
type Converter struct {
	Preset config.Preset
	Forks  *fork.ForkParameters
}

// NewConverter builds a converter for a network.
func NewConverter(cfg config.Config) (*Converter, error) {
	params, err := cfg.ForkParameters()
	if err != nil {
		return nil, err
	}
	return &Converter{Preset: cfg.Preset, Forks: params}, nil
}

// BeaconHeader converts an API header.
func (j *BeaconBlockHeaderJSON) BeaconHeader() beacon.BeaconBlockHeader {
	return beacon.BeaconBlockHeader{
		Slot:          beacon.Slot(j.Slot),
		ProposerIndex: uint64(j.ProposerIndex),
		ParentRoot:    j.ParentRoot,
		StateRoot:     j.StateRoot,
		BodyRoot:      j.BodyRoot,
	}
}

// executionHeader converts and size-checks an execution payload header.
func (c *Converter) executionHeader(j *ExecutionPayloadHeaderJSON) (*beacon.ExecutionPayloadHeader, error) {
	if len(j.FeeRecipient) != 20 {
		return nil, fmt.Errorf("%w: expected=20 actual=%d", ErrInvalidAddressLength, len(j.FeeRecipient))
	}
	if len(j.LogsBloom) != c.Preset.BytesPerLogsBloom {
		return nil, fmt.Errorf("%w: expected=%d actual=%d", ErrLogsBloomLength, c.Preset.BytesPerLogsBloom, len(j.LogsBloom))
	}
	if len(j.ExtraData) > c.Preset.MaxExtraDataBytes {
		return nil, fmt.Errorf("%w: max=%d actual=%d", ErrExtraDataTooLong, c.Preset.MaxExtraDataBytes, len(j.ExtraData))
	}
	baseFee, err := uint256.FromDecimal(j.BaseFeePerGas)
	if err != nil {
		return nil, fmt.Errorf("rpc: parse base_fee_per_gas: %w", err)
	}

	h := &beacon.ExecutionPayloadHeader{
		ParentHash:       j.ParentHash,
		StateRoot:        j.StateRoot,
		ReceiptsRoot:     j.ReceiptsRoot,
		LogsBloom:        append([]byte(nil), j.LogsBloom...),
		PrevRandao:       j.PrevRandao,
		BlockNumber:      uint64(j.BlockNumber),
		GasLimit:         uint64(j.GasLimit),
		GasUsed:          uint64(j.GasUsed),
		Timestamp:        uint64(j.Timestamp),
		ExtraData:        append([]byte(nil), j.ExtraData...),
		BaseFeePerGas:    baseFee,
		BlockHash:        j.BlockHash,
		TransactionsRoot: j.TransactionsRoot,
		WithdrawalsRoot:  j.WithdrawalsRoot,
	}
	copy(h.FeeRecipient[:], j.FeeRecipient)
	if j.BlobGasUsed != nil {
		h.BlobGasUsed = uint64(*j.BlobGasUsed)
	}
	if j.ExcessBlobGas != nil {
		h.ExcessBlobGas = uint64(*j.ExcessBlobGas)
	}
	return h, nil
}

// Header converts a light-client header.
func (c *Converter) Header(j *LightClientHeaderJSON) (light.LightClientHeader, error) {
	h := light.LightClientHeader{Beacon: j.Beacon.BeaconHeader()}
	if j.Execution != nil {
		exec, err := c.executionHeader(j.Execution)
		if err != nil {
			return light.LightClientHeader{}, err
		}
		h.Execution = exec
		h.ExecutionBranch = append([]common.Hash(nil), j.ExecutionBranch...)
	}
	return h, nil
}

// Committee converts a sync committee, enforcing the preset size and key
// lengths. Curve validity is checked later, at acceptance.
func (c *Converter) Committee(j *SyncCommitteeJSON) (beacon.SyncCommittee, error) {
	if len(j.Pubkeys) != c.Preset.SyncCommitteeSize {
		return beacon.SyncCommittee{}, fmt.Errorf("%w: expected=%d actual=%d", ErrCommitteeSize, c.Preset.SyncCommitteeSize, len(j.Pubkeys))
	}
	sc := beacon.SyncCommittee{Pubkeys: make([]bls.PublicKey, len(j.Pubkeys))}
	for i, pk := range j.Pubkeys {
		if len(pk) != bls.PublicKeyLength {
			return beacon.SyncCommittee{}, &bls.LengthError{Kind: bls.PublicKeyKind, Want: bls.PublicKeyLength, Got: len(pk)}
		}
		copy(sc.Pubkeys[i][:], pk)
	}
	if len(j.AggregatePubkey) != bls.PublicKeyLength {
		return beacon.SyncCommittee{}, &bls.LengthError{Kind: bls.PublicKeyKind, Want: bls.PublicKeyLength, Got: len(j.AggregatePubkey)}
	}
	copy(sc.AggregatePubkey[:], j.AggregatePubkey)
	return sc, nil
}

// Aggregate converts a sync aggregate, enforcing bit and signature lengths.
func (c *Converter) Aggregate(j *SyncAggregateJSON) (beacon.SyncAggregate, error) {
	bits, err := ssz.BitvectorFromBytes(j.SyncCommitteeBits, c.Preset.SyncCommitteeSize)
	if err != nil {
		return beacon.SyncAggregate{}, err
	}
	if len(j.SyncCommitteeSignature) != bls.SignatureLength {
		return beacon.SyncAggregate{}, &bls.LengthError{Kind: bls.SignatureKind, Want: bls.SignatureLength, Got: len(j.SyncCommitteeSignature)}
	}
	sa := beacon.SyncAggregate{SyncCommitteeBits: bits}
	copy(sa.SyncCommitteeSignature[:], j.SyncCommitteeSignature)
	return sa, nil
}

// Bootstrap converts a bootstrap payload.
func (c *Converter) Bootstrap(d *LightClientBootstrapData) (*light.LightClientBootstrap, error) {
	header, err := c.Header(&d.Header)
	if err != nil {
		return nil, err
	}
	committee, err := c.Committee(&d.CurrentSyncCommittee)
	if err != nil {
		return nil, err
	}
	return &light.LightClientBootstrap{
		Header:                     header,
		CurrentSyncCommittee:       committee,
		CurrentSyncCommitteeBranch: append([]common.Hash(nil), d.CurrentSyncCommitteeBranch...),
	}, nil
}

// Update converts a full update. A zero next_sync_committee is translated
// to absence; an empty finalized header means no finality proof. When
// version is set, it must name a known fork that the fork table has
// activated by the attested epoch; a fork earlier than the active one is
// accepted.
func (c *Converter) Update(r *LightClientUpdateResponse) (*light.LightClientUpdate, error) {
	d := &r.Data
	attested, err := c.Header(&d.AttestedHeader)
	if err != nil {
		return nil, err
	}

	if r.Version != "" {
		epoch := beacon.Epoch(uint64(attested.Beacon.Slot) / c.Preset.SlotsPerEpoch)
		claimed, ok := fork.IndexByName(r.Version)
		if !ok {
			return nil, &fork.UnknownForkError{Epoch: epoch, Version: c.Forks.ComputeForkVersion(epoch), Index: -1}
		}
		if !c.Forks.IsFork(epoch, claimed) {
			return nil, &fork.UnknownForkError{Epoch: epoch, Version: c.Forks.ComputeForkVersion(epoch), Index: claimed}
		}
	}

	update := &light.LightClientUpdate{
		AttestedHeader: attested,
		SignatureSlot:  beacon.Slot(d.SignatureSlot),
	}

	update.SyncAggregate, err = c.Aggregate(&d.SyncAggregate)
	if err != nil {
		return nil, err
	}

	committee, err := c.Committee(&d.NextSyncCommittee)
	if err == nil && !committee.IsZero() {
		update.NextSyncCommittee = &committee
		update.NextSyncCommitteeBranch = append([]common.Hash(nil), d.NextSyncCommitteeBranch...)
	} else if err != nil && len(d.NextSyncCommittee.Pubkeys) != 0 {
		return nil, err
	}

	finalized, err := c.Header(&d.FinalizedHeader)
	if err != nil {
		return nil, err
	}
	if !finalized.Beacon.IsEmpty() {
		update.FinalizedHeader = &finalized
		update.FinalityBranch = append([]common.Hash(nil), d.FinalityBranch...)
	}
	return update, nil
}

// FinalityUpdate converts a finality update into a plain update with no
// next sync committee.
func (c *Converter) FinalityUpdate(d *LightClientFinalityUpdateData) (*light.LightClientUpdate, error) {
	full := &LightClientUpdateResponse{
		Data: LightClientUpdateData{
			AttestedHeader:  d.AttestedHeader,
			FinalizedHeader: d.FinalizedHeader,
			FinalityBranch:  d.FinalityBranch,
			SyncAggregate:   d.SyncAggregate,
			SignatureSlot:   d.SignatureSlot,
		},
	}
	return c.Update(full)
}
