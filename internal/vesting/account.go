package vesting

import (
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	ErrInvalidAccountDataSize = errors.New("invalid global info data size")
	ErrInvalidDiscriminator   = errors.New("account is not a GlobalInfo")
	ErrInvalidWhitelistCount  = errors.New("whitelisted count exceeds capacity")
)

// GlobalInfo is the program's single configuration account, stored at the
// global authority PDA.
type GlobalInfo struct {
	Admin            solana.PublicKey
	WhitelistedCount uint64
	Whitelist        [MaxWhitelist]solana.PublicKey
	Active           uint64
}

// DecodeGlobalInfo parses raw account data including the Anchor
// discriminator.
func DecodeGlobalInfo(data []byte) (*GlobalInfo, error) {
	if len(data) < GlobalInfoSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidAccountDataSize, len(data), GlobalInfoSize)
	}
	decoder := bin.NewBorshDecoder(data)
	discriminator, err := decoder.ReadNBytes(8)
	if err != nil {
		return nil, err
	}
	if GlobalInfoDiscriminator != toTypeID(discriminator) {
		return nil, ErrInvalidDiscriminator
	}

	info := new(GlobalInfo)
	if info.Admin, err = readPublicKey(decoder); err != nil {
		return nil, err
	}
	if info.WhitelistedCount, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return nil, err
	}
	for i := range info.Whitelist {
		if info.Whitelist[i], err = readPublicKey(decoder); err != nil {
			return nil, err
		}
	}
	if info.Active, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return nil, err
	}
	if info.WhitelistedCount > MaxWhitelist {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWhitelistCount, info.WhitelistedCount)
	}
	return info, nil
}

// Encode is the inverse of DecodeGlobalInfo.
func (g *GlobalInfo) Encode() []byte {
	out := make([]byte, 0, GlobalInfoSize)
	out = append(out, GlobalInfoDiscriminator[:]...)
	out = append(out, g.Admin[:]...)
	out = binary.LittleEndian.AppendUint64(out, g.WhitelistedCount)
	for _, key := range g.Whitelist {
		out = append(out, key[:]...)
	}
	out = binary.LittleEndian.AppendUint64(out, g.Active)
	return out
}

// Whitelisted returns the meaningful prefix of Whitelist.
func (g *GlobalInfo) Whitelisted() []solana.PublicKey {
	count := g.WhitelistedCount
	if count > MaxWhitelist {
		count = MaxWhitelist
	}
	out := make([]solana.PublicKey, count)
	copy(out, g.Whitelist[:count])
	return out
}

func (g *GlobalInfo) Contains(address solana.PublicKey) bool {
	for _, key := range g.Whitelisted() {
		if key.Equals(address) {
			return true
		}
	}
	return false
}

func (g *GlobalInfo) IsActive() bool {
	return g.Active == 1
}

func (g *GlobalInfo) Full() bool {
	return g.WhitelistedCount >= MaxWhitelist
}

func toTypeID(raw []byte) bin.TypeID {
	var id bin.TypeID
	copy(id[:], raw)
	return id
}
