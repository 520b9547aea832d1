package voxel

import (
	"fmt"

	"github.com/memmaker/voxelbody/engine/util"
)

// DefaultSlipperiness is the ground friction coefficient shared by almost
// every solid block. Ice and slime are the notable exceptions.
const DefaultSlipperiness float32 = 0.6

type BlockDefinition struct {
	BlockID      byte
	UniqueName   string
	Slipperiness float32
}

type BlockLibrary struct {
	blocks   map[byte]*BlockDefinition
	nameToId map[string]byte
}

func NewBlockLibrary() *BlockLibrary {
	b := &BlockLibrary{
		nameToId: make(map[string]byte),
		blocks: map[byte]*BlockDefinition{
			0: {
				BlockID:      0,
				UniqueName:   "air",
				Slipperiness: 1.0,
			},
		},
	}
	b.nameToId["air"] = 0
	return b
}

// NewDefaultBlockLibrary registers the handful of block types the simulation
// scenarios use. Block 0 is always air.
func NewDefaultBlockLibrary() *BlockLibrary {
	b := NewBlockLibrary()
	b.AddBlockDefinition(1, "stone", DefaultSlipperiness)
	b.AddBlockDefinition(2, "dirt", DefaultSlipperiness)
	b.AddBlockDefinition(3, "grass_block", DefaultSlipperiness)
	b.AddBlockDefinition(4, "ice", 0.98)
	b.AddBlockDefinition(5, "slime_block", 0.8)
	return b
}

func (b *BlockLibrary) AddBlockDefinition(blockID byte, name string, slipperiness float32) {
	if _, exists := b.blocks[blockID]; exists {
		panic("Block already exists")
	}
	b.blocks[blockID] = &BlockDefinition{
		BlockID:      blockID,
		UniqueName:   name,
		Slipperiness: slipperiness,
	}
	b.nameToId[name] = blockID
}

func (b *BlockLibrary) LastBlockID() byte {
	return byte(len(b.blocks) - 1)
}

func (b *BlockLibrary) NewBlockFromName(name string) *Block {
	if blockID, exists := b.nameToId[name]; exists {
		return NewBlock(blockID)
	}
	util.LogVoxelError(fmt.Sprintf("[BlockLibrary] Unknown block name: %s", name))
	return NewBlock(0)
}

func (b *BlockLibrary) GetBlockDefinition(blockID byte) *BlockDefinition {
	return b.blocks[blockID]
}

// SlipperinessOf returns the friction coefficient for a block ID.
// Air and unknown blocks report 1.0, a no-op for the friction model.
func (b *BlockLibrary) SlipperinessOf(blockID byte) float32 {
	definition, exists := b.blocks[blockID]
	if !exists || blockID == EMPTY {
		return 1.0
	}
	return definition.Slipperiness
}
