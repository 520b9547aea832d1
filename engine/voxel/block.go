package voxel

type Block struct {
	ID byte
}

func (b *Block) IsAir() bool {
	return b.ID == EMPTY
}

func NewBlock(blockID byte) *Block {
	return &Block{ID: blockID}
}

func NewAirBlock() *Block {
	return &Block{ID: EMPTY}
}
