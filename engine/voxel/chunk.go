package voxel

type Chunk struct {
	data      []*Block
	m         *Map
	chunkPosX int32
	chunkPosY int32
	chunkPosZ int32
}

func NewChunk(voxelMap *Map, x, y, z int32) *Chunk {
	c := &Chunk{
		data:      make([]*Block, CHUNK_SIZE_CUBED),
		m:         voxelMap,
		chunkPosX: x,
		chunkPosY: y,
		chunkPosZ: z,
	}
	for i := int32(0); i < CHUNK_SIZE_CUBED; i++ {
		c.data[i] = NewAirBlock()
	}
	return c
}

func blockIndex(i, j, k int32) int32 {
	return i + j*CHUNK_SIZE + k*CHUNK_SIZE_SQUARED
}

func (c *Chunk) Contains(x, y, z int32) bool {
	return x >= 0 && x < CHUNK_SIZE && y >= 0 && y < CHUNK_SIZE && z >= 0 && z < CHUNK_SIZE
}

func (c *Chunk) GetLocalBlock(i, j, k int32) *Block {
	if !c.Contains(i, j, k) {
		return nil
	}
	return c.data[blockIndex(i, j, k)]
}

func (c *Chunk) SetBlock(x, y, z int32, block *Block) {
	c.data[blockIndex(x, y, z)] = block
}

func (c *Chunk) Position() Int3 {
	return Int3{c.chunkPosX, c.chunkPosY, c.chunkPosZ}
}
