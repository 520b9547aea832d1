package voxel

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/memmaker/voxelbody/engine/util"
)

// Map is a chunked voxel store. During a simulation tick it is only read,
// never written, so the physics core can query it freely.
type Map struct {
	chunks  []*Chunk
	width   int32
	height  int32
	depth   int32
	library *BlockLibrary
}

func NewMap(width, height, depth int32) *Map {
	m := &Map{
		chunks:  make([]*Chunk, width*height*depth),
		width:   width,
		height:  height,
		depth:   depth,
		library: NewDefaultBlockLibrary(),
	}
	for x := int32(0); x < width; x++ {
		for y := int32(0); y < height; y++ {
			for z := int32(0); z < depth; z++ {
				m.chunks[x+y*width+z*width*height] = NewChunk(m, x, y, z)
			}
		}
	}
	return m
}

func (m *Map) SetBlockLibrary(library *BlockLibrary) {
	m.library = library
}

func (m *Map) BlockLibrary() *BlockLibrary {
	return m.library
}

func (m *Map) GetChunk(x, y, z int32) *Chunk {
	i := x + y*m.width + z*m.width*m.height
	if i < 0 || i >= int32(len(m.chunks)) {
		return nil
	}
	return m.chunks[i]
}

func (m *Map) GetGlobalBlock(x, y, z int32) *Block {
	if !m.Contains(x, y, z) {
		return nil
	}
	chunk := m.GetChunk(x/CHUNK_SIZE, y/CHUNK_SIZE, z/CHUNK_SIZE)
	if chunk == nil {
		return nil
	}
	return chunk.GetLocalBlock(x%CHUNK_SIZE, y%CHUNK_SIZE, z%CHUNK_SIZE)
}

func (m *Map) GetBlockFromVec(pos Int3) *Block {
	return m.GetGlobalBlock(pos.X, pos.Y, pos.Z)
}

func (m *Map) GetBlockFromPosition(position mgl32.Vec3) *Block {
	x := math.Floor(float64(position.X()))
	y := math.Floor(float64(position.Y()))
	z := math.Floor(float64(position.Z()))
	return m.GetGlobalBlock(int32(x), int32(y), int32(z))
}

func (m *Map) SetBlock(x, y, z int32, block *Block) {
	if !m.Contains(x, y, z) {
		return
	}
	chunk := m.GetChunk(x/CHUNK_SIZE, y/CHUNK_SIZE, z/CHUNK_SIZE)
	if chunk != nil {
		chunk.SetBlock(x%CHUNK_SIZE, y%CHUNK_SIZE, z%CHUNK_SIZE, block)
	}
}

func (m *Map) Contains(x, y, z int32) bool {
	return x >= 0 && x < m.width*CHUNK_SIZE && y >= 0 && y < m.height*CHUNK_SIZE && z >= 0 && z < m.depth*CHUNK_SIZE
}

func (m *Map) ContainsGrid(position Int3) bool {
	return m.Contains(position.X, position.Y, position.Z)
}

func (m *Map) IsSolidBlockAt(x, y, z int32) bool {
	block := m.GetGlobalBlock(x, y, z)
	return block != nil && !block.IsAir()
}

// SlipperinessAt reports the friction coefficient of the block at the given
// grid position. Air, unknown blocks and positions outside the map report
// 1.0, so callers never have to special-case missing ground data.
func (m *Map) SlipperinessAt(x, y, z int32) float32 {
	block := m.GetGlobalBlock(x, y, z)
	if block == nil {
		return 1.0
	}
	return m.library.SlipperinessOf(block.ID)
}

func (m *Map) SetFloorAtHeight(yLevel int32, block *Block) {
	for x := int32(0); x < m.width*CHUNK_SIZE; x++ {
		for z := int32(0); z < m.depth*CHUNK_SIZE; z++ {
			m.SetBlock(x, yLevel, z, NewBlock(block.ID))
		}
	}
}

func (m *Map) SetRandomStuff(block *Block, count int) {
	maxX := m.width * CHUNK_SIZE
	maxY := m.height * CHUNK_SIZE
	maxZ := m.depth * CHUNK_SIZE
	for i := 0; i < count; i++ {
		x := rand.Int31n(maxX)
		y := rand.Int31n(maxY)
		z := rand.Int31n(maxZ)
		m.SetBlock(x, y, z, NewBlock(block.ID))
	}
}

func (m *Map) SaveToDisk(filename string) error {
	outfile, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not create map file")
	}
	defer outfile.Close()

	gzipWriter := gzip.NewWriter(outfile)
	defer gzipWriter.Close()

	binary.Write(gzipWriter, binary.LittleEndian, m.width)
	binary.Write(gzipWriter, binary.LittleEndian, m.height)
	binary.Write(gzipWriter, binary.LittleEndian, m.depth)

	chunkCount := int16(len(m.chunks))
	binary.Write(gzipWriter, binary.LittleEndian, chunkCount)

	for _, chunk := range m.chunks {
		binary.Write(gzipWriter, binary.LittleEndian, chunk.chunkPosX)
		binary.Write(gzipWriter, binary.LittleEndian, chunk.chunkPosY)
		binary.Write(gzipWriter, binary.LittleEndian, chunk.chunkPosZ)
		for _, block := range chunk.data {
			if err := binary.Write(gzipWriter, binary.LittleEndian, block.ID); err != nil {
				return errors.Wrap(err, "could not write chunk data")
			}
		}
	}
	util.LogVoxelInfo(fmt.Sprintf("[Map] Saved %d chunks to %s", chunkCount, filename))
	return nil
}

func NewMapFromFile(filename string) (*Map, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not open map file")
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrap(err, "could not read map file")
	}
	defer gzipReader.Close()

	m := &Map{library: NewDefaultBlockLibrary()}
	binary.Read(gzipReader, binary.LittleEndian, &m.width)
	binary.Read(gzipReader, binary.LittleEndian, &m.height)
	binary.Read(gzipReader, binary.LittleEndian, &m.depth)

	var chunkCount int16
	if err := binary.Read(gzipReader, binary.LittleEndian, &chunkCount); err != nil {
		return nil, errors.Wrap(err, "could not read chunk count")
	}

	m.chunks = make([]*Chunk, chunkCount)
	for i := int16(0); i < chunkCount; i++ {
		var chunkPos [3]int32
		binary.Read(gzipReader, binary.LittleEndian, &chunkPos[0])
		binary.Read(gzipReader, binary.LittleEndian, &chunkPos[1])
		binary.Read(gzipReader, binary.LittleEndian, &chunkPos[2])
		chunk := NewChunk(m, chunkPos[0], chunkPos[1], chunkPos[2])
		m.chunks[i] = chunk
		for j := int32(0); j < CHUNK_SIZE_CUBED; j++ {
			blockID := byte(0)
			if err := binary.Read(gzipReader, binary.LittleEndian, &blockID); err != nil {
				return nil, errors.Wrap(err, "could not read chunk data")
			}
			chunk.data[j] = NewBlock(blockID)
		}
	}
	util.LogVoxelInfo(fmt.Sprintf("[Map] Loaded %d chunks from %s", chunkCount, filename))
	return m, nil
}
