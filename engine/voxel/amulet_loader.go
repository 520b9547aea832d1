package voxel

import (
	"compress/gzip"
	"encoding/binary"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/pkg/errors"
)

/*
	TAG_Compound({
	    "block_entities": TAG_List([...]),
	    "blocks_array_type": TAG_Byte(),
	    "blocks": <See below>
	})
*/

type SectionBlockInfo struct {
	BlocksArrayType byte `nbt:"blocks_array_type"`
}

type ByteSection struct {
	Blocks []byte `nbt:"blocks"`
}

type IntSection struct {
	Blocks []int `nbt:"blocks"`
}

type AmuletMetadata struct {
	SelectionBoxes    []int32 `nbt:"selection_boxes"`
	SectionIndexTable []byte  `nbt:"section_index_table"`
	SectionVersion    byte    `nbt:"section_version"`
	ExportVersion     struct {
		Edition string  `nbt:"edition"`
		Version []int32 `nbt:"version"`
	} `nbt:"export_version"`
	BlockPalette []*PaletteEntry `nbt:"block_palette"`
	CreatedWith  string          `nbt:"created_with"`
}

type PaletteEntry struct {
	Name       string         `nbt:"blockname"`
	NameSpace  string         `nbt:"namespace"`
	Properties map[string]any `nbt:"properties"`
}

type Construction struct {
	Sections []*ConstructionSection
}

type ConstructionSection struct {
	Blocks    []*PaletteEntry
	ShapeX    uint8
	ShapeY    uint8
	ShapeZ    uint8
	MinBlockX int32
	MinBlockY int32
	MinBlockZ int32
}

const constructionMagic = "constrct"

// LoadConstruction reads an amulet-style .construction file. Only the block
// data is kept; entities and block entities are skipped.
func LoadConstruction(filename string) (*Construction, error) {
	fileReader, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not open construction file")
	}
	defer fileReader.Close()

	var magicNumber [8]byte
	if err = binary.Read(fileReader, binary.BigEndian, &magicNumber); err != nil {
		return nil, errors.Wrap(err, "could not read magic number")
	}
	if string(magicNumber[:]) != constructionMagic {
		return nil, errors.New("invalid magic number")
	}
	offset := len(constructionMagic)

	fileReader.Seek(int64(-offset), 2)
	var magicNumber2 [8]byte
	if err = binary.Read(fileReader, binary.BigEndian, &magicNumber2); err != nil {
		return nil, errors.Wrap(err, "could not read trailing magic number")
	}
	if string(magicNumber2[:]) != constructionMagic {
		return nil, errors.New("invalid trailing magic number, truncated file?")
	}

	fileReader.Seek(int64(-offset-4), 2)
	var metaDataOffset int32
	if err = binary.Read(fileReader, binary.BigEndian, &metaDataOffset); err != nil {
		return nil, errors.Wrap(err, "could not read metadata offset")
	}

	fileReader.Seek(int64(metaDataOffset), 0)
	gzipReader, err := gzip.NewReader(fileReader)
	if err != nil {
		return nil, errors.Wrap(err, "could not read metadata")
	}
	decoder := nbt.NewDecoder(gzipReader)
	var meta AmuletMetadata
	if _, decErr := decoder.Decode(&meta); decErr != nil {
		return nil, errors.Wrap(decErr, "could not decode metadata")
	}

	sectionTable := decodeSectionTable(meta.SectionIndexTable)
	sections := make([]*ConstructionSection, len(sectionTable))
	for sIndex, section := range sectionTable {
		fileReader.Seek(int64(section.Offset), 0)
		if err = gzipReader.Reset(fileReader); err != nil {
			return nil, errors.Wrap(err, "could not read section data")
		}
		sectionDecoder := nbt.NewDecoder(gzipReader)
		var sectionBlockType SectionBlockInfo
		if _, decErr := sectionDecoder.Decode(&sectionBlockType); decErr != nil {
			return nil, errors.Wrap(decErr, "could not decode section header")
		}

		var blocks []*PaletteEntry
		switch sectionBlockType.BlocksArrayType {
		case 7:
			var decodedSection ByteSection
			fileReader.Seek(int64(section.Offset), 0)
			gzipReader.Reset(fileReader)
			sectionDecoder = nbt.NewDecoder(gzipReader)
			if _, decErr := sectionDecoder.Decode(&decodedSection); decErr != nil {
				return nil, errors.Wrap(decErr, "could not decode byte section")
			}
			blocks = decodeBlocks(decodedSection.Blocks, meta.BlockPalette)
		case 11:
			var decodedSection IntSection
			fileReader.Seek(int64(section.Offset), 0)
			gzipReader.Reset(fileReader)
			sectionDecoder = nbt.NewDecoder(gzipReader)
			if _, decErr := sectionDecoder.Decode(&decodedSection); decErr != nil {
				return nil, errors.Wrap(decErr, "could not decode int section")
			}
			blocks = decodeBlocks(decodedSection.Blocks, meta.BlockPalette)
		}
		sections[sIndex] = &ConstructionSection{
			Blocks:    blocks,
			ShapeX:    section.ShapeX,
			ShapeY:    section.ShapeY,
			ShapeZ:    section.ShapeZ,
			MinBlockX: section.MinBlockX,
			MinBlockY: section.MinBlockY,
			MinBlockZ: section.MinBlockZ,
		}
	}

	return &Construction{Sections: sections}, nil
}

func decodeBlocks[T int | byte](blocks []T, palette []*PaletteEntry) []*PaletteEntry {
	result := make([]*PaletteEntry, len(blocks))
	for i := 0; i < len(blocks); i++ {
		paletteIndex := int(blocks[i])
		if paletteIndex < 0 || paletteIndex >= len(palette) {
			continue
		}
		result[i] = palette[paletteIndex]
	}
	return result
}

/*
The section_index_table is an Mx23 TAG_Byte_Array where M is the number of
section data entries present in the construction file.

The real format of the section_index_table is IIIBBBII where I is a uint32
and B is a uint8:

	III: The X, Y, and Z block coordinates of the minimum point of the section
	BBB: The shape of the section in blocks in X, Y, Z order
	I: The starting byte of the section data entry in the file
	I: The byte length of the section data entry
*/

type SectionIndex struct {
	MinBlockX int32
	MinBlockY int32
	MinBlockZ int32
	ShapeX    uint8
	ShapeY    uint8
	ShapeZ    uint8
	Offset    uint32
	Size      uint32
	// 23 bytes per section
}

func decodeSectionTable(table []byte) []SectionIndex {
	sectionCount := len(table) / 23
	sections := make([]SectionIndex, sectionCount)
	for i := 0; i < sectionCount; i++ {
		sections[i].MinBlockX = int32(binary.LittleEndian.Uint32(table[i*23 : i*23+4]))
		sections[i].MinBlockY = int32(binary.LittleEndian.Uint32(table[i*23+4 : i*23+8]))
		sections[i].MinBlockZ = int32(binary.LittleEndian.Uint32(table[i*23+8 : i*23+12]))
		sections[i].ShapeX = table[i*23+12]
		sections[i].ShapeY = table[i*23+13]
		sections[i].ShapeZ = table[i*23+14]
		sections[i].Offset = binary.LittleEndian.Uint32(table[i*23+15 : i*23+19])
		sections[i].Size = binary.LittleEndian.Uint32(table[i*23+19 : i*23+23])
	}
	return sections
}

// NewMapFromConstruction places the blocks of a construction into a fresh
// map just large enough to hold them. Palette entries that are not in the
// block library become air.
func NewMapFromConstruction(library *BlockLibrary, construction *Construction) *Map {
	var maxX, maxY, maxZ int32
	for _, section := range construction.Sections {
		maxX = maxInt32(maxX, section.MinBlockX+int32(section.ShapeX))
		maxY = maxInt32(maxY, section.MinBlockY+int32(section.ShapeY))
		maxZ = maxInt32(maxZ, section.MinBlockZ+int32(section.ShapeZ))
	}
	chunksX := (maxX + CHUNK_SIZE - 1) / CHUNK_SIZE
	chunksY := (maxY + CHUNK_SIZE - 1) / CHUNK_SIZE
	chunksZ := (maxZ + CHUNK_SIZE - 1) / CHUNK_SIZE
	m := NewMap(maxInt32(chunksX, 1), maxInt32(chunksY, 1), maxInt32(chunksZ, 1))
	m.SetBlockLibrary(library)

	for _, section := range construction.Sections {
		shapeX := int32(section.ShapeX)
		shapeY := int32(section.ShapeY)
		shapeZ := int32(section.ShapeZ)
		for i, entry := range section.Blocks {
			if entry == nil {
				continue
			}
			// blocks are stored in XYZ order, Z fastest
			z := int32(i) % shapeZ
			y := (int32(i) / shapeZ) % shapeY
			x := int32(i) / (shapeY * shapeZ)
			if x >= shapeX {
				continue
			}
			block := library.NewBlockFromName(entry.Name)
			m.SetBlock(section.MinBlockX+x, section.MinBlockY+y, section.MinBlockZ+z, block)
		}
	}
	return m
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
