package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siftsBody = `{
  "UniProt": {
    "P29373": {
      "identifier": "RABP2_HUMAN",
      "name": "RABP2_HUMAN",
      "mappings": [
        {"entity_id": 1, "chain_id": "A", "struct_asym_id": "A",
         "start": {"residue_number": 1, "author_residue_number": null, "author_insertion_code": ""},
         "end": {"residue_number": 137, "author_residue_number": 137, "author_insertion_code": ""},
         "unp_start": 2, "unp_end": 138},
        {"entity_id": 1, "chain_id": "B", "start": null, "end": null, "unp_start": 0, "unp_end": 0}
      ]
    }
  }
}`

func TestSIFTS_Ranges(t *testing.T) {
	var s SIFTS
	require.NoError(t, json.Unmarshal([]byte(siftsBody), &s))

	ranges := s.Ranges()
	require.Len(t, ranges, 1)
	assert.Equal(t, MappingRange{
		UniProtID:    "P29373",
		EntityID:     1,
		ChainID:      "A",
		PDBStart:     1,
		PDBEnd:       137,
		UniProtStart: 2,
		UniProtEnd:   138,
	}, ranges[0])
	assert.Nil(t, s.UniProt["P29373"].Mappings[0].PDBStart.AuthorResidueNumber)
}

func TestMappingRange_Map(t *testing.T) {
	r := MappingRange{PDBStart: 1, PDBEnd: 137, UniProtStart: 2, UniProtEnd: 138}

	pos, ok := r.Map(3)
	assert.True(t, ok)
	assert.Equal(t, 4, pos)

	pos, ok = r.Map(137)
	assert.True(t, ok)
	assert.Equal(t, 138, pos)

	_, ok = r.Map(0)
	assert.False(t, ok)
	_, ok = r.Map(138)
	assert.False(t, ok)
}
