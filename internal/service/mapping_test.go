package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe/mocks"
)

func siftsFixture() *model.SIFTS {
	return &model.SIFTS{UniProt: map[string]*model.Accession{
		"P29373": {
			Identifier: "RABP2_HUMAN",
			Mappings: []*model.Mapping{
				{EntityID: 1, ChainID: "A", PDBStart: &model.Position{ResidueNumber: 1}, PDBEnd: &model.Position{ResidueNumber: 137}, UnpStart: 2, UnpEnd: 138},
			},
		},
		"P00001": {
			Mappings: []*model.Mapping{
				{EntityID: 2, ChainID: "B", PDBStart: &model.Position{ResidueNumber: 5}, PDBEnd: &model.Position{ResidueNumber: 50}, UnpStart: 105, UnpEnd: 150},
			},
		},
	}}
}

func TestSortedRanges(t *testing.T) {
	got := SortedRanges(siftsFixture())
	require.Len(t, got, 2)
	assert.Equal(t, "P00001", got[0].UniProtID)
	assert.Equal(t, "P29373", got[1].UniProtID)
	assert.Equal(t, 137, got[1].PDBEnd)
}

func TestMapResidue(t *testing.T) {
	pos, ok := MapResidue(siftsFixture(), "A", 3)
	assert.True(t, ok)
	assert.Equal(t, 4, pos)

	pos, ok = MapResidue(siftsFixture(), "B", 5)
	assert.True(t, ok)
	assert.Equal(t, 105, pos)

	_, ok = MapResidue(siftsFixture(), "A", 200)
	assert.False(t, ok)

	_, ok = MapResidue(siftsFixture(), "Z", 3)
	assert.False(t, ok)
}

func TestPDBeService_MapResidue(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockAPI)
	api.On("UniProtMappings", ctx, "1cbs").Return(siftsFixture(), nil)
	s := &PDBeService{API: api}

	pos, err := s.MapResidue(ctx, "1cbs", "A", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)

	_, err = s.MapResidue(ctx, "1cbs", "A", 0)
	assert.ErrorIs(t, err, ErrResidueNotMapped)

	ranges, err := s.MappingRanges(ctx, "1cbs")
	require.NoError(t, err)
	assert.Len(t, ranges, 2)
}

func TestDescribeRange(t *testing.T) {
	r := model.MappingRange{UniProtID: "P29373", EntityID: 1, ChainID: "A", PDBStart: 1, PDBEnd: 137, UniProtStart: 2, UniProtEnd: 138}
	assert.Equal(t, "entity 1 in chain A is indexed from 1 to 137 in PDB, and from 2 to 138 in UniProt P29373", DescribeRange(r))
}
