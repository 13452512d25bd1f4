package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegionTable() *RegionTable {
	return NewRegionTableFromNodes([]RegionNode{
		{
			Code: "370000",
			Name: "山东省",
			Children: []RegionNode{
				{
					Code: "370100",
					Name: "济南市",
					Children: []RegionNode{
						{Code: "370102", Name: "历下区"},
					},
				},
			},
		},
	})
}

func TestRegionTable_Provinces(t *testing.T) {
	table := sampleRegionTable()
	provinces := table.Provinces()
	require.Len(t, provinces, 1)
	assert.Equal(t, "山东省", provinces[0].Name)
}

func TestRegionTable_Children(t *testing.T) {
	table := sampleRegionTable()

	children, err := table.Children("370000")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "济南市", children[0].Name)

	_, err = table.Children("999999")
	assert.Error(t, err)
}

func TestRegionTable_CodesToNames(t *testing.T) {
	table := sampleRegionTable()

	names := table.CodesToNames([]string{"370000", "370100", "370102"})
	assert.Equal(t, []string{"山东省", "济南市", "历下区"}, names)
}

func TestRegionTable_UnknownCodeResolvesEmpty(t *testing.T) {
	table := sampleRegionTable()

	names := table.CodesToNames([]string{"370000", "999999", "370102"})
	assert.Equal(t, []string{"山东省", "", "历下区"}, names)
}
