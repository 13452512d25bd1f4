package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"seed_ledger/core/common"
)

// RegionNode is one level of the administrative-division tree.
type RegionNode struct {
	Code     string       `json:"code"`
	Name     string       `json:"name"`
	Children []RegionNode `json:"children,omitempty"`
}

// RegionTable is a read-only lookup table over the three-level
// province/city/area division tree. It is loaded once at startup and
// handed to the services that need it.
type RegionTable struct {
	provinces []RegionNode
	byCode    map[string]*RegionNode
}

// NewRegionTable loads the division tree from the JSON files in dir.
// Every *.json file in the directory is parsed as an array of
// province nodes; files are merged in name order.
func NewRegionTable(dir string) (*RegionTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Failed to read region data directory %s", dir), common.StatusInternalServerError, err)
	}

	table := &RegionTable{
		byCode: make(map[string]*RegionNode),
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Failed to read region data file %s", entry.Name()), common.StatusInternalServerError, err)
		}
		var provinces []RegionNode
		if err := json.Unmarshal(data, &provinces); err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Invalid region data in %s", entry.Name()), common.StatusBadRequest, err)
		}
		table.provinces = append(table.provinces, provinces...)
	}

	for i := range table.provinces {
		table.index(&table.provinces[i])
	}
	return table, nil
}

// NewRegionTableFromNodes builds a table directly from province nodes.
func NewRegionTableFromNodes(provinces []RegionNode) *RegionTable {
	table := &RegionTable{
		provinces: provinces,
		byCode:    make(map[string]*RegionNode),
	}
	for i := range table.provinces {
		table.index(&table.provinces[i])
	}
	return table
}

func (t *RegionTable) index(node *RegionNode) {
	t.byCode[node.Code] = node
	for i := range node.Children {
		t.index(&node.Children[i])
	}
}

// Provinces returns the top level of the tree.
func (t *RegionTable) Provinces() []RegionNode {
	return t.provinces
}

// Children returns the direct children of the division with the given
// code, or ErrNotFound when the code is unknown.
func (t *RegionTable) Children(code string) ([]RegionNode, error) {
	node, ok := t.byCode[code]
	if !ok {
		return nil, common.ErrNotFound
	}
	return node.Children, nil
}

// CodesToNames resolves a province/city/area code triple to the three
// display names. Unknown codes resolve to an empty string so a
// partially stale stored triple still renders.
func (t *RegionTable) CodesToNames(codes []string) []string {
	names := make([]string, len(codes))
	for i, code := range codes {
		if node, ok := t.byCode[code]; ok {
			names[i] = node.Name
		}
	}
	return names
}
