package rawhdf5

import (
	"bytes"
	"testing"
)

func TestIsGroupDetectsSymbolTableMessage(t *testing.T) {
	header := buildV1ObjectHeader([][]byte{
		typeTag(msgSymbolTable), make([]byte, 16),
	})
	r := bytes.NewReader(header)
	isGroup, err := IsGroup(r, testSuperblockInfo(), 0)
	if err != nil {
		t.Fatalf("IsGroup: %v", err)
	}
	if !isGroup {
		t.Fatalf("a symbol-table-bearing object header should report as a group")
	}
}

func TestIsGroupRejectsDatasetHeader(t *testing.T) {
	header := buildV1ObjectHeader([][]byte{
		typeTag(msgDataspace), buildV1Dataspace(1),
		typeTag(msgDatatype), buildV1Datatype(typeClassFloat, 8),
	})
	r := bytes.NewReader(header)
	isGroup, err := IsGroup(r, testSuperblockInfo(), 0)
	if err != nil {
		t.Fatalf("IsGroup: %v", err)
	}
	if isGroup {
		t.Fatalf("an object header carrying a datatype message should not report as a group")
	}
}
