package cmpent

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/cmpent/format"
)

func FuzzParse(f *testing.F) {
	// Seed corpus with one valid entity per variant
	for _, dt := range []format.DataType{format.DataTypeImagette, format.DataTypeImagetteAdaptive, format.DataTypeOffset} {
		ent, err := Build(fullConfig(dt, format.CmpModeDiffZero), []byte("payload"))
		if err != nil {
			f.Fatal(err)
		}
		f.Add(ent.Bytes())
	}
	f.Add([]byte{})
	f.Add(make([]byte, GenericHeaderSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		ent, err := Parse(data)
		if err != nil {
			if ent != nil {
				t.Fatalf("Parse returned an entity together with error %v", err)
			}
			return
		}

		if int(ent.Size()) != len(ent.Bytes()) {
			t.Fatalf("size %d does not match buffer length %d", ent.Size(), len(ent.Bytes()))
		}
		if ent.HeaderSize()+ent.CmpDataSize() != int(ent.Size()) {
			t.Fatalf("header %d + payload %d != size %d", ent.HeaderSize(), ent.CmpDataSize(), ent.Size())
		}
		if !bytes.Equal(ent.Bytes(), data[:ent.Size()]) {
			t.Fatal("entity bytes differ from the input prefix")
		}

		// every accessor of a parsed entity is safe to call
		if err := ent.Print(io.Discard); err != nil {
			t.Fatal(err)
		}
		_ = ent.Validate()

		again, err := Parse(ent.Bytes(), WithCopy())
		if err != nil {
			t.Fatalf("reparse failed: %v", err)
		}
		if again.Checksum() != ent.Checksum() {
			t.Fatal("checksum changed on reparse")
		}
	})
}
