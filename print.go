package cmpent

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arloliu/cmpent/section"
)

// hex dump width of PrintData
const printDataBytesPerLine = 32

// fieldLabels are the human-readable names of the specific header fields.
var fieldLabels = map[string]string{
	section.FieldImaSpill.Name:     "Used Spillover Threshold Parameter",
	section.FieldImaGolombPar.Name: "Used Golomb Parameter",
	section.FieldAP1Spill.Name:     "Used Adaptive 1 Spillover Threshold Parameter",
	section.FieldAP1GolombPar.Name: "Used Adaptive 1 Golomb Parameter",
	section.FieldAP2Spill.Name:     "Used Adaptive 2 Spillover Threshold Parameter",
	section.FieldAP2GolombPar.Name: "Used Adaptive 2 Golomb Parameter",
}

func init() {
	for n := 1; n <= section.NonImaPairCount; n++ {
		spill, _ := section.NonImaSpillField(n)
		par, _ := section.NonImaCmpParField(n)
		fieldLabels[spill.Name] = fmt.Sprintf("Used Spillover Threshold Parameter %d", n)
		fieldLabels[par.Name] = fmt.Sprintf("Used Compression Parameter %d", n)
	}
}

func specificLabel(f section.Field) string {
	if label, ok := fieldLabels[f.Name]; ok {
		return label
	}

	return f.Name
}

// Print writes the header and the payload of the entity to w.
func (e *Entity) Print(w io.Writer) error {
	if err := e.PrintHeader(w); err != nil {
		return err
	}

	return e.PrintData(w)
}

// PrintHeader writes every header field of the entity's variant to w, in wire order.
func (e *Entity) PrintHeader(w io.Writer) error {
	bw := bufio.NewWriter(w)

	id := e.VersionID()
	if IsToolVersionID(id) {
		major, minor := SplitToolVersionID(id)
		fmt.Fprintf(bw, "Compressed with cmp_tool version: %d.%02d\n", major, minor)
	} else {
		fmt.Fprintf(bw, "ICU ASW Version ID: %d\n", id)
	}

	start, end := e.StartTimestamp(), e.EndTimestamp()
	fmt.Fprintf(bw, "Compression Entity Size: %d byte\n", e.Size())
	fmt.Fprintf(bw, "Original Data Size: %d byte\n", e.OriginalSize())
	fmt.Fprintf(bw, "Compression Coarse Start Time: %d\n", start.Coarse)
	fmt.Fprintf(bw, "Compression Fine Start Time: %d\n", start.Fine)
	fmt.Fprintf(bw, "Compression Coarse End Time: %d\n", end.Coarse)
	fmt.Fprintf(bw, "Compression Fine End Time: %d\n", end.Fine)
	fmt.Fprintf(bw, "Data were compressed on: %s\n", start.Time().Format("2006-01-02T15:04:05.000000Z07:00"))
	fmt.Fprintf(bw, "The compression took %f second\n", end.Sub(start))
	fmt.Fprintf(bw, "Data Product Type: %d (%s)\n", e.DataType(), e.DataType())
	if e.RawBit() {
		fmt.Fprintln(bw, "RAW bit in the Data Product Type is set")
	} else {
		fmt.Fprintln(bw, "RAW bit in the Data Product Type is not set")
	}
	fmt.Fprintf(bw, "Used Compression Mode: %d (%s)\n", e.CmpMode(), e.CmpMode())
	fmt.Fprintf(bw, "Used Model Updating Weighing Value: %d\n", e.ModelValue())
	fmt.Fprintf(bw, "Model ID: %d\n", e.ModelID())
	fmt.Fprintf(bw, "Model Counter: %d\n", e.ModelCounter())
	fmt.Fprintf(bw, "Maximum Used Bits Registry Version: %d\n", e.MaxUsedBitsVersion())
	fmt.Fprintf(bw, "Used Lossy Compression Parameters: %d\n", e.LossyCmpPar())

	for _, f := range section.VariantFields(e.variant) {
		v, err := e.Get(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%s: %d\n", specificLabel(f), v)
	}

	return bw.Flush()
}

// PrintData writes the payload of the entity to w as hex, 32 bytes per line.
func (e *Entity) PrintData(w io.Writer) error {
	bw := bufio.NewWriter(w)
	data := e.CmpData()

	fmt.Fprintf(bw, "Compressed Data (%d byte):\n", len(data))
	for off := 0; off < len(data); off += printDataBytesPerLine {
		line := data[off:min(off+printDataBytesPerLine, len(data))]
		for i, b := range line {
			if i > 0 {
				_ = bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%02X", b)
		}
		_ = bw.WriteByte('\n')
	}

	return bw.Flush()
}
