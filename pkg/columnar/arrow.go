package columnar

import (
	"bytes"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// KindMetadataKey is the field metadata key holding the table column kind
const KindMetadataKey = "tabclean.kind"

// Schema returns the Arrow schema for t
func Schema(t *table.Table) *arrow.Schema {
	fields := make([]arrow.Field, t.Width())
	for i, col := range t.Columns() {
		kind := col.Kind()
		fields[i] = arrow.Field{
			Name:     col.Name,
			Type:     arrowType(kind),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{KindMetadataKey}, []string{kind.String()}),
		}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(k table.Kind) arrow.DataType {
	if k == table.KindNumeric {
		return arrow.PrimitiveTypes.Float64
	}
	return arrow.BinaryTypes.String
}

// ToArrow converts t into a single Arrow record. The caller must Release it.
// A nil allocator uses the Go allocator.
func ToArrow(t *table.Table, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema := Schema(t)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for i, col := range t.Columns() {
		if err := appendColumn(b.Field(i), col); err != nil {
			return nil, err
		}
	}
	return b.NewRecord(), nil
}

func appendColumn(builder array.Builder, col table.Column) error {
	switch fb := builder.(type) {
	case *array.Float64Builder:
		fb.Reserve(col.Len())
		for _, cell := range col.Cells {
			if f, ok := cell.AsNumber(); ok {
				fb.Append(f)
			} else {
				fb.AppendNull()
			}
		}
	case *array.StringBuilder:
		fb.Reserve(col.Len())
		for _, cell := range col.Cells {
			if cell.IsMissing() {
				fb.AppendNull()
			} else {
				fb.Append(cell.String())
			}
		}
	default:
		return errors.Newf(errors.ErrorTypeInternal, "unsupported arrow builder %T for column %q", builder, col.Name)
	}
	return nil
}

// EncodeIPC serializes rec in the Arrow IPC stream format
func EncodeIPC(rec arrow.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to write arrow record")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to close arrow writer")
	}
	return buf.Bytes(), nil
}
