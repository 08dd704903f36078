// Package columnar exports cleaned tables as Apache Arrow records so that
// columnar consumers can take the result without re-parsing text.
//
// # Overview
//
// Column kinds map to Arrow types:
//   - numeric columns become Float64
//   - text columns become String, numbers in them rendered in shortest form
//
// Missing cells become Arrow nulls in either case.
//
// # Usage
//
//	rec, err := columnar.ToArrow(res.Table, memory.NewGoAllocator())
//	if err != nil {
//		return err
//	}
//	defer rec.Release()
//
// EncodeIPC serializes a record into the Arrow IPC stream format in memory.
package columnar
