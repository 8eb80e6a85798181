package result

import "github.com/swift-glide/questdb-go/dynval"

// RecordDecoder is the capability a target record type implements to
// materialize itself from a Row. DecodeRecord reads the fields it needs
// through the Row accessors; a returned error drops the row from the
// projection result.
type RecordDecoder interface {
	DecodeRecord(r Row) error
}

// RecordPtr constrains PT to be a pointer to T that can decode itself.
type RecordPtr[T any] interface {
	*T
	RecordDecoder
}

// Drops counts rows removed during projection.
type Drops struct {
	// ShapeMismatch counts dataset rows whose length disagreed with the
	// column count.
	ShapeMismatch int

	// Materialize counts rows the target type failed to decode.
	Materialize int
}

// Zip pairs column names against dataset rows, one Row per dataset row in
// original order. A row whose length disagrees with the column count is
// dropped silently.
func Zip(columns []Column, dataset [][]dynval.Value) []Row {
	rows := make([]Row, 0, len(dataset))
	for _, cells := range dataset {
		if len(cells) != len(columns) {
			continue
		}
		rows = append(rows, zipRow(columns, cells))
	}
	return rows
}

func zipRow(columns []Column, cells []dynval.Value) Row {
	row := make(Row, len(columns))
	for i, col := range columns {
		row[col.Name] = cells[i]
	}
	return row
}

// Project materializes one T per dataset row, preserving order. Rows with a
// shape mismatch and rows T fails to decode are dropped silently, so the
// output is a strict subsequence of the dataset. Callers who need to know
// how much was dropped use ProjectCounted.
func Project[T any, PT RecordPtr[T]](columns []Column, dataset [][]dynval.Value) []T {
	records, _ := ProjectCounted[T, PT](columns, dataset)
	return records
}

// ProjectCounted is Project with drop diagnostics.
func ProjectCounted[T any, PT RecordPtr[T]](columns []Column, dataset [][]dynval.Value) ([]T, Drops) {
	var drops Drops
	records := make([]T, 0, len(dataset))
	for _, cells := range dataset {
		if len(cells) != len(columns) {
			drops.ShapeMismatch++
			continue
		}
		row := zipRow(columns, cells)
		var rec T
		if err := PT(&rec).DecodeRecord(row); err != nil {
			drops.Materialize++
			continue
		}
		records = append(records, rec)
	}
	return records, drops
}

// ProjectResponse projects a parsed response's dataset.
func ProjectResponse[T any, PT RecordPtr[T]](resp *Response) []T {
	return Project[T, PT](resp.Columns, resp.Dataset)
}
