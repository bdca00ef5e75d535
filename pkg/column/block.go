package column

// WithMeta pairs a column with the name and logical type it is exposed
// under. It is the unit a Block is assembled from.
type WithMeta struct {
	Column  Column
	Logical string
	Name    string
}

// Slice returns the same name/logical pairing over a row range view.
func (c WithMeta) Slice(start, length int) WithMeta {
	return WithMeta{Column: c.Column.Slice(start, length), Logical: c.Logical, Name: c.Name}
}

// Block is one columnar batch: an ordered set of equal-length named, typed
// columns covering a contiguous range of logical rows. Blocks are freshly
// allocated per batch request and owned by the caller afterwards.
type Block struct {
	cols []WithMeta
}

// NewBlock assembles a block from columns in output order.
func NewBlock(cols []WithMeta) *Block {
	return &Block{cols: cols}
}

// Columns returns the columns in output order.
func (b *Block) Columns() []WithMeta { return b.cols }

// NumColumns returns the column count.
func (b *Block) NumColumns() int { return len(b.cols) }

// Rows returns the row count shared by every column (0 for an empty block).
func (b *Block) Rows() int {
	if len(b.cols) == 0 {
		return 0
	}
	return b.cols[0].Column.Len()
}

// ColumnByName returns the column exposed under name.
func (b *Block) ColumnByName(name string) (WithMeta, bool) {
	for _, c := range b.cols {
		if c.Name == name {
			return c, true
		}
	}
	return WithMeta{}, false
}
