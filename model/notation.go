package model

// Row is the flushed text of up to five consecutive measures of one hand.
type Row = string

// RowPair holds the top and bottom rows for one row index, padded to the
// same rune count.
type RowPair struct {
	Top    Row
	Bottom Row
}

type NotationBlock []RowPair
