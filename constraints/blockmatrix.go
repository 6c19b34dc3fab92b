package constraints

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// BlockIndices maps between a global index and a (block, within-block)
// pair for a contiguous block partition of [0, total).
type BlockIndices struct {
	starts []int // len nBlocks+1, starts[n] == total
}

// NewBlockIndices builds the index mapping for the given block sizes.
func NewBlockIndices(sizes []int) BlockIndices {
	starts := make([]int, len(sizes)+1)
	for b, size := range sizes {
		if size < 0 {
			panic(fmt.Sprintf("constraints: negative block size %d", size))
		}
		starts[b+1] = starts[b] + size
	}
	return BlockIndices{starts: starts}
}

// NBlocks returns the number of blocks.
func (bi BlockIndices) NBlocks() int { return len(bi.starts) - 1 }

// Total returns the summed size of all blocks.
func (bi BlockIndices) Total() int { return bi.starts[len(bi.starts)-1] }

// GlobalToLocal splits a global index into its block and within-block part.
func (bi BlockIndices) GlobalToLocal(i int) (block, local int) {
	if i < 0 || i >= bi.Total() {
		panic(fmt.Sprintf("constraints: block index %d out of range [0,%d)", i, bi.Total()))
	}
	block = 0
	for bi.starts[block+1] <= i {
		block++
	}
	return block, i - bi.starts[block]
}

// LocalToGlobal recombines a (block, within-block) pair.
func (bi BlockIndices) LocalToGlobal(block, local int) int {
	return bi.starts[block] + local
}

// BlockMatrix is a block-structured sparse matrix presenting the flat
// SparseMatrix view the constraint operations need, so condensation and
// distribution run unchanged on block systems.
type BlockMatrix struct {
	rowIndices BlockIndices
	colIndices BlockIndices
	blocks     [][]*sparse.DOK
}

// NewBlockMatrix allocates a block matrix with DOK blocks of the given
// row and column partition sizes.
func NewBlockMatrix(rowSizes, colSizes []int) *BlockMatrix {
	bm := &BlockMatrix{
		rowIndices: NewBlockIndices(rowSizes),
		colIndices: NewBlockIndices(colSizes),
	}
	bm.blocks = make([][]*sparse.DOK, len(rowSizes))
	for br := range bm.blocks {
		bm.blocks[br] = make([]*sparse.DOK, len(colSizes))
		for bc := range bm.blocks[br] {
			bm.blocks[br][bc] = sparse.NewDOK(rowSizes[br], colSizes[bc])
		}
	}
	return bm
}

// Block returns the sparse block at block position (br, bc).
func (bm *BlockMatrix) Block(br, bc int) *sparse.DOK { return bm.blocks[br][bc] }

// RowIndices returns the row block partition.
func (bm *BlockMatrix) RowIndices() BlockIndices { return bm.rowIndices }

// ColIndices returns the column block partition.
func (bm *BlockMatrix) ColIndices() BlockIndices { return bm.colIndices }

// Dims returns the overall matrix dimensions.
func (bm *BlockMatrix) Dims() (r, c int) {
	return bm.rowIndices.Total(), bm.colIndices.Total()
}

// At reads the entry at global position (i, j).
func (bm *BlockMatrix) At(i, j int) float64 {
	br, lr := bm.rowIndices.GlobalToLocal(i)
	bc, lc := bm.colIndices.GlobalToLocal(j)
	return bm.blocks[br][bc].At(lr, lc)
}

// Set writes the entry at global position (i, j).
func (bm *BlockMatrix) Set(i, j int, v float64) {
	br, lr := bm.rowIndices.GlobalToLocal(i)
	bc, lc := bm.colIndices.GlobalToLocal(j)
	bm.blocks[br][bc].Set(lr, lc, v)
}

// DoNonZero visits all stored entries with their global positions.
func (bm *BlockMatrix) DoNonZero(fn func(i, j int, v float64)) {
	for br := range bm.blocks {
		for bc := range bm.blocks[br] {
			rowStart := bm.rowIndices.starts[br]
			colStart := bm.colIndices.starts[bc]
			bm.blocks[br][bc].DoNonZero(func(lr, lc int, v float64) {
				fn(rowStart+lr, colStart+lc, v)
			})
		}
	}
}
