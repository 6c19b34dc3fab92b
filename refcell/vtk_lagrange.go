package refcell

// Serialization of structured high-order Lagrange node layouts into VTK's
// node ordering. VTK groups nodes by topological stratum (vertices, then
// edges, then faces, then body) and orders within each stratum by a fixed
// convention. A node is classified by counting how many of its lattice
// coordinates sit on an axis boundary.

// VTKLexicographicToNodeIndex2D converts the lattice coordinate (i,j) of a
// Lagrange quadrilateral node layout into VTK's serialized node index.
// nodesPerDirection holds the polynomial degree per axis, so the lattice
// spans [0,nodesPerDirection[d]] inclusive. Only Quadrilateral supports
// this operation.
func (t Type) VTKLexicographicToNodeIndex2D(nodeIndices, nodesPerDirection [2]int) int {
	if t != Quadrilateral {
		panic(notImplemented(t, "VTKLexicographicToNodeIndex2D"))
	}

	i, j := nodeIndices[0], nodeIndices[1]
	ni, nj := nodesPerDirection[0], nodesPerDirection[1]

	ibdy := i == 0 || i == ni
	jbdy := j == 0 || j == nj
	nbdy := 0
	if ibdy {
		nbdy++
	}
	if jbdy {
		nbdy++
	}

	if nbdy == 2 { // vertex stratum
		v := 0
		if i != 0 {
			if j != 0 {
				v = 2
			} else {
				v = 1
			}
		} else if j != 0 {
			v = 3
		}
		return v
	}

	offset := 4
	if nbdy == 1 { // edge stratum
		if !ibdy { // free along the i axis
			base := 0
			if j != 0 {
				base = ni - 1 + nj - 1
			}
			return (i - 1) + base + offset
		}
		// free along the j axis
		base := 2*(ni-1) + nj - 1
		if i != 0 {
			base = ni - 1
		}
		return (j - 1) + base + offset
	}

	// nbdy == 0: face stratum
	offset += 2 * (ni - 1 + nj - 1)
	return offset + (i - 1) + (ni-1)*(j-1)
}

// VTKLexicographicToNodeIndex3D converts the lattice coordinate (i,j,k) of
// a Lagrange hexahedron node layout into VTK's serialized node index.
// legacyFormat selects the historical VTK convention, which orders two of
// the vertical edges (lines 10 and 11) the other way around. Only
// Hexahedron supports this operation.
func (t Type) VTKLexicographicToNodeIndex3D(nodeIndices, nodesPerDirection [3]int, legacyFormat bool) int {
	if t != Hexahedron {
		panic(notImplemented(t, "VTKLexicographicToNodeIndex3D"))
	}

	i, j, k := nodeIndices[0], nodeIndices[1], nodeIndices[2]
	ni, nj, nk := nodesPerDirection[0], nodesPerDirection[1], nodesPerDirection[2]

	ibdy := i == 0 || i == ni
	jbdy := j == 0 || j == nj
	kbdy := k == 0 || k == nk
	nbdy := 0
	if ibdy {
		nbdy++
	}
	if jbdy {
		nbdy++
	}
	if kbdy {
		nbdy++
	}

	if nbdy == 3 { // vertex stratum
		v := 0
		if i != 0 {
			if j != 0 {
				v = 2
			} else {
				v = 1
			}
		} else if j != 0 {
			v = 3
		}
		if k != 0 {
			v += 4
		}
		return v
	}

	offset := 8
	if nbdy == 2 { // edge stratum
		if !ibdy { // free along the i axis
			base := 0
			if j != 0 {
				base = ni - 1 + nj - 1
			}
			if k != 0 {
				base += 2 * (ni - 1 + nj - 1)
			}
			return (i - 1) + base + offset
		}
		if !jbdy { // free along the j axis
			base := 2*(ni-1) + nj - 1
			if i != 0 {
				base = ni - 1
			}
			if k != 0 {
				base += 2 * (ni - 1 + nj - 1)
			}
			return (j - 1) + base + offset
		}
		// free along the k axis
		offset += 4*(ni-1) + 4*(nj-1)
		var column int
		if legacyFormat {
			if i != 0 {
				if j != 0 {
					column = 3
				} else {
					column = 1
				}
			} else if j != 0 {
				column = 2
			}
		} else {
			if i != 0 {
				if j != 0 {
					column = 2
				} else {
					column = 1
				}
			} else if j != 0 {
				column = 3
			}
		}
		return (k - 1) + (nk-1)*column + offset
	}

	offset += 4 * (ni - 1 + nj - 1 + nk - 1)
	if nbdy == 1 { // face stratum
		if ibdy { // i-normal face
			base := 0
			if i != 0 {
				base = (nj - 1) * (nk - 1)
			}
			return (j - 1) + (nj-1)*(k-1) + base + offset
		}
		offset += 2 * (nj - 1) * (nk - 1)
		if jbdy { // j-normal face
			base := 0
			if j != 0 {
				base = (nk - 1) * (ni - 1)
			}
			return (i - 1) + (ni-1)*(k-1) + base + offset
		}
		// k-normal face
		offset += 2 * (nk - 1) * (ni - 1)
		base := 0
		if k != 0 {
			base = (ni - 1) * (nj - 1)
		}
		return (i - 1) + (ni-1)*(j-1) + base + offset
	}

	// nbdy == 0: body stratum
	offset += 2 * ((nj-1)*(nk-1) + (nk-1)*(ni-1) + (ni-1)*(nj-1))
	return offset + (i - 1) + (ni-1)*((j-1)+(nj-1)*(k-1))
}
