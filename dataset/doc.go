// Package dataset holds the paired (X, Y) observations analysed by iqrfit and
// reads them from delimited text files.
//
// Input files carry one observation per line with three whitespace-separated
// columns: an identifier, the X value and the Y value. Blank lines and lines
// starting with '#' are ignored. Files ending in .gz, .zst, .s2 or .lz4 are
// decompressed transparently.
//
//	ds, err := dataset.Load("residues.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ds.Len(), ds.IDs())
package dataset
