// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

/*
Package achx reads and writes NACHA formatted ACH files.

Files are built from validated Entry values grouped into Batch values, which
compute their own control totals. Encode writes every record as a 94
character line and pads the file to a multiple of 10 lines with filler
records. Decode reverses that, with one known loss: batch headers only carry
8 digits of the originating routing number so decoded batches take the file's
immediate origin.
*/
package achx
