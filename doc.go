// Package dwgbits reads and writes the bit-level primitives of the DWG
// drawing format.
//
// A Cursor walks a byte buffer bit by bit, most significant bit first.
// Raw values (B, BB, 3B, RC, RS, RL, RLL, RD) are read at any bit offset;
// compacted ones (BS, BL, BLL, BOT, MC, UMC, MS, BD, DD, BT, BE) spend a
// short prefix to pick their width. Text comes as narrow codepage strings
// before R2007 and as UCS-2 from R2007; Text and the T family hide the
// difference. Handles, colors, section CRCs and the R2007 string stream
// complete the set.
//
// Reads never fail: a bad prefix or a short buffer records an Event on the
// cursor's Recorder and yields zero (or the NaN sentinel for doubles). A
// Strictness other than Lenient turns too many errors into a panic with
// *AbortError.
//
//	c := dwgbits.NewReader(data, dwgbits.Options{Version: dwgbits.R2000})
//	n := c.ReadBL()
//	name := c.TextString(c.ReadT())
package dwgbits
