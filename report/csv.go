package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{"name", "ref_words", "ref_chars", "word_edits", "char_edits", "wer", "cer", "error"}

// WriteCSV writes one line per row after a header. Rates use five decimals,
// as the editdist command prints them.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			row.Name,
			strconv.Itoa(row.RefWords),
			strconv.Itoa(row.RefChars),
			strconv.Itoa(row.WordEdits),
			strconv.Itoa(row.CharEdits),
			fmt.Sprintf("%.5f", row.WER),
			fmt.Sprintf("%.5f", row.CER),
			row.Err,
		}
		if row.Err != "" {
			record[5], record[6] = "", ""
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
