package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arloliu/iqrfit/analysis"
	"github.com/arloliu/iqrfit/format"
	"github.com/arloliu/iqrfit/internal/pool"
)

const (
	summaryPrecision = 4

	colRound    = 5
	colQuartile = 12
	colIQR      = 10
	colSep      = "  "
)

var summaryHeader = fmt.Sprintf("%*s%s%*s%s%*s%s%*s%s",
	colRound, "ROUND", colSep,
	colQuartile, "1st QUARTILE", colSep,
	colQuartile, "3rd QUARTILE", colSep,
	colIQR, "IQR", colSep+"OUTLIERS")

// WriteSummary writes the per-round quartile table of every orientation in out.
// Values are rounded to four decimals.
func WriteSummary(w io.Writer, meta Meta, out *analysis.Outcome) error {
	buf := pool.GetReportBuffer()
	defer pool.PutReportBuffer(buf)

	fmt.Fprintf(buf, "iqrfit summary\n")
	fmt.Fprintf(buf, "run:          %s\n", meta.RunID)
	fmt.Fprintf(buf, "source:       %s\n", meta.Source)
	fmt.Fprintf(buf, "created:      %s\n", meta.Created.Format(time.RFC3339))
	fmt.Fprintf(buf, "observations: %d\n", out.Size)
	fmt.Fprintf(buf, "iterate:      %s\n", yesNo(out.Config.Iterate))
	fmt.Fprintf(buf, "swap axes:    %s\n", yesNo(out.Config.SwapAxes))

	for _, res := range out.Results {
		if res == nil {
			continue
		}
		buf.WriteByte('\n')
		writeResult(buf, res)
	}

	if len(out.Results) > 1 {
		fmt.Fprintf(buf, "\nall outliers: %s\n", idList(out.UnionOutlierIDs()))
	}

	_, err := buf.WriteTo(w)

	return err
}

func writeResult(buf *pool.ByteBuffer, res *analysis.Result) {
	indep := res.Orientation.Independent()
	fmt.Fprintf(buf, "%s orientation (%s on %s)\n", res.Orientation, indep.Other(), indep)
	buf.WriteString(summaryHeader)
	buf.WriteByte('\n')

	for _, r := range res.Rounds {
		buf.AppendInt(r.Index, colRound)
		buf.WriteString(colSep)
		buf.AppendFloat(r.Summary.Q1, summaryPrecision, colQuartile)
		buf.WriteString(colSep)
		buf.AppendFloat(r.Summary.Q3, summaryPrecision, colQuartile)
		buf.WriteString(colSep)
		buf.AppendFloat(r.Summary.IQR, summaryPrecision, colIQR)
		buf.WriteString(colSep)
		buf.WriteString(idList(r.OutlierIDs))
		buf.WriteByte('\n')
	}

	if len(res.Rounds) > 0 {
		fmt.Fprintf(buf, "final fit: %s  (R² %.4f)\n", res.FinalFit.Formula(), res.FinalFit.RSquared)
	}

	stop := fmt.Sprintf("%s after %d round%s", res.StopReason, len(res.Rounds), plural(len(res.Rounds)))
	switch {
	case res.StopReason == format.StopExhausted && res.Exhausted != nil:
		stop += " (" + res.Exhausted.Error() + ")"
	case res.Err != nil:
		stop += ": " + res.Err.Error()
	}
	fmt.Fprintf(buf, "stop:      %s\n", stop)
	fmt.Fprintf(buf, "outliers:  %s\n", idList(res.AllOutlierIDs))
}

func idList(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}

	return strings.Join(ids, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}
