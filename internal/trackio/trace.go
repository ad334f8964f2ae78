package trackio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/cxd309/speed-profile/internal/profile"
)

// Trace output formats.
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

var traceHeader = []string{"time_s", "velocity", "distance", "segment", "phase"}

// WriteTraceCSV writes samples as CSV with a header row.
func WriteTraceCSV(w io.Writer, samples []profile.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.Time),
			formatFloat(s.Velocity),
			formatFloat(s.Distance),
			strconv.Itoa(s.Segment),
			string(s.Phase),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTraceJSON writes samples as an indented JSON array.
func WriteTraceJSON(w io.Writer, samples []profile.Sample) error {
	if samples == nil {
		samples = []profile.Sample{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(samples)
}

type traceParquetRow struct {
	TimeS    float64 `parquet:"name=time_s, type=DOUBLE"`
	Velocity float64 `parquet:"name=velocity, type=DOUBLE"`
	Distance float64 `parquet:"name=distance, type=DOUBLE"`
	Segment  int64   `parquet:"name=segment, type=INT64"`
	Phase    string  `parquet:"name=phase, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// WriteTraceParquet writes samples to a SNAPPY-compressed Parquet file at path.
func WriteTraceParquet(path string, samples []profile.Sample) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(traceParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range samples {
		row := traceParquetRow{
			TimeS:    s.Time,
			Velocity: s.Velocity,
			Distance: s.Distance,
			Segment:  int64(s.Segment),
			Phase:    string(s.Phase),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

// WriteTrace writes samples to path in the given format.
func WriteTrace(path, format string, samples []profile.Sample) error {
	switch format {
	case FormatParquet:
		return WriteTraceParquet(path, samples)
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("unsupported trace format %q (want csv, json or parquet)", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if format == FormatCSV {
		err = WriteTraceCSV(f, samples)
	} else {
		err = WriteTraceJSON(f, samples)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
