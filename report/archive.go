package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arloliu/iqrfit/analysis"
	"github.com/arloliu/iqrfit/compress"
	"github.com/arloliu/iqrfit/format"
	"github.com/arloliu/iqrfit/internal/pool"
)

// ArchiveVersion is the version written by WriteArchive.
const ArchiveVersion = 1

// Archive is the persisted record of one run.
type Archive struct {
	Version int `json:"version"`
	Meta
	Fingerprint string            `json:"fingerprint"`
	Outcome     *analysis.Outcome `json:"outcome"`
	// Errors maps an orientation name to the error that aborted it.
	Errors map[string]string `json:"errors,omitempty"`
}

// NewArchive wraps out for persistence.
func NewArchive(meta Meta, out *analysis.Outcome) *Archive {
	a := &Archive{
		Version:     ArchiveVersion,
		Meta:        meta,
		Fingerprint: fmt.Sprintf("%016x", out.Fingerprint),
		Outcome:     out,
	}
	for _, res := range out.Results {
		if res == nil || res.Err == nil {
			continue
		}
		if a.Errors == nil {
			a.Errors = make(map[string]string)
		}
		a.Errors[res.Orientation.String()] = res.Err.Error()
	}

	return a
}

// WriteArchive encodes a as JSON, compresses it with ct and writes it to w.
func WriteArchive(w io.Writer, a *Archive, ct format.CompressionType) (compress.Stats, error) {
	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return compress.Stats{}, fmt.Errorf("encode archive: %w", err)
	}

	data, stats, err := compress.Compress(ct, buf.Bytes())
	if err != nil {
		return compress.Stats{}, err
	}

	if _, err := w.Write(data); err != nil {
		return compress.Stats{}, fmt.Errorf("write archive: %w", err)
	}

	return stats, nil
}

// ReadArchive reads an archive written by WriteArchive with the same ct.
func ReadArchive(r io.Reader, ct format.CompressionType) (*Archive, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", ct, err)
	}

	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	if a.Version != ArchiveVersion {
		return nil, fmt.Errorf("unsupported archive version %d", a.Version)
	}

	return &a, nil
}
