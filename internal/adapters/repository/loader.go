package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

// Format names a dataset encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads and decodes the dataset at path.
func LoadFile(ctx context.Context, path string, log logger.Logger) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(ctx, f, format, log)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// Decode parses a dataset document. Rows failing validation are skipped,
// logged and counted; only a malformed document is an error.
func Decode(ctx context.Context, r io.Reader, format Format, log logger.Logger) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		err = dec.Decode(&doc)
	case FormatYAML:
		err = yaml.Unmarshal(raw, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if log == nil {
		log = logger.Nop()
	}
	ds := &Dataset{LoadedAt: time.Now()}

	ds.Records = make([]model.PerformanceRecord, 0, len(doc.Performances))
	for i, w := range doc.Performances {
		rec, err := w.toRecord()
		if err != nil {
			ds.Stats.SkippedRecords++
			log.Warn(ctx, "skipping performance row", logger.Int("index", i), logger.String("model", w.Model), logger.Error(err))
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	ds.Models = make([]model.ModelDescriptor, 0, len(doc.Models))
	for i, w := range doc.Models {
		m, err := w.toDescriptor()
		if err != nil {
			ds.Stats.SkippedModels++
			log.Warn(ctx, "skipping model row", logger.Int("index", i), logger.String("model_repr", w.ModelRepr), logger.Error(err))
			continue
		}
		ds.Models = append(ds.Models, m)
	}

	ds.Stats.Records = len(ds.Records)
	ds.Stats.Models = len(ds.Models)
	metrics.RecordSkippedRows("performances", ds.Stats.SkippedRecords)
	metrics.RecordSkippedRows("models", ds.Stats.SkippedModels)
	return ds, nil
}

// Encode writes ds in format using the canonical keys, so the output loads
// back into an equal dataset.
func Encode(w io.Writer, ds *Dataset, format Format) error {
	doc := document{
		Performances: make([]wireRecord, 0, len(ds.Records)),
		Models:       make([]wireModel, 0, len(ds.Models)),
	}
	for _, r := range ds.Records {
		doc.Performances = append(doc.Performances, fromRecord(r))
	}
	for _, m := range ds.Models {
		doc.Models = append(doc.Models, fromDescriptor(m))
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
