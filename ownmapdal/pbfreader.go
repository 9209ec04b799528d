package ownmapdal

import (
	"context"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

type PBFReader interface {
	Header() (*osmpbf.Header, error)
	Scan() bool
	Object() osm.Object
	Err() error
	FullyScannedBytes() int64
	TotalSize() int64
}

type DefaultPBFReader struct {
	*osmpbf.Scanner
	totalSize int64
}

func NewDefaultPBFReader(file gofs.File) (*DefaultPBFReader, errorsx.Error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	osmPBFReader := osmpbf.New(context.Background(), file, runtime.NumCPU())

	return &DefaultPBFReader{osmPBFReader, fileInfo.Size()}, nil
}

func (r *DefaultPBFReader) TotalSize() int64 {
	return r.totalSize
}

const progressLogInterval = 1000 * 1000

// ReadPBFExtract scans every object of the reader into an extract. The bounds are taken from the file header.
func ReadPBFExtract(logger *logpkg.Logger, pbfReader PBFReader) (*ownmap.MapExtract, errorsx.Error) {
	header, err := pbfReader.Header()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	var bounds *osm.Bounds
	if header != nil {
		bounds = header.Bounds
	}

	builder := ownmap.NewExtractBuilder(bounds)

	var scannedCount int
	for pbfReader.Scan() {
		builder.Add(pbfReader.Object())
		scannedCount++

		if scannedCount%progressLogInterval == 0 {
			logger.Debug(
				"scanned %d objects (%s of %s)",
				scannedCount,
				humanize.Bytes(uint64(pbfReader.FullyScannedBytes())),
				humanize.Bytes(uint64(pbfReader.TotalSize())),
			)
		}
	}

	err = pbfReader.Err()
	if err != nil {
		return nil, errorsx.Wrap(err, "objects scanned", scannedCount)
	}

	return builder.Build(), nil
}
