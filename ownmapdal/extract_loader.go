package ownmapdal

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/ownmap"
)

// LoadExtract reads a whole extract file into memory
func LoadExtract(logger *logpkg.Logger, fs gofs.Fs, path string) (*ownmap.MapExtract, errorsx.Error) {
	extractFilePath, err := ParseExtractFilePath(path)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	file, openErr := fs.Open(extractFilePath.Path)
	if openErr != nil {
		return nil, errorsx.Wrap(openErr, "path", extractFilePath.Path)
	}
	defer file.Close()

	fileInfo, statErr := file.Stat()
	if statErr != nil {
		return nil, errorsx.Wrap(statErr, "path", extractFilePath.Path)
	}

	logger.Info("loading %s extract from %q (%s)", extractFilePath.Type, extractFilePath.Path, humanize.Bytes(uint64(fileInfo.Size())))

	var extract *ownmap.MapExtract
	switch extractFilePath.Type {
	case ExtractFileTypeXML:
		extract, err = ReadXMLExtract(file)
	case ExtractFileTypePBF:
		var pbfReader *DefaultPBFReader
		pbfReader, err = NewDefaultPBFReader(file)
		if err != nil {
			return nil, err
		}
		defer pbfReader.Close()

		extract, err = ReadPBFExtract(logger, pbfReader)
	default:
		return nil, errorsx.Errorf("unhandled extract file type: %q", extractFilePath.Type)
	}
	if err != nil {
		return nil, errorsx.Wrap(err, "path", extractFilePath.Path)
	}

	logger.Info(
		"loaded extract in %s. Nodes: %s, ways: %s, relations: %s",
		time.Since(startTime),
		humanize.Comma(int64(len(extract.Nodes))),
		humanize.Comma(int64(len(extract.Ways))),
		humanize.Comma(int64(len(extract.Relations))),
	)

	return extract, nil
}
