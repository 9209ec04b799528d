package styling

import (
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/paulmach/osm"
)

const (
	ClassHighwayBig    = "highway_big"
	ClassHighwayMiddle = "highway_middle"
	ClassNationalWay   = "national_way"
)

var importantTags = map[string]bool{
	"highway":  true,
	"place":    true,
	"amenity":  true,
	"shop":     true,
	"building": true,
	"landuse":  true,
	"natural":  true,
	"leisure":  true,
	"office":   true,
	"waterway": true,
	"power":    true,
}

// IsImportantTag returns true for the tag keys that carry style
func IsImportantTag(key string) bool {
	return importantTags[key]
}

type Classifier struct {
	logger *logpkg.Logger
	index  *RelationIndex
}

// NewClassifier creates a classifier. The logger may be nil.
func NewClassifier(logger *logpkg.Logger, index *RelationIndex) *Classifier {
	return &Classifier{logger, index}
}

// Classify derives the style classes of a way from its own tags and the relations it is a member of
func (c *Classifier) Classify(way *osm.Way) ClassSet {
	classes := make(ClassSet)

	for _, tag := range way.Tags {
		if IsImportantTag(tag.Key) {
			classes.Add(tag.Key)
			classes.Add(tag.Value)
		}
	}

	for _, class := range c.index.ClassesForWay(way.ID) {
		classes.Add(class)
	}

	lanes, err := ParseLanes(way.Tags)
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("way %d: %s. Treating as 0 lanes", way.ID, err.Error())
		}
		lanes = 0
	}

	if lanes > 2 {
		classes.Add(ClassHighwayBig)
	} else if lanes >= 2 {
		classes.Add(ClassHighwayMiddle)
	}

	if way.Tags.Find("nat_ref") != "" {
		classes.Add(ClassNationalWay)
	}

	return classes
}

// ParseLanes returns the "lanes" tag as an integer, or 0 if the tag is missing
func ParseLanes(tags osm.Tags) (int, errorsx.Error) {
	value := tags.Find("lanes")
	if value == "" {
		return 0, nil
	}

	lanes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errorsx.Wrap(ownmap.ErrMalformedTag, "lanes", value)
	}

	return lanes, nil
}
