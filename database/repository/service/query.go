package serviceRepo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SortAscending is the only sort value that orders by ascending price.
const SortAscending = "asc"

// Query describes a catalog listing.
type Query struct {
	// Sort is "asc" for cheapest first; anything else, including "", is
	// most expensive first.
	Sort string
	// Search is a case-insensitive substring matched against title. Empty
	// means no filter.
	Search string
}

// DetailProjection is applied when a single service is fetched.
var DetailProjection = bson.M{"title": 1, "price": 1, "service_id": 1, "img": 1}

// Filter builds the find filter for q.
func (q Query) Filter() bson.M {
	if q.Search == "" {
		return bson.M{}
	}
	return bson.M{"title": bson.M{"$regex": regexp.QuoteMeta(q.Search), "$options": "i"}}
}

// SortDirection returns 1 for ascending and -1 otherwise.
func (q Query) SortDirection() int {
	if q.Sort == SortAscending {
		return 1
	}
	return -1
}

// FindOptions builds the sort specification for q.
func (q Query) FindOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "price", Value: q.SortDirection()}})
}
