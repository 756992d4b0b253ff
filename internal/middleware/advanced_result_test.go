package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilterCopiesPlainParams(t *testing.T) {
	filter := BuildFilter(map[string]string{
		"housing": "true",
		"careers": "Business",
	})

	assert.Equal(t, bson.M{"housing": true, "careers": "Business"}, filter)
}

func TestBuildFilterSkipsReservedKeys(t *testing.T) {
	filter := BuildFilter(map[string]string{
		"select": "name",
		"sort":   "-createdAt",
		"page":   "2",
		"limit":  "5",
		"name":   "Devworks",
	})

	assert.Equal(t, bson.M{"name": "Devworks"}, filter)
}

func TestBuildFilterTranslatesOperators(t *testing.T) {
	filter := BuildFilter(map[string]string{
		"averageCost[lte]": "10000",
		"weeks[gt]":        "4",
	})

	assert.Equal(t, bson.M{
		"averageCost": bson.M{"$lte": int64(10000)},
		"weeks":       bson.M{"$gt": int64(4)},
	}, filter)
}

func TestBuildFilterMergesRangeOnSameField(t *testing.T) {
	filter := BuildFilter(map[string]string{
		"tuition[gte]": "1000",
		"tuition[lte]": "9000",
	})

	require.Contains(t, filter, "tuition")
	assert.Equal(t, bson.M{"$gte": int64(1000), "$lte": int64(9000)}, filter["tuition"])
}

func TestBuildFilterInSplitsValues(t *testing.T) {
	filter := BuildFilter(map[string]string{
		"careers[in]": "Business,Web Development",
	})

	assert.Equal(t, bson.M{
		"careers": bson.M{"$in": []interface{}{"Business", "Web Development"}},
	}, filter)
}

func TestBuildFilterLeavesUnknownSuffixAlone(t *testing.T) {
	filter := BuildFilter(map[string]string{"name[like]": "dev"})

	assert.Equal(t, bson.M{"name[like]": "dev"}, filter)
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, true, coerce("true"))
	assert.Equal(t, false, coerce("false"))
	assert.Equal(t, int64(42), coerce("42"))
	assert.Equal(t, int64(0), coerce("0"))
	assert.Equal(t, 4.5, coerce("4.5"))
	assert.Equal(t, 0.5, coerce("0.5"))
	assert.Equal(t, "Boston", coerce("Boston"))

	// zip codes keep their leading zero
	assert.Equal(t, "02118", coerce("02118"))
}

func TestBuildFilterKeepsZipcodeString(t *testing.T) {
	filter := BuildFilter(map[string]string{"location.zipcode": "02118"})

	assert.Equal(t, bson.M{"location.zipcode": "02118"}, filter)
}

func TestBuildSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, BuildSort("-createdAt"))
	assert.Equal(t, bson.D{
		{Key: "name", Value: 1},
		{Key: "averageCost", Value: -1},
	}, BuildSort("name,-averageCost"))
}

func TestBuildProjection(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "name", Value: 1},
		{Key: "description", Value: 1},
	}, BuildProjection("name,description"))
}

func TestBuildPagination(t *testing.T) {
	// records 6-10 of 12: both neighbors exist
	pg := BuildPagination(2, 5, 12)
	require.NotNil(t, pg.Next)
	require.NotNil(t, pg.Prev)
	assert.Equal(t, Page{Page: 3, Limit: 5}, *pg.Next)
	assert.Equal(t, Page{Page: 1, Limit: 5}, *pg.Prev)

	// first page of two
	pg = BuildPagination(1, 25, 30)
	assert.Nil(t, pg.Prev)
	require.NotNil(t, pg.Next)
	assert.Equal(t, Page{Page: 2, Limit: 25}, *pg.Next)

	// last page
	pg = BuildPagination(2, 25, 30)
	assert.Nil(t, pg.Next)
	require.NotNil(t, pg.Prev)

	// everything fits on one page
	pg = BuildPagination(1, 25, 10)
	assert.Nil(t, pg.Next)
	assert.Nil(t, pg.Prev)
}

func TestParsePositive(t *testing.T) {
	assert.Equal(t, 3, parsePositive("3", 1))
	assert.Equal(t, 1, parsePositive("", 1))
	assert.Equal(t, 25, parsePositive("0", 25))
	assert.Equal(t, 25, parsePositive("abc", 25))
}
