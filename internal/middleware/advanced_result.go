package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdvancedResultKey is the locals key under which the built envelope is
// stored for the downstream handler.
const AdvancedResultKey = "advancedResult"

const (
	defaultPage  = 1
	defaultLimit = 25
)

// reserved control keys never treated as filters
var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

var operatorSuffixes = []string{"gte", "gt", "lte", "lt", "in"}

// Page identifies an adjacent page in a paginated listing.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// Result is the uniform list envelope.
type Result struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       []bson.M   `json:"data"`
}

// Populate describes an optional related-record join: the referenced
// document is fetched from Collection and attached in place of the id stored
// in LocalField, projected down to Fields.
type Populate struct {
	Collection string
	LocalField string
	Fields     []string
}

// AdvancedResult executes a generic filtered, projected, sorted and paginated
// query over the collection and exposes the envelope to the handler. It is a
// pure function of the request's query parameters; no state is shared between
// requests.
func AdvancedResult(col *mongo.Collection, pop *Populate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Queries()
		ctx := c.UserContext()

		filter := BuildFilter(params)

		findOpts := options.Find()
		if sel, ok := params["select"]; ok && sel != "" {
			findOpts.SetProjection(BuildProjection(sel))
		}

		sort := params["sort"]
		if sort == "" {
			sort = "-createdAt"
		}
		findOpts.SetSort(BuildSort(sort))

		page := parsePositive(params["page"], defaultPage)
		limit := parsePositive(params["limit"], defaultLimit)
		skip := (page - 1) * limit
		findOpts.SetSkip(int64(skip)).SetLimit(int64(limit))

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			return err
		}

		cursor, err := col.Find(ctx, filter, findOpts)
		if err != nil {
			return err
		}

		docs := []bson.M{}
		if err := cursor.All(ctx, &docs); err != nil {
			return err
		}

		if pop != nil {
			if err := attachPopulated(c, col.Database(), pop, docs); err != nil {
				return err
			}
		}

		result := Result{
			Success:    true,
			Count:      len(docs),
			Pagination: BuildPagination(page, limit, int(total)),
			Data:       docs,
		}
		c.Locals(AdvancedResultKey, result)

		return c.Next()
	}
}

// BuildFilter copies the request parameters minus the reserved control keys
// and translates `field[op]` suffixes into Mongo comparison operators.
func BuildFilter(params map[string]string) bson.M {
	filter := bson.M{}
	for key, value := range params {
		if reservedKeys[key] {
			continue
		}

		field, op, ok := splitOperator(key)
		if !ok {
			filter[key] = coerce(value)
			continue
		}

		if op == "in" {
			parts := strings.Split(value, ",")
			values := make([]interface{}, 0, len(parts))
			for _, p := range parts {
				values = append(values, coerce(p))
			}
			mergeOperator(filter, field, "$in", values)
			continue
		}

		mergeOperator(filter, field, "$"+op, coerce(value))
	}
	return filter
}

// splitOperator parses "tuition[lte]" into ("tuition", "lte").
func splitOperator(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	field = key[:open]
	op = key[open+1 : len(key)-1]
	for _, known := range operatorSuffixes {
		if op == known {
			return field, op, true
		}
	}
	return "", "", false
}

// mergeOperator allows ranged filters such as tuition[gte]=1&tuition[lte]=9.
func mergeOperator(filter bson.M, field, op string, value interface{}) {
	if existing, ok := filter[field].(bson.M); ok {
		existing[op] = value
		return
	}
	filter[field] = bson.M{op: value}
}

// coerce interprets numeric and boolean literals so that comparisons against
// numeric fields behave as expected. Digit strings with a leading zero, such
// as zip codes, stay strings.
func coerce(value string) interface{} {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if len(value) > 1 && value[0] == '0' && value[1] != '.' {
		return value
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// BuildProjection turns "name,description" into an inclusion projection.
func BuildProjection(sel string) bson.D {
	proj := bson.D{}
	for _, field := range strings.Split(sel, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			proj = append(proj, bson.E{Key: field, Value: 1})
		}
	}
	return proj
}

// BuildSort turns "-createdAt,name" into a Mongo sort document; a leading
// dash means descending.
func BuildSort(sort string) bson.D {
	out := bson.D{}
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		out = append(out, bson.E{Key: field, Value: order})
	}
	return out
}

// BuildPagination computes next/prev metadata from the unpaginated total.
func BuildPagination(page, limit, total int) Pagination {
	var pg Pagination
	if page*limit < total {
		pg.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		pg.Prev = &Page{Page: page - 1, Limit: limit}
	}
	return pg
}

func parsePositive(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// attachPopulated resolves the referenced parents in one query and embeds the
// projected documents in place of the raw ids.
func attachPopulated(c *fiber.Ctx, database *mongo.Database, pop *Populate, docs []bson.M) error {
	ids := make([]primitive.ObjectID, 0, len(docs))
	seen := map[primitive.ObjectID]bool{}
	for _, doc := range docs {
		if id, ok := doc[pop.LocalField].(primitive.ObjectID); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	proj := bson.D{}
	for _, f := range pop.Fields {
		proj = append(proj, bson.E{Key: f, Value: 1})
	}

	ctx := c.UserContext()
	cursor, err := database.Collection(pop.Collection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(proj))
	if err != nil {
		return err
	}

	var parents []bson.M
	if err := cursor.All(ctx, &parents); err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]bson.M, len(parents))
	for _, p := range parents {
		if id, ok := p["_id"].(primitive.ObjectID); ok {
			byID[id] = p
		}
	}

	for _, doc := range docs {
		if id, ok := doc[pop.LocalField].(primitive.ObjectID); ok {
			if parent, found := byID[id]; found {
				doc[pop.LocalField] = parent
			}
		}
	}
	return nil
}
