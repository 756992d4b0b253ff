package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maariam000/DevCamper/internal/config"
	"github.com/maariam000/DevCamper/internal/db"
)

// Seeds the database from the JSON fixtures in _data. Run with -import to
// load everything, -delete to wipe the collections.
func main() {
	importData := flag.Bool("import", false, "import fixtures")
	deleteData := flag.Bool("delete", false, "delete all data")
	dataDir := flag.String("data", "_data", "fixture directory")
	flag.Parse()

	if *importData == *deleteData {
		logrus.Fatal("use exactly one of -import or -delete")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	database, err := db.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("MongoDB connection failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	collections := []string{"users", "bootcamps", "courses", "reviews"}

	if *deleteData {
		for _, name := range collections {
			if _, err := database.Collection(name).DeleteMany(ctx, map[string]interface{}{}); err != nil {
				logrus.Fatalf("delete %s: %v", name, err)
			}
		}
		logrus.Info("Data destroyed")
		return
	}

	for _, name := range collections {
		if err := importFile(ctx, database, *dataDir, name); err != nil {
			logrus.Fatalf("import %s: %v", name, err)
		}
	}
	logrus.Info("Data imported")
}

func importFile(ctx context.Context, database *mongo.Database, dir, name string) error {
	raw, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return err
	}

	rows := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		// fixture references are hex strings; convert them to real ids
		for _, key := range []string{"_id", "user", "bootcamp"} {
			if hex, ok := doc[key].(string); ok {
				if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
					doc[key] = oid
				}
			}
		}
		if _, ok := doc["createdAt"]; !ok {
			doc["createdAt"] = time.Now()
		}
		rows = append(rows, doc)
	}
	if len(rows) == 0 {
		return nil
	}

	_, err = database.Collection(name).InsertMany(ctx, rows)
	return err
}
