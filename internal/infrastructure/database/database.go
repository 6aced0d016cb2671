package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docgate/internal/domain/model"
)

const AuditCollection = "audit"

type Database struct {
	DBName       string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond).
		SetBSONOptions(&options.BSONOptions{
			UseJSONStructTags: true,
			NilSliceAsEmpty:   true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	db := &Database{
		Client:       client,
		DBName:       cfg.DBName,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := initAuditCollection(db); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *Database) collection() *mongo.Collection {
	return db.Client.Database(db.DBName).Collection(AuditCollection)
}

func initAuditCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": AuditCollection})
	if err != nil {
		return err
	}
	if len(collections) > 0 {
		return nil // already exists
	}

	collOpts := options.CreateCollection().SetValidator(bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"_id", "operation", "filename", "succeeded", "created_at"},
			"properties": bson.M{
				"_id": bson.M{
					"bsonType":    "string",
					"minLength":   36,
					"maxLength":   36,
					"description": "must be a uuid",
				},
				"operation": bson.M{
					"enum": []string{
						string(model.OperationVerify),
						string(model.OperationConvert),
						string(model.OperationExtract),
					},
				},
				"filename":    bson.M{"bsonType": "string"},
				"size":        bson.M{"bsonType": "long"},
				"succeeded":   bson.M{"bsonType": "bool"},
				"error_kind":  bson.M{"bsonType": "string"},
				"accepted":    bson.M{"bsonType": "bool"},
				"dpi_x":       bson.M{"bsonType": "double"},
				"dpi_y":       bson.M{"bsonType": "double"},
				"archive_key": bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
			},
		},
	})

	err = db.Client.Database(db.DBName).CreateCollection(ctx, AuditCollection, collOpts)
	if err != nil {
		return err
	}

	_, err = db.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "operation", Value: 1}, {Key: "created_at", Value: -1}}},
	})

	return err
}

func (db *Database) Stop() error {
	if err := db.Client.Disconnect(context.Background()); err != nil {
		return err
	}

	return nil
}
