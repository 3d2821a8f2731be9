package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

const (
	collectionDatasets = "datasets"
	collectionRecords  = "dataset_records"

	// recordBatchSize bounds one InsertMany call.
	recordBatchSize = 1000
)

// datasetDocument is the datasets collection shape. Records live in their own
// collection so a large upload never hits the 16 MB document limit.
type datasetDocument struct {
	ID          string    `bson:"_id"`
	Filename    string    `bson:"filename"`
	Checksum    string    `bson:"checksum"`
	Columns     []string  `bson:"columns"`
	Species     []string  `bson:"species"`
	DroppedRows int       `bson:"dropped_rows"`
	RecordCount int       `bson:"record_count"`
	UploadedAt  time.Time `bson:"uploaded_at"`
}

// recordDocument is one track record in the dataset_records collection.
type recordDocument struct {
	DatasetID  string    `bson:"dataset_id"`
	Seq        int       `bson:"seq"`
	UploadedAt time.Time `bson:"uploaded_at"`

	domain.TrackRecord `bson:",inline"`
}

// splitDataset separates a dataset into its metadata document and batches of
// record documents ready for InsertMany.
func splitDataset(d *domain.Dataset) (datasetDocument, [][]any) {
	meta := datasetDocument{
		ID:          d.ID,
		Filename:    d.Filename,
		Checksum:    d.Checksum,
		Columns:     d.Columns,
		Species:     d.Species,
		DroppedRows: d.DroppedRows,
		RecordCount: len(d.Records),
		UploadedAt:  d.UploadedAt,
	}

	batches := make([][]any, 0, (len(d.Records)+recordBatchSize-1)/recordBatchSize)
	for start := 0; start < len(d.Records); start += recordBatchSize {
		end := min(start+recordBatchSize, len(d.Records))
		batch := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, recordDocument{
				DatasetID:   d.ID,
				Seq:         i,
				UploadedAt:  d.UploadedAt,
				TrackRecord: d.Records[i],
			})
		}
		batches = append(batches, batch)
	}
	return meta, batches
}

func (m datasetDocument) dataset(records []domain.TrackRecord) *domain.Dataset {
	return &domain.Dataset{
		ID:          m.ID,
		Filename:    m.Filename,
		Checksum:    m.Checksum,
		Columns:     m.Columns,
		Records:     records,
		Species:     m.Species,
		DroppedRows: m.DroppedRows,
		UploadedAt:  m.UploadedAt,
	}
}

// DatasetRepository keeps uploads in MongoDB. TTL indexes on uploaded_at
// remove them; reads also filter on uploaded_at because the TTL monitor only
// runs about once a minute.
type DatasetRepository struct {
	col     *mongo.Collection
	records *mongo.Collection
	ttl     time.Duration
	now     func() time.Time
}

func NewDatasetRepository(db *mongo.Database, ttl time.Duration) *DatasetRepository {
	return &DatasetRepository{
		col:     db.Collection(collectionDatasets),
		records: db.Collection(collectionRecords),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Save writes the records first and the dataset document last, so readers
// never see a dataset whose records are still being inserted.
func (r *DatasetRepository) Save(ctx context.Context, d *domain.Dataset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	meta, batches := splitDataset(d)
	for _, batch := range batches {
		if _, err := r.records.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false)); err != nil {
			r.deleteRecords(d.ID)
			return fmt.Errorf("insert records: %w", err)
		}
	}

	if _, err := r.col.InsertOne(ctx, meta); err != nil {
		r.deleteRecords(d.ID)
		return err
	}
	return nil
}

// deleteRecords cleans up after a failed Save. It runs on a fresh context
// because the caller's may already be done.
func (r *DatasetRepository) deleteRecords(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	_, _ = r.records.DeleteMany(ctx, bson.M{"dataset_id": id})
}

// FindByID retrieves a live dataset by its ID.
func (r *DatasetRepository) FindByID(ctx context.Context, id string) (*domain.Dataset, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByChecksum retrieves the most recent live dataset uploaded with the
// given content checksum.
func (r *DatasetRepository) FindByChecksum(ctx context.Context, checksum string) (*domain.Dataset, error) {
	return r.findOne(ctx, bson.M{"checksum": checksum},
		options.FindOne().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}))
}

func (r *DatasetRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["uploaded_at"] = bson.M{"$gt": r.now().UTC().Add(-r.ttl)}

	var meta datasetDocument
	err := r.col.FindOne(ctx, filter, opts...).Decode(&meta)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, err
	}

	records, err := r.loadRecords(ctx, meta.ID)
	if err != nil {
		return nil, err
	}
	// The TTL monitor may have removed part of the records already.
	if len(records) != meta.RecordCount {
		return nil, domain.ErrDatasetNotFound
	}
	return meta.dataset(records), nil
}

func (r *DatasetRepository) loadRecords(ctx context.Context, id string) ([]domain.TrackRecord, error) {
	cur, err := r.records.Find(ctx, bson.M{"dataset_id": id},
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []domain.TrackRecord
	for cur.Next(ctx) {
		var doc recordDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, doc.TrackRecord)
	}
	return records, cur.Err()
}

// Delete removes a dataset document and its records.
func (r *DatasetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if _, err := r.records.DeleteMany(ctx, bson.M{"dataset_id": id}); err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrDatasetNotFound
	}
	return nil
}

func (r *DatasetRepository) Name() string { return "mongodb" }

// Ping checks server connectivity.
func (r *DatasetRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the TTL indexes on both collections, the checksum
// index on datasets and the (dataset_id, seq) index on records.
func (r *DatasetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ttl := mongo.IndexModel{
		Keys:    bson.D{{Key: "uploaded_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(r.ttl.Seconds())),
	}

	if _, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		ttl,
		{Keys: bson.D{{Key: "checksum", Value: 1}}},
	}); err != nil {
		return err
	}

	_, err := r.records.Indexes().CreateMany(ctx, []mongo.IndexModel{
		ttl,
		{Keys: bson.D{{Key: "dataset_id", Value: 1}, {Key: "seq", Value: 1}}},
	})
	return err
}
