package report

import (
	"context"
	"fmt"
	"time"

	"github.com/listing-geo/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Archive sink tùy chọn lưu lịch sử báo cáo audit vào MongoDB. Artifact
// file luôn được ghi bất kể archive có bật hay không.
type Archive struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewArchive kết nối MongoDB và chuẩn bị collection validation_reports
func NewArchive(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Archive, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("không kết nối được MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("không ping được MongoDB: %w", err)
	}

	collection := client.Database(dbName).Collection("validation_reports")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "generated_at", Value: -1}}}
	if _, err := collection.Indexes().CreateOne(ctx, idx); err != nil {
		logger.Warn("Không tạo được index cho validation_reports", zap.Error(err))
	}

	return &Archive{client: client, collection: collection, logger: logger}, nil
}

// Save lưu một báo cáo vào archive
func (a *Archive) Save(ctx context.Context, r *models.ValidationReport) error {
	if _, err := a.collection.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("không lưu được báo cáo: %w", err)
	}
	a.logger.Info("Đã archive báo cáo audit",
		zap.Time("generated_at", r.GeneratedAt),
		zap.Int("total", r.TotalRecords))
	return nil
}

// Latest lấy báo cáo gần nhất, nil nếu chưa có
func (a *Archive) Latest(ctx context.Context) (*models.ValidationReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	var r models.ValidationReport
	err := a.collection.FindOne(ctx, bson.D{}, opts).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Close ngắt kết nối
func (a *Archive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
