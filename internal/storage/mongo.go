package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/pkg/logger"
)

const conversationCollection = "conversations"

// MongoStore MongoDB 实现，一个会话一个文档
type MongoStore struct {
	client   *mongo.Client
	database string
	uri      string
	timeout  time.Duration
}

func NewMongoStore(uri, database string, timeout time.Duration) *MongoStore {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MongoStore{
		uri:      uri,
		database: database,
		timeout:  timeout,
	}
}

func (s *MongoStore) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(s.uri).
		SetServerSelectionTimeout(s.timeout).
		SetConnectTimeout(s.timeout).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(50 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	s.client = client

	// telegram_id 和 is_active 的查询索引
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "telegram_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}
	if _, err := s.collection().Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warnf("Failed to create conversation indexes: %v", err)
	}

	logger.Infof("✅ Connected to MongoDB: %s", s.database)
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) collection() *mongo.Collection {
	return s.client.Database(s.database).Collection(conversationCollection)
}

func (s *MongoStore) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.collection().InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

func (s *MongoStore) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var conv model.Conversation
	err := s.collection().FindOne(ctx, bson.M{"_id": conversationID}).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

func (s *MongoStore) GetConversationByTelegramID(ctx context.Context, telegramID string) (*model.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{"telegram_id": telegramID, "is_active": true}
	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	var conv model.Conversation
	err := s.collection().FindOne(ctx, filter, opts).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation by telegram id: %w", err)
	}
	return &conv, nil
}

func (s *MongoStore) UpdateConversation(ctx context.Context, conv *model.Conversation) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.collection().ReplaceOne(ctx, bson.M{"_id": conv.ID}, conv)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func (s *MongoStore) AddMessage(ctx context.Context, conversationID string, msg model.Message) (*model.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conv model.Conversation
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": conversationID}, update, opts).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return &conv, nil
}
