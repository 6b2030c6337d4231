package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	couponserrors "eliteclub/internal/coupons/errors"
	"eliteclub/pkg/config"
	"eliteclub/pkg/model"
)

const (
	CollectionName = "coupons"
)

type mongoCouponRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindByExactCode(ctx context.Context, code string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]*model.Coupon, error)
	Update(ctx context.Context, id string, coupon *model.Coupon) error
	Delete(ctx context.Context, id string) error
}

func NewMongoCouponRepository(cfg *config.Config) CouponRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCouponRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCouponRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	coupon.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		// The unique index on coupon catches inserts that race past the
		// duplicate check in the service.
		if mongo.IsDuplicateKeyError(err) {
			return couponserrors.ErrDuplicateCode
		}
		return fmt.Errorf("failed to insert coupon: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid.Hex()
	}
	return nil
}

// FindByCode matches the whole code case-insensitively, so "save10"
// redeems a coupon stored as "SAVE10". The pattern is anchored; prefix
// matches do not count.
func (r *mongoCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(code) + "$", Options: "i"}
	return r.findOne(ctx, bson.M{"coupon": pattern})
}

// FindByExactCode is the case-sensitive lookup the duplicate check on
// creation uses.
func (r *mongoCouponRepository) FindByExactCode(ctx context.Context, code string) (*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"coupon": code})
}

func (r *mongoCouponRepository) findOne(ctx context.Context, filter bson.M) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.collection.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, couponserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return &coupon, nil
}

func (r *mongoCouponRepository) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*model.Coupon
	if err = cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}

func (r *mongoCouponRepository) Update(ctx context.Context, id string, coupon *model.Coupon) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return couponserrors.ErrInvalidID
	}

	update := bson.M{}
	if coupon.Code != "" {
		update["coupon"] = coupon.Code
	}
	if coupon.Discount != nil {
		update["discount"] = coupon.Discount
	}
	if coupon.Description != "" {
		update["description"] = coupon.Description
	}
	if len(update) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return couponserrors.ErrNotFound
	}
	return nil
}

func (r *mongoCouponRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return couponserrors.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if result.DeletedCount == 0 {
		return couponserrors.ErrNotFound
	}
	return nil
}
