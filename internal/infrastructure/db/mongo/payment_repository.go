package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

const collectionPayments = "payments"

// PaymentRepository implements ports.PaymentRepository on MongoDB. The
// pending-state guard on mutations is expressed inside the query filter, so
// "check state then write" is one atomic document operation.
type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(collectionPayments)}
}

type mongoPayment struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	Amount                 float64            `bson:"amount"`
	Currency               string             `bson:"currency"`
	Provider               string             `bson:"provider"`
	SenderIDNumber         string             `bson:"sender_id_number"`
	SenderAccountNumber    string             `bson:"sender_account_number"`
	RecipientAccountNumber string             `bson:"recipient_account_number"`
	PaymentCode            string             `bson:"payment_code"`
	Status                 string             `bson:"status"`
	VerifiedBy             string             `bson:"verified_by,omitempty"`
	CreatedAt              time.Time          `bson:"created_at"`
	UpdatedAt              time.Time          `bson:"updated_at"`
	DecidedAt              *time.Time         `bson:"decided_at,omitempty"`
}

func (mp *mongoPayment) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:                     mp.ID.Hex(),
		Amount:                 mp.Amount,
		Currency:               mp.Currency,
		Provider:               mp.Provider,
		SenderIDNumber:         mp.SenderIDNumber,
		SenderAccountNumber:    mp.SenderAccountNumber,
		RecipientAccountNumber: mp.RecipientAccountNumber,
		PaymentCode:            mp.PaymentCode,
		Status:                 domain.PaymentStatus(mp.Status),
		VerifiedBy:             mp.VerifiedBy,
		CreatedAt:              mp.CreatedAt,
		UpdatedAt:              mp.UpdatedAt,
		DecidedAt:              mp.DecidedAt,
	}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPayment{
		Amount:                 p.Amount,
		Currency:               p.Currency,
		Provider:               p.Provider,
		SenderIDNumber:         p.SenderIDNumber,
		SenderAccountNumber:    p.SenderAccountNumber,
		RecipientAccountNumber: p.RecipientAccountNumber,
		PaymentCode:            p.PaymentCode,
		Status:                 string(p.Status),
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPaymentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPayment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return mp.toDomain(), nil
}

// ListPending returns pending payments newest-first for operator triage.
func (r *PaymentRepository) ListPending(ctx context.Context) ([]*domain.Payment, error) {
	return r.list(ctx, bson.M{"status": string(domain.StatusPending)})
}

// ListByAccount returns all payments sent from one account, newest-first.
func (r *PaymentRepository) ListByAccount(ctx context.Context, accountNumber string) ([]*domain.Payment, error) {
	return r.list(ctx, bson.M{"sender_account_number": accountNumber})
}

func (r *PaymentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var mp mongoPayment
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, mp.toDomain())
	}
	return payments, cur.Err()
}

// ReplacePending overwrites the mutable fields only while the stored
// document is still pending.
func (r *PaymentRepository) ReplacePending(ctx context.Context, p *domain.Payment) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPaymentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.StatusPending)}
	update := bson.M{"$set": bson.M{
		"amount":                   p.Amount,
		"currency":                 p.Currency,
		"provider":                 p.Provider,
		"sender_id_number":         p.SenderIDNumber,
		"recipient_account_number": p.RecipientAccountNumber,
		"payment_code":             p.PaymentCode,
		"updated_at":               p.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPaymentNotPending
	}
	return nil
}

// DeletePending removes the payment only while it is still pending.
func (r *PaymentRepository) DeletePending(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPaymentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "status": string(domain.StatusPending)})
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPaymentNotPending
	}
	return nil
}

// Decide atomically moves a pending payment to its terminal outcome. When
// the filter matches nothing the payment was decided (or removed) by a
// concurrent request, and the caller gets a conflict rather than a silent
// second decision.
func (r *PaymentRepository) Decide(ctx context.Context, id string, outcome domain.PaymentStatus, actorID string, decidedAt time.Time) (*domain.Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPaymentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.StatusPending)}
	update := bson.M{"$set": bson.M{
		"status":      string(outcome),
		"verified_by": actorID,
		"decided_at":  decidedAt,
		"updated_at":  decidedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mp mongoPayment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotPending
		}
		return nil, fmt.Errorf("decide payment: %w", err)
	}
	return mp.toDomain(), nil
}

// EnsureIndexes creates the indexes backing the list queries.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_account_number", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
