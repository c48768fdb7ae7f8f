package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-gin-mongo-shop/internal/domain"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	cartsCollection    = "carts"
)

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Token     string    `bson:"token"`
	Role      string    `bson:"role"`
	Cart      string    `bson:"cart,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Image       string    `bson:"image"`
	Price       float64   `bson:"price"`
	Stock       int       `bson:"stock"`
	Brand       string    `bson:"brand"`
	User        string    `bson:"user"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type cartDoc struct {
	ID       string   `bson:"_id"`
	User     string   `bson:"user"`
	Products []string `bson:"products"`
}

// EnsureIndexes is idempotent; the unique email index backs up the
// read-then-write check done at registration.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}},
		productsCollection: {{
			Keys:    bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("created_order"),
		}},
		cartsCollection: {{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_unique"),
		}},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

type MongoUserRepo struct{ coll *mongo.Collection }

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(usersCollection)}
}

func (r *MongoUserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	doc := userDoc{
		ID: u.ID, Name: u.Name, Email: u.Email, Password: u.PasswordHash,
		Token: u.Token, Role: string(u.Role), Cart: u.CartID, CreatedAt: u.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) SetCart(ctx context.Context, userID, cartID string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"cart": cartID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var d userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID: d.ID, Name: d.Name, Email: d.Email, PasswordHash: d.Password,
		Token: d.Token, Role: domain.Role(d.Role), CartID: d.Cart, CreatedAt: d.CreatedAt,
	}, nil
}

type MongoProductRepo struct{ coll *mongo.Collection }

func NewMongoProductRepo(db *mongo.Database) *MongoProductRepo {
	return &MongoProductRepo{coll: db.Collection(productsCollection)}
}

func (r *MongoProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *MongoProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return decodeProduct(r.coll.FindOne(ctx, bson.M{"_id": id}))
}

func (r *MongoProductRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoProductRepo) Create(ctx context.Context, p *domain.Product) error {
	t := now()
	p.CreatedAt, p.UpdatedAt = t, t
	_, err := r.coll.InsertOne(ctx, productDoc{
		ID: p.ID, Name: p.Name, Description: p.Description, Image: p.Image,
		Price: p.Price, Stock: p.Stock, Brand: p.Brand, User: p.User,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	})
	return err
}

func (r *MongoProductRepo) Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	set := bson.M{"updatedAt": now()}
	for k, v := range productColumns(f) {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeProduct(r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts))
}

func (r *MongoProductRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	return decodeProduct(r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}))
}

func (r *MongoProductRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, productFromDoc(d))
	}
	return out, nil
}

func decodeProduct(res *mongo.SingleResult) (*domain.Product, error) {
	var d productDoc
	err := res.Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := productFromDoc(d)
	return &p, nil
}

func productFromDoc(d productDoc) domain.Product {
	return domain.Product{
		ID: d.ID, Name: d.Name, Description: d.Description, Image: d.Image,
		Price: d.Price, Stock: d.Stock, Brand: d.Brand, User: d.User,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type MongoCartRepo struct{ coll *mongo.Collection }

func NewMongoCartRepo(db *mongo.Database) *MongoCartRepo {
	return &MongoCartRepo{coll: db.Collection(cartsCollection)}
}

func (r *MongoCartRepo) FindByID(ctx context.Context, id string) (*domain.CartRef, error) {
	var d cartDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.CartRef{ID: d.ID, User: d.User, ProductIDs: d.Products}, nil
}

func (r *MongoCartRepo) Save(ctx context.Context, c *domain.CartRef) error {
	products := c.ProductIDs
	if products == nil {
		products = []string{}
	}
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": c.ID},
		cartDoc{ID: c.ID, User: c.User, Products: products},
		options.Replace().SetUpsert(true),
	)
	return err
}

// mongo stores milliseconds; truncate so values read back compare equal.
func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
