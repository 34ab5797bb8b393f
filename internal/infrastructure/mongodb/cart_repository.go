package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

type cartItemDoc struct {
	ProductID primitive.ObjectID `bson:"productId"`
	Quantity  int                `bson:"quantity"`
}

type cartDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"userId"`
	Items  []cartItemDoc      `bson:"items"`
}

// CartRepo implementación del puerto CartRepository sobre MongoDB. Las líneas
// viven embebidas en el documento del carrito, así el reemplazo del lote es
// una sola escritura atómica.
type CartRepo struct {
	col *mongo.Collection
}

// NewCartRepository construye el adaptador de persistencia para carritos.
func NewCartRepository(db *mongo.Database) *CartRepo {
	return &CartRepo{col: db.Collection(colCarts)}
}

// List devuelve todos los carritos.
func (r *CartRepo) List() ([]*entity.Cart, error) {
	ctx := context.Background()
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Cart
	for cur.Next(ctx) {
		var doc cartDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
		list = append(list, docToCart(doc))
	}
	return list, cur.Err()
}

// GetByUserID obtiene el carrito de un usuario. Devuelve (nil, nil) si no existe.
func (r *CartRepo) GetByUserID(userID string) (*entity.Cart, error) {
	oid, err := toObjectID(userID)
	if err != nil {
		return nil, nil
	}
	var doc cartDoc
	err = r.col.FindOne(context.Background(), bson.D{{Key: "userId", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return docToCart(doc), nil
}

// GetOrCreate devuelve el carrito del usuario, creándolo vacío de forma
// atómica (upsert). Dos peticiones concurrentes reciben el mismo carrito:
// el índice único sobre userId impide duplicados.
func (r *CartRepo) GetOrCreate(userID string) (*entity.Cart, error) {
	oid, err := toObjectID(userID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	filter := bson.D{{Key: "userId", Value: oid}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "userId", Value: oid},
		{Key: "items", Value: bson.A{}},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var doc cartDoc
	if err := r.col.FindOneAndUpdate(context.Background(), filter, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return docToCart(doc), nil
}

// Update reemplaza la colección de líneas del carrito en una sola escritura.
func (r *CartRepo) Update(cart *entity.Cart) error {
	oid, err := toObjectID(cart.ID)
	if err != nil {
		return domain.ErrInvalidInput
	}
	items := make([]cartItemDoc, 0, len(cart.Items))
	for _, it := range cart.Items {
		productOID, err := toObjectID(it.ProductID)
		if err != nil {
			return domain.ErrInvalidInput
		}
		items = append(items, cartItemDoc{ProductID: productOID, Quantity: it.Quantity})
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "items", Value: items}}}}
	if _, err := r.col.UpdateByID(context.Background(), oid, update); err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	return nil
}

func docToCart(doc cartDoc) *entity.Cart {
	items := make([]entity.CartItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, entity.CartItem{ProductID: it.ProductID.Hex(), Quantity: it.Quantity})
	}
	return &entity.Cart{ID: doc.ID.Hex(), UserID: doc.UserID.Hex(), Items: items}
}
