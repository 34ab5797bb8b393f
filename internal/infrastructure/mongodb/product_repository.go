package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productDoc forma persistida de un producto. El precio se guarda como
// Decimal128 para no perder la escala.
type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Price       primitive.Decimal128 `bson:"price"`
	Description string               `bson:"description,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// ProductRepo implementación del puerto ProductRepository sobre MongoDB.
type ProductRepo struct {
	col *mongo.Collection
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db *mongo.Database) *ProductRepo {
	return &ProductRepo{col: db.Collection(colProducts)}
}

// List devuelve todos los productos.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	ctx := context.Background()
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p, err := docToProduct(doc)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, cur.Err()
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(bson.D{{Key: "_id", Value: oid}})
}

// GetByName obtiene un producto por nombre exacto. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	return r.findOne(bson.D{{Key: "name", Value: name}})
}

func (r *ProductRepo) findOne(filter bson.D) (*entity.Product, error) {
	var doc productDoc
	err := r.col.FindOne(context.Background(), filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p, err := docToProduct(doc)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(product *entity.Product) error {
	doc, err := productToDoc(product)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(context.Background(), doc); err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = doc.ID.Hex()
	return nil
}

// Update reemplaza los campos mutables de un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	oid, err := toObjectID(product.ID)
	if err != nil {
		return domain.ErrInvalidInput
	}
	price, err := toDecimal128(product.Price)
	if err != nil {
		return err
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: product.Name},
		{Key: "price", Value: price},
		{Key: "description", Value: product.Description},
		{Key: "updatedAt", Value: product.UpdatedAt},
	}}}
	_, err = r.col.UpdateByID(context.Background(), oid, update)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return domain.ErrInvalidInput
	}
	if _, err := r.col.DeleteOne(context.Background(), bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func productToDoc(p *entity.Product) (productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{
		Name:        p.Name,
		Price:       price,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func docToProduct(doc productDoc) (*entity.Product, error) {
	price, err := fromDecimal128(doc.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Price:       price,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
