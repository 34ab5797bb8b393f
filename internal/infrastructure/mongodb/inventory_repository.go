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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

type inventoryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"productId"`
	Quantity  int                `bson:"quantity"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// InventoryRepo implementación del puerto InventoryRepository sobre MongoDB.
// El índice único sobre productId garantiza un registro por producto aunque
// la verificación previa del caso de uso se cruce con otra petición.
type InventoryRepo struct {
	col *mongo.Collection
}

// NewInventoryRepository construye el adaptador de persistencia para inventario.
func NewInventoryRepository(db *mongo.Database) *InventoryRepo {
	return &InventoryRepo{col: db.Collection(colInventories)}
}

// List devuelve todos los registros de inventario.
func (r *InventoryRepo) List() ([]*entity.InventoryRecord, error) {
	ctx := context.Background()
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.InventoryRecord
	for cur.Next(ctx) {
		var doc inventoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode inventory: %w", err)
		}
		list = append(list, docToRecord(doc))
	}
	return list, cur.Err()
}

// GetByID obtiene un registro por ID. Devuelve (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(bson.D{{Key: "_id", Value: oid}})
}

// GetByProductID obtiene el registro de un producto. Devuelve (nil, nil) si no existe.
func (r *InventoryRepo) GetByProductID(productID string) (*entity.InventoryRecord, error) {
	oid, err := toObjectID(productID)
	if err != nil {
		return nil, nil
	}
	return r.findOne(bson.D{{Key: "productId", Value: oid}})
}

func (r *InventoryRepo) findOne(filter bson.D) (*entity.InventoryRecord, error) {
	var doc inventoryDoc
	err := r.col.FindOne(context.Background(), filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return docToRecord(doc), nil
}

// Create persiste un nuevo registro y asigna su ID.
func (r *InventoryRepo) Create(rec *entity.InventoryRecord) error {
	productOID, err := toObjectID(rec.ProductID)
	if err != nil {
		return domain.ErrInvalidInput
	}
	doc := inventoryDoc{
		ID:        primitive.NewObjectID(),
		ProductID: productOID,
		Quantity:  rec.Quantity,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if _, err := r.col.InsertOne(context.Background(), doc); err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	rec.ID = doc.ID.Hex()
	return nil
}

// Update reemplaza la cantidad de un registro existente.
func (r *InventoryRepo) Update(rec *entity.InventoryRecord) error {
	oid, err := toObjectID(rec.ID)
	if err != nil {
		return domain.ErrInvalidInput
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "quantity", Value: rec.Quantity},
		{Key: "updatedAt", Value: rec.UpdatedAt},
	}}}
	if _, err := r.col.UpdateByID(context.Background(), oid, update); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// Delete elimina un registro por ID.
func (r *InventoryRepo) Delete(id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return domain.ErrInvalidInput
	}
	if _, err := r.col.DeleteOne(context.Background(), bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

func docToRecord(doc inventoryDoc) *entity.InventoryRecord {
	return &entity.InventoryRecord{
		ID:        doc.ID.Hex(),
		ProductID: doc.ProductID.Hex(),
		Quantity:  doc.Quantity,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
