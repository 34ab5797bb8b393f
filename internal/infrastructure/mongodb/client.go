package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/tienda-api/pkg/config"
)

// Nombres de colecciones.
const (
	colProducts    = "products"
	colUsers       = "users"
	colInventories = "inventories"
	colCarts       = "carts"
)

// Connect abre el cliente de MongoDB y verifica conectividad con un ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectar a MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices únicos que respaldan las invariantes del
// dominio: nombre de producto, email de usuario, un inventario por producto y
// un carrito por usuario. La verificación previa en los casos de uso es la
// primera línea; estos índices son la garantía a nivel de almacén.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := []struct {
		col  string
		keys bson.D
	}{
		{colProducts, bson.D{{Key: "name", Value: 1}}},
		{colUsers, bson.D{{Key: "email", Value: 1}}},
		{colInventories, bson.D{{Key: "productId", Value: 1}}},
		{colCarts, bson.D{{Key: "userId", Value: 1}}},
	}
	for _, ix := range indexes {
		_, err := db.Collection(ix.col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    ix.keys,
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("crear índice %s: %w", ix.col, err)
		}
	}
	return nil
}
