package mongodb

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// isDuplicateKey verifica si un error es una violación de índice único (E11000).
func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// toObjectID convierte un id hex a ObjectID.
func toObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id inválido %q: %w", id, err)
	}
	return oid, nil
}

// toDecimal128 convierte un decimal del dominio al tipo nativo de Mongo.
func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("convertir decimal %q: %w", d.String(), err)
	}
	return d128, nil
}

// fromDecimal128 convierte de vuelta al decimal del dominio.
func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("leer decimal %q: %w", d.String(), err)
	}
	return out, nil
}
